package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// currencyExponents maps an ISO currency to the number of decimal digits its
// minor unit carries (paise, cents). Zero-decimal currencies have no fraction.
var currencyExponents = map[string]int{
	"INR": 2,
	"USD": 2,
	"EUR": 2,
	"SGD": 2,
	"JPY": 0,
}

// MinorUnits converts a major-unit decimal string ("100.00") into an integer
// count of the currency's smallest denomination. Fractions finer than the
// currency's exponent are rejected, never rounded.
func MinorUnits(amountMajor, currency string) (int64, error) {
	exp, ok := currencyExponents[strings.ToUpper(currency)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrCurrencyUnsupported, currency)
	}

	amountMajor = strings.TrimSpace(amountMajor)
	if amountMajor == "" || strings.HasPrefix(amountMajor, "-") || strings.HasPrefix(amountMajor, "+") {
		return 0, ErrAmountInvalid
	}

	wholePart := amountMajor
	fracPart := ""
	if i := strings.IndexByte(amountMajor, '.'); i >= 0 {
		wholePart, fracPart = amountMajor[:i], amountMajor[i+1:]
	}

	if wholePart == "" || len(fracPart) > exp {
		return 0, ErrAmountInvalid
	}

	// Both parts must be bare digit runs; ParseInt alone would let a signed
	// fraction like "100.-1" through.
	if !isDigits(wholePart) || (fracPart != "" && !isDigits(fracPart)) {
		return 0, ErrAmountInvalid
	}

	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, ErrAmountInvalid
	}

	var frac int64
	if fracPart != "" {
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, ErrAmountInvalid
		}
	}

	// Right-pad the fraction to the full exponent: "5" means 50 paise.
	for i := len(fracPart); i < exp; i++ {
		frac *= 10
	}

	scale := int64(1)
	for i := 0; i < exp; i++ {
		scale *= 10
	}

	if whole > (math.MaxInt64-frac)/scale {
		return 0, ErrAmountInvalid
	}

	minor := whole*scale + frac
	if minor <= 0 {
		return 0, ErrAmountInvalid
	}

	return minor, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
