package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrAmountInvalid        = errors.New("amount is not a valid number of minor units")
	ErrCurrencyUnsupported  = errors.New("unsupported currency")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrOrderAlreadyPaid     = errors.New("order already paid")
	ErrGatewayOrderNotFound = errors.New("gateway order not found")
	ErrUnauthorized         = errors.New("unauthorized")
)
