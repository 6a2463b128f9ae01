package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeSignature returns the hex HMAC-SHA256 over the canonical string
// binding a gateway order to a gateway payment, keyed with the gateway secret.
func ComputeSignature(secret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// MatchSignature recomputes the expected signature and compares it to the
// supplied value in constant time. The supplied value is never trusted as-is.
func MatchSignature(secret, gatewayOrderID, gatewayPaymentID, supplied string) bool {
	expected := ComputeSignature(secret, gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(supplied))
}
