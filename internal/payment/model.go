package payment

import (
	"time"

	"github.com/google/uuid"
)

// GatewayOrder is the gateway-side handle for one checkout attempt,
// always one-to-one with the merchant Order it was derived from.
type GatewayOrder struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	OrderID        string `json:"orderId"`
	AmountMinor    int64  `json:"amountMinorUnits"`
	Currency       string `json:"currency"`
	KeyID          string `json:"publicKey"`
}

type AttemptOutcome string

const (
	OutcomeVerified          AttemptOutcome = "VERIFIED"
	OutcomeSignatureMismatch AttemptOutcome = "SIGNATURE_MISMATCH"
	OutcomeCancelled         AttemptOutcome = "CANCELLED"
	OutcomeGatewayError      AttemptOutcome = "GATEWAY_ERROR"
)

// Attempt records one invocation of the checkout flow against an order.
// An order may accumulate many attempts; at most one is ever VERIFIED.
type Attempt struct {
	ID               uuid.UUID
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	Outcome          AttemptOutcome
	CreatedAt        time.Time
}

type VerificationResult struct {
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// FailureReport is the best-effort audit payload sent when the gateway
// reports a failure during the interactive flow.
type FailureReport struct {
	OrderID        string `json:"orderId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Code           string `json:"code"`
	Description    string `json:"description"`
}
