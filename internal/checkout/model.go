package checkout

import "errors"

var (
	// ErrCheckoutInProgress rejects a second Open for an order whose
	// interactive session is still live.
	ErrCheckoutInProgress = errors.New("checkout already in progress for order")
)

// CustomerInfo prefills the hosted payment surface.
type CustomerInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// Options is the invocation input handed to the hosted widget.
type Options struct {
	KeyID          string       `json:"publicKey"`
	GatewayOrderID string       `json:"gatewayOrderId"`
	AmountMinor    int64        `json:"amountMinorUnits"`
	Currency       string       `json:"currency"`
	DisplayName    string       `json:"displayName"`
	Description    string       `json:"description"`
	OrderID        string       `json:"orderId"`
	Prefill        CustomerInfo `json:"prefill"`
}

type ResultStatus string

const (
	StatusSucceeded ResultStatus = "SUCCEEDED"
	StatusCancelled ResultStatus = "CANCELLED"
	StatusFailed    ResultStatus = "FAILED"
)

// Result is the single tagged outcome of one interactive checkout attempt.
// Success fields are set only for SUCCEEDED, failure fields only for FAILED;
// a user dismissal carries nothing.
type Result struct {
	Status ResultStatus

	GatewayPaymentID string
	GatewayOrderID   string
	Signature        string

	FailureCode        string
	FailureDescription string
}
