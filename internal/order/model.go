package order

import (
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusVerifying OrderStatus = "VERIFYING"
	StatusPaid      OrderStatus = "PAID"
	StatusFailed    OrderStatus = "FAILED"
)

// Order is the merchant-side record of an intended purchase. Amounts are
// always an integer count of the currency's smallest denomination.
type Order struct {
	ID          string
	UserID      uint
	AmountMinor int64
	Currency    string
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
