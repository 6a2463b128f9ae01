// internal/payment/payment.go
package payment

import (
	"context"
)

type Gateway interface {
	CreateOrder(
		ctx context.Context,
		receipt string,
		amountMinor int64,
		currency string,
	) (*GatewayOrder, error)
}
