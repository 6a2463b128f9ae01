package verify

import (
	"context"
	"errors"

	"dukaan-be/internal/logger"
	"dukaan-be/internal/order"
	"dukaan-be/internal/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is the client-delivered callback payload. It is only a lookup
// hint; every verified fact is re-derived from the backend store.
type Request struct {
	OrderID          string `json:"orderId"`
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Signature        string `json:"signature"`
}

// Verifier recomputes the gateway's result signature server-side and compares
// it against the supplied one. It never mutates order state; the outcome
// handler owns transitions and side effects.
type Verifier struct {
	orders   order.Service
	attempts payment.Repository
	secret   string
}

func NewVerifier(orders order.Service, attempts payment.Repository, secret string) *Verifier {
	return &Verifier{orders: orders, attempts: attempts, secret: secret}
}

// Verify checks the payload against the canonical order. A nil attempt means
// nothing new happened: the payload was rejected before verification, or the
// order is already paid and the cached result was returned.
func (v *Verifier) Verify(ctx context.Context, req Request) (*payment.VerificationResult, *payment.Attempt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", req.OrderID),
		zap.String("gateway_order_id", req.GatewayOrderID),
		zap.String("gateway_payment_id", req.GatewayPaymentID),
	)

	ord, err := v.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return &payment.VerificationResult{
				Verified: false,
				Status:   payment.StatusFailed,
				Message:  "unknown order",
			}, nil, nil
		}
		return nil, nil, err
	}

	// Repeat call for a fulfilled order: return the cached outcome, no side
	// effects, no re-triggered fulfillment.
	if ord.Status == order.StatusPaid {
		prev, err := v.attempts.GetAttemptByPaymentID(ctx, req.OrderID, req.GatewayPaymentID)
		if err != nil {
			return nil, nil, err
		}
		if prev != nil && prev.Outcome == payment.OutcomeVerified {
			log.Info("verification replayed for paid order, returning cached result")
			return &payment.VerificationResult{
				Verified: true,
				Status:   payment.StatusSuccess,
			}, nil, nil
		}

		log.Warn("verification attempted against already paid order")
		return &payment.VerificationResult{
			Verified: false,
			Status:   payment.StatusFailed,
			Message:  "order already paid",
		}, nil, nil
	}

	gw, err := v.orders.GetGatewayOrder(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrGatewayOrderNotFound) {
			return &payment.VerificationResult{
				Verified: false,
				Status:   payment.StatusFailed,
				Message:  "no checkout attempt for order",
			}, nil, nil
		}
		return nil, nil, err
	}

	// The supplied gateway order must resolve back to exactly this order;
	// otherwise the attempt is rejected before any signature work.
	if gw.GatewayOrderID != req.GatewayOrderID {
		log.Warn("gateway order does not belong to order",
			zap.String("expected_gateway_order_id", gw.GatewayOrderID),
		)
		return &payment.VerificationResult{
			Verified: false,
			Status:   payment.StatusFailed,
			Message:  "gateway order does not match order",
		}, nil, nil
	}

	attempt := &payment.Attempt{
		ID:               uuid.New(),
		OrderID:          ord.ID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	}

	if payment.MatchSignature(v.secret, req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		attempt.Outcome = payment.OutcomeVerified
		return &payment.VerificationResult{
			Verified: true,
			Status:   payment.StatusSuccess,
		}, attempt, nil
	}

	attempt.Outcome = payment.OutcomeSignatureMismatch
	return &payment.VerificationResult{
		Verified: false,
		Status:   payment.StatusFailed,
		Message:  "signature mismatch",
	}, attempt, nil
}
