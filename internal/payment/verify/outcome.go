package verify

import (
	"context"

	"dukaan-be/internal/cart"
	"dukaan-be/internal/logger"
	"dukaan-be/internal/order"
	"dukaan-be/internal/payment"

	"go.uber.org/zap"
)

// Callbacks are the caller's hooks for terminal attempt outcomes. Both are
// optional.
type Callbacks struct {
	OnPaid   func(attempt *payment.Attempt)
	OnFailed func(reason, message string)
}

// OutcomeHandler drives the per-order state machine from a verification
// result. A verified attempt moves the order to PAID exactly once; every
// other attempt returns it to PENDING so checkout can be retried.
type OutcomeHandler struct {
	orders    order.Service
	attempts  payment.Repository
	cart      cart.Synchronizer
	callbacks Callbacks
}

func NewOutcomeHandler(
	orders order.Service,
	attempts payment.Repository,
	cartSync cart.Synchronizer,
	callbacks Callbacks,
) *OutcomeHandler {
	return &OutcomeHandler{
		orders:    orders,
		attempts:  attempts,
		cart:      cartSync,
		callbacks: callbacks,
	}
}

func (h *OutcomeHandler) Handle(ctx context.Context, ord *order.Order, attempt *payment.Attempt) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", ord.ID),
		zap.String("gateway_payment_id", attempt.GatewayPaymentID),
		zap.String("outcome", string(attempt.Outcome)),
	)

	// Attempt submitted: PENDING -> VERIFYING. A no-op when racing another
	// attempt; the guarded PAID transition below stays the gate.
	if _, err := h.orders.BeginVerification(ctx, ord.ID); err != nil {
		return err
	}

	// Every attempt is recorded for audit, whatever its outcome.
	if err := h.attempts.SaveAttempt(ctx, attempt); err != nil {
		return err
	}

	if attempt.Outcome == payment.OutcomeVerified {
		moved, err := h.orders.MarkAsPaid(ctx, ord.ID)
		if err != nil {
			return err
		}
		if !moved {
			// A concurrent attempt won the transition; fulfillment side
			// effects must not run twice.
			log.Info("order already marked paid, skipping fulfillment side effects")
			return nil
		}

		if err := h.cart.Clear(ctx, ord.UserID); err != nil {
			log.Error("failed to clear cart after fulfillment", zap.Error(err))
		}

		log.Info("order fulfilled")
		if h.callbacks.OnPaid != nil {
			h.callbacks.OnPaid(attempt)
		}
		return nil
	}

	// Failed, cancelled, or mismatched: back to PENDING, retryable.
	if _, err := h.orders.ReturnToPending(ctx, ord.ID); err != nil {
		return err
	}

	reason := payment.ReasonServerError
	message := "payment attempt failed"

	switch attempt.Outcome {
	case payment.OutcomeSignatureMismatch:
		reason = payment.ReasonSignatureMismatch
		message = "signature mismatch"
		log.Warn("signature mismatch on payment verification, possible tampering",
			zap.String("supplied_signature", attempt.Signature),
		)
	case payment.OutcomeCancelled:
		reason = payment.ReasonUserCancelled
		message = "checkout dismissed by user"
	case payment.OutcomeGatewayError:
		reason = payment.ReasonGatewayUnavailable
		message = "gateway reported failure"
	}

	if h.callbacks.OnFailed != nil {
		h.callbacks.OnFailed(reason, message)
	}
	return nil
}

// Abandon is the caller-driven terminal transition for an order the buyer
// walked away from. PENDING -> FAILED; a paid order is never touched.
func (h *OutcomeHandler) Abandon(ctx context.Context, orderID string) (bool, error) {
	return h.orders.MarkAsFailed(ctx, orderID)
}
