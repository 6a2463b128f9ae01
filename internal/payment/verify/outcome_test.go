package verify

import (
	"context"
	"testing"

	"dukaan-be/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func verifiedAttempt() *payment.Attempt {
	return &payment.Attempt{
		ID:               uuid.New(),
		OrderID:          "ORD1",
		GatewayOrderID:   "gw_1",
		GatewayPaymentID: "pay_1",
		Signature:        "sig",
		Outcome:          payment.OutcomeVerified,
	}
}

func TestOutcomeHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("VerifiedClearsCartAndFiresSuccess", func(t *testing.T) {
		orders := new(MockOrderService)
		attempts := new(MockAttemptRepo)
		cartSync := new(MockCart)

		var paidAttempt *payment.Attempt
		h := NewOutcomeHandler(orders, attempts, cartSync, Callbacks{
			OnPaid: func(a *payment.Attempt) { paidAttempt = a },
			OnFailed: func(reason, message string) {
				t.Errorf("unexpected error callback: %s %s", reason, message)
			},
		})

		attempt := verifiedAttempt()

		orders.On("BeginVerification", ctx, "ORD1").Return(true, nil)
		attempts.On("SaveAttempt", ctx, attempt).Return(nil)
		orders.On("MarkAsPaid", ctx, "ORD1").Return(true, nil)
		cartSync.On("Clear", ctx, uint(7)).Return(nil)

		err := h.Handle(ctx, pendingOrder(), attempt)
		require.NoError(t, err)

		require.NotNil(t, paidAttempt)
		assert.Equal(t, "pay_1", paidAttempt.GatewayPaymentID)
		cartSync.AssertExpectations(t)
	})

	t.Run("VerifiedButAlreadyPaidSkipsSideEffects", func(t *testing.T) {
		orders := new(MockOrderService)
		attempts := new(MockAttemptRepo)
		cartSync := new(MockCart)

		h := NewOutcomeHandler(orders, attempts, cartSync, Callbacks{
			OnPaid: func(a *payment.Attempt) { t.Error("success callback must not fire twice") },
		})

		attempt := verifiedAttempt()

		orders.On("BeginVerification", ctx, "ORD1").Return(false, nil)
		attempts.On("SaveAttempt", ctx, attempt).Return(nil)
		orders.On("MarkAsPaid", ctx, "ORD1").Return(false, nil)

		err := h.Handle(ctx, pendingOrder(), attempt)
		require.NoError(t, err)

		cartSync.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("SignatureMismatchReturnsToPending", func(t *testing.T) {
		orders := new(MockOrderService)
		attempts := new(MockAttemptRepo)
		cartSync := new(MockCart)

		var gotReason string
		h := NewOutcomeHandler(orders, attempts, cartSync, Callbacks{
			OnFailed: func(reason, message string) { gotReason = reason },
		})

		attempt := verifiedAttempt()
		attempt.Outcome = payment.OutcomeSignatureMismatch

		orders.On("BeginVerification", ctx, "ORD1").Return(true, nil)
		attempts.On("SaveAttempt", ctx, attempt).Return(nil)
		orders.On("ReturnToPending", ctx, "ORD1").Return(true, nil)

		err := h.Handle(ctx, pendingOrder(), attempt)
		require.NoError(t, err)

		assert.Equal(t, payment.ReasonSignatureMismatch, gotReason)
		cartSync.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
		orders.AssertNotCalled(t, "MarkAsPaid", mock.Anything, mock.Anything)
	})

	t.Run("CancelledIsNotAFailure", func(t *testing.T) {
		orders := new(MockOrderService)
		attempts := new(MockAttemptRepo)
		cartSync := new(MockCart)

		var gotReason string
		h := NewOutcomeHandler(orders, attempts, cartSync, Callbacks{
			OnFailed: func(reason, message string) { gotReason = reason },
		})

		attempt := verifiedAttempt()
		attempt.Outcome = payment.OutcomeCancelled
		attempt.GatewayPaymentID = ""
		attempt.Signature = ""

		orders.On("BeginVerification", ctx, "ORD1").Return(true, nil)
		attempts.On("SaveAttempt", ctx, attempt).Return(nil)
		orders.On("ReturnToPending", ctx, "ORD1").Return(true, nil)

		err := h.Handle(ctx, pendingOrder(), attempt)
		require.NoError(t, err)

		assert.Equal(t, payment.ReasonUserCancelled, gotReason)
		cartSync.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	})

	t.Run("CartClearFailureDoesNotUndoFulfillment", func(t *testing.T) {
		orders := new(MockOrderService)
		attempts := new(MockAttemptRepo)
		cartSync := new(MockCart)

		fired := false
		h := NewOutcomeHandler(orders, attempts, cartSync, Callbacks{
			OnPaid: func(a *payment.Attempt) { fired = true },
		})

		attempt := verifiedAttempt()

		orders.On("BeginVerification", ctx, "ORD1").Return(true, nil)
		attempts.On("SaveAttempt", ctx, attempt).Return(nil)
		orders.On("MarkAsPaid", ctx, "ORD1").Return(true, nil)
		cartSync.On("Clear", ctx, uint(7)).Return(assert.AnError)

		err := h.Handle(ctx, pendingOrder(), attempt)
		require.NoError(t, err)
		assert.True(t, fired)
	})
}

func TestOutcomeHandler_Abandon(t *testing.T) {
	ctx := context.Background()

	orders := new(MockOrderService)
	h := NewOutcomeHandler(orders, new(MockAttemptRepo), new(MockCart), Callbacks{})

	orders.On("MarkAsFailed", ctx, "ORD1").Return(true, nil)

	moved, err := h.Abandon(ctx, "ORD1")
	assert.NoError(t, err)
	assert.True(t, moved)
}
