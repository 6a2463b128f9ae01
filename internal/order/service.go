package order

import (
	"context"
	"fmt"
	"strings"

	"dukaan-be/internal/logger"
	"dukaan-be/internal/payment"

	"go.uber.org/zap"
)

type Service interface {
	// CreateOrder validates the amount, persists the order as PENDING if
	// absent, and opens a fresh gateway-side order for this checkout attempt.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*payment.GatewayOrder, error)

	GetOrder(ctx context.Context, orderID string) (*Order, error)
	GetGatewayOrder(ctx context.Context, orderID string) (*payment.GatewayOrder, error)

	// State machine transitions. Each is a guarded compare-and-set; the bool
	// reports whether this call performed the transition.
	BeginVerification(ctx context.Context, orderID string) (bool, error)
	MarkAsPaid(ctx context.Context, orderID string) (bool, error)
	ReturnToPending(ctx context.Context, orderID string) (bool, error)
	MarkAsFailed(ctx context.Context, orderID string) (bool, error)
}

type CreateOrderParams struct {
	OrderID     string
	UserID      uint
	AmountMajor string
	Currency    string
}

type service struct {
	repo    Repository
	gateway payment.Gateway
}

func NewService(repo Repository, gateway payment.Gateway) Service {
	return &service{repo: repo, gateway: gateway}
}

func (s *service) CreateOrder(ctx context.Context, params CreateOrderParams) (*payment.GatewayOrder, error) {
	if params.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if params.OrderID == "" {
		return nil, fmt.Errorf("%w: empty order id", ErrAmountInvalid)
	}

	currency := strings.ToUpper(params.Currency)
	amountMinor, err := MinorUnits(params.AmountMajor, currency)
	if err != nil {
		return nil, err
	}

	// The order row is the canonical record; the gateway is never consulted
	// for an amount the store does not already hold.
	o := &Order{
		ID:          params.OrderID,
		UserID:      params.UserID,
		AmountMinor: amountMinor,
		Currency:    currency,
		Status:      StatusPending,
	}
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetOrder(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusPaid {
		return nil, ErrOrderAlreadyPaid
	}

	gw, err := s.gateway.CreateOrder(ctx, existing.ID, existing.AmountMinor, existing.Currency)
	if err != nil {
		logger.FromCtx(ctx).Error("gateway order creation failed",
			zap.String("order_id", existing.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if err := s.repo.SaveGatewayOrder(ctx, gw); err != nil {
		return nil, err
	}

	return gw, nil
}

func (s *service) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

func (s *service) GetGatewayOrder(ctx context.Context, orderID string) (*payment.GatewayOrder, error) {
	return s.repo.GetGatewayOrder(ctx, orderID)
}

func (s *service) BeginVerification(ctx context.Context, orderID string) (bool, error) {
	return s.repo.UpdateStatus(ctx, orderID, StatusPending, StatusVerifying)
}

func (s *service) MarkAsPaid(ctx context.Context, orderID string) (bool, error) {
	return s.repo.UpdateStatus(ctx, orderID, StatusVerifying, StatusPaid)
}

func (s *service) ReturnToPending(ctx context.Context, orderID string) (bool, error) {
	return s.repo.UpdateStatus(ctx, orderID, StatusVerifying, StatusPending)
}

// MarkAsFailed is the caller-driven terminal transition for an abandoned order.
func (s *service) MarkAsFailed(ctx context.Context, orderID string) (bool, error) {
	return s.repo.UpdateStatus(ctx, orderID, StatusPending, StatusFailed)
}
