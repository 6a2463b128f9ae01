package cart

import (
	"context"
)

// Synchronizer is the narrow contract the checkout flow holds on the cart:
// clear everything for the authenticated identity once fulfillment confirms.
type Synchronizer interface {
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Synchronizer {
	return &service{repo: repo}
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}

	return s.repo.ClearCart(ctx, userID)
}
