package order

import (
	"context"
	"database/sql"
	"errors"

	"dukaan-be/internal/payment"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id string) (*Order, error)
	SaveGatewayOrder(ctx context.Context, gw *payment.GatewayOrder) error
	GetGatewayOrder(ctx context.Context, orderID string) (*payment.GatewayOrder, error)
	UpdateStatus(ctx context.Context, id string, from, to OrderStatus) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder persists the order in PENDING state if not already present.
func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, amount_minor, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`,
		o.ID, o.UserID, o.AmountMinor, o.Currency, StatusPending,
	)
	return err
}

func (r *repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount_minor, currency, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id)

	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.AmountMinor, &o.Currency,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) SaveGatewayOrder(ctx context.Context, gw *payment.GatewayOrder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gateway_orders (gateway_order_id, order_id, amount_minor, currency)
		VALUES ($1, $2, $3, $4)
	`,
		gw.GatewayOrderID, gw.OrderID, gw.AmountMinor, gw.Currency,
	)
	return err
}

// GetGatewayOrder returns the gateway handle for the latest checkout attempt.
func (r *repository) GetGatewayOrder(ctx context.Context, orderID string) (*payment.GatewayOrder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT gateway_order_id, order_id, amount_minor, currency
		FROM gateway_orders
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, orderID)

	var gw payment.GatewayOrder
	err := row.Scan(&gw.GatewayOrderID, &gw.OrderID, &gw.AmountMinor, &gw.Currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGatewayOrderNotFound
		}
		return nil, err
	}
	return &gw, nil
}

// UpdateStatus performs a guarded transition and reports whether a row moved.
// PAID is terminal because no transition ever names it as the from state.
func (r *repository) UpdateStatus(ctx context.Context, id string, from, to OrderStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
