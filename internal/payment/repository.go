package payment

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	SaveAttempt(ctx context.Context, a *Attempt) error
	GetAttemptByPaymentID(ctx context.Context, orderID, gatewayPaymentID string) (*Attempt, error)
	SaveFailureEvent(ctx context.Context, report FailureReport) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveAttempt(ctx context.Context, a *Attempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_attempts (id,
		order_id,
		gateway_order_id,
		gateway_payment_id,
		signature,
		outcome,
		provider)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		a.ID, a.OrderID, a.GatewayOrderID, a.GatewayPaymentID, a.Signature, a.Outcome,
		"RAZORPAY",
	)
	return err
}

func (r *repository) GetAttemptByPaymentID(ctx context.Context, orderID, gatewayPaymentID string) (*Attempt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, gateway_order_id, gateway_payment_id, signature, outcome, created_at
		FROM payment_attempts
		WHERE order_id = $1 AND gateway_payment_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, orderID, gatewayPaymentID)

	var a Attempt
	err := row.Scan(
		&a.ID, &a.OrderID, &a.GatewayOrderID, &a.GatewayPaymentID,
		&a.Signature, &a.Outcome, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) SaveFailureEvent(ctx context.Context, report FailureReport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_failure_events (
			provider,
			order_id,
			gateway_order_id,
			error_code,
			error_description
		)
		VALUES ($1, $2, $3, $4, $5)
	`,
		"RAZORPAY", report.OrderID, report.GatewayOrderID, report.Code, report.Description,
	)
	return err
}
