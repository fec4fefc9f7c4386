package repository

import (
	"context"
	"fmt"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PaymentChecksRepo stores the durable due-time records behind the
// booking-expiry pipeline. A row survives process restarts until a poller
// claims it, which is what makes the payment timeout restart-safe.
type PaymentChecksRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewPaymentChecksRepo(db *sqlx.DB, getter *trmsqlx.CtxGetter) *PaymentChecksRepo {
	return &PaymentChecksRepo{
		db:     db,
		getter: getter,
	}
}

// Schedule records that the booking must be checked at dueAt. Scheduling the
// same booking twice is a no-op, so redelivered requests are safe.
func (r *PaymentChecksRepo) Schedule(ctx context.Context, bookingID uuid.UUID, dueAt time.Time) error {
	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, `
		INSERT INTO payment_checks (booking_id, due_at)
		VALUES ($1, $2)
		ON CONFLICT (booking_id) DO NOTHING
	`, bookingID, dueAt)
	if err != nil {
		return fmt.Errorf("failed to schedule payment check: %w", err)
	}

	return nil
}

// ClaimDue marks due, unclaimed checks as dispatched and returns their
// booking ids. Must run inside a transaction together with publishing the
// expiry events; SKIP LOCKED keeps concurrent pollers off each other's rows.
func (r *PaymentChecksRepo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.getter.DefaultTrOrDB(ctx, r.db).QueryxContext(ctx, `
		UPDATE payment_checks SET dispatched = TRUE
		WHERE booking_id IN (
			SELECT booking_id FROM payment_checks
			WHERE due_at <= $1 AND NOT dispatched
			ORDER BY due_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING booking_id
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due payment checks: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan payment check: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
