package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	domain "cinebook/internal/domain/bookings"
)

type BookingsRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewBookingsRepo(db *sqlx.DB, getter *trmsqlx.CtxGetter) *BookingsRepo {
	return &BookingsRepo{
		db:     db,
		getter: getter,
	}
}

func (r *BookingsRepo) CreateBooking(ctx context.Context, booking domain.Booking) (uuid.UUID, error) {
	var id uuid.UUID

	query := `
		INSERT INTO bookings (
			show_id, user_id, seats, amount, is_paid, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id`

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowxContext(ctx, query,
		booking.ShowID,
		booking.UserID,
		pq.Array(booking.Seats),
		booking.Amount,
		booking.IsPaid,
		booking.CreatedAt,
	).Scan(&id)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return id, nil
}

func (r *BookingsRepo) GetBooking(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	var booking domain.Booking

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowxContext(ctx, `
		SELECT id, show_id, user_id, seats, amount, is_paid, created_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(
		&booking.ID,
		&booking.ShowID,
		&booking.UserID,
		pq.Array(&booking.Seats),
		&booking.Amount,
		&booking.IsPaid,
		&booking.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// GetBookingDetails loads a booking with its show and movie joined. A missing
// show or movie surfaces as ErrNotFound since the join is strict.
func (r *BookingsRepo) GetBookingDetails(ctx context.Context, id uuid.UUID) (domain.Details, error) {
	var details domain.Details

	err := r.db.QueryRowxContext(ctx, `
		SELECT b.id, b.show_id, b.user_id, b.seats, b.amount, b.is_paid, b.created_at,
			s.start_time, m.id, m.title, m.poster_url
		FROM bookings b
		JOIN shows s ON s.id = b.show_id
		JOIN movies m ON m.id = s.movie_id
		WHERE b.id = $1
	`, id).Scan(
		&details.ID,
		&details.ShowID,
		&details.UserID,
		pq.Array(&details.Seats),
		&details.Amount,
		&details.IsPaid,
		&details.CreatedAt,
		&details.ShowStartTime,
		&details.MovieID,
		&details.MovieTitle,
		&details.PosterURL,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Details{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Details{}, fmt.Errorf("failed to get booking details: %w", err)
	}

	return details, nil
}

// ListUserBookings returns the user's bookings with show and movie joined,
// newest first.
func (r *BookingsRepo) ListUserBookings(ctx context.Context, userID string) ([]domain.Details, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT b.id, b.show_id, b.user_id, b.seats, b.amount, b.is_paid, b.created_at,
			s.start_time, m.id, m.title, m.poster_url
		FROM bookings b
		JOIN shows s ON s.id = b.show_id
		JOIN movies m ON m.id = s.movie_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var result []domain.Details
	for rows.Next() {
		var details domain.Details

		err := rows.Scan(
			&details.ID,
			&details.ShowID,
			&details.UserID,
			pq.Array(&details.Seats),
			&details.Amount,
			&details.IsPaid,
			&details.CreatedAt,
			&details.ShowStartTime,
			&details.MovieID,
			&details.MovieTitle,
			&details.PosterURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		result = append(result, details)
	}

	return result, rows.Err()
}

// DeleteBooking removes the booking; deleting an absent booking is success.
func (r *BookingsRepo) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}
