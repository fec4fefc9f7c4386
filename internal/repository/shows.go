package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	domain "cinebook/internal/domain/shows"
)

type ShowsRepo struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewShowsRepo(db *sqlx.DB, getter *trmsqlx.CtxGetter) *ShowsRepo {
	return &ShowsRepo{
		db:     db,
		getter: getter,
	}
}

func (r *ShowsRepo) GetShow(ctx context.Context, id uuid.UUID) (domain.Show, error) {
	var (
		show      domain.Show
		seatsJSON []byte
	)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowxContext(ctx, `
		SELECT id, movie_id, start_time, price, occupied_seats
		FROM shows
		WHERE id = $1
	`, id).Scan(&show.ID, &show.MovieID, &show.StartTime, &show.Price, &seatsJSON)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Show{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Show{}, fmt.Errorf("failed to get show: %w", err)
	}

	if err := json.Unmarshal(seatsJSON, &show.OccupiedSeats); err != nil {
		return domain.Show{}, fmt.Errorf("failed to unmarshal occupied seats: %w", err)
	}

	return show, nil
}

func (r *ShowsRepo) UpdateOccupiedSeats(ctx context.Context, showID uuid.UUID, seats domain.SeatMap) error {
	seatsJSON, err := json.Marshal(seats)
	if err != nil {
		return fmt.Errorf("failed to marshal occupied seats: %w", err)
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, `
		UPDATE shows SET occupied_seats = $2 WHERE id = $1
	`, showID, seatsJSON)
	if err != nil {
		return fmt.Errorf("failed to update occupied seats: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update occupied seats: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListStartingBetween returns shows with start_time in [from, to), each
// joined with its movie title when the movie exists.
func (r *ShowsRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Upcoming, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT s.id, s.movie_id, s.start_time, s.price, s.occupied_seats, m.title
		FROM shows s
		LEFT JOIN movies m ON m.id = s.movie_id
		WHERE s.start_time >= $1 AND s.start_time < $2
		ORDER BY s.start_time
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}
	defer rows.Close()

	var result []domain.Upcoming
	for rows.Next() {
		var (
			upcoming  domain.Upcoming
			seatsJSON []byte
			title     sql.NullString
		)

		err := rows.Scan(
			&upcoming.Show.ID,
			&upcoming.Show.MovieID,
			&upcoming.Show.StartTime,
			&upcoming.Show.Price,
			&seatsJSON,
			&title,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan show: %w", err)
		}

		if err := json.Unmarshal(seatsJSON, &upcoming.Show.OccupiedSeats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal occupied seats: %w", err)
		}

		upcoming.MovieTitle = title.String
		upcoming.HasMovie = title.Valid

		result = append(result, upcoming)
	}

	return result, rows.Err()
}
