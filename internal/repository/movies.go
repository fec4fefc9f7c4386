package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	domain "cinebook/internal/domain/movies"
)

type MoviesRepo struct {
	db *sqlx.DB
}

func NewMoviesRepo(db *sqlx.DB) *MoviesRepo {
	return &MoviesRepo{db: db}
}

func (r *MoviesRepo) GetMovie(ctx context.Context, id uuid.UUID) (domain.Movie, error) {
	var movie domain.Movie

	query := `
		SELECT id, title, genre, description, poster_url, duration_minutes
		FROM movies
		WHERE id = $1`

	err := r.db.GetContext(ctx, &movie, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Movie{}, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// GetMoviesByIDs resolves the given ids; ids with no matching movie are
// silently dropped from the result.
func (r *MoviesRepo) GetMoviesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, title, genre, description, poster_url, duration_minutes
		FROM movies
		WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build movies query: %w", err)
	}

	var result []domain.Movie
	err = r.db.SelectContext(ctx, &result, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	return result, nil
}
