package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	domain "cinebook/internal/domain/users"
)

type UsersRepo struct {
	db *sqlx.DB
}

func NewUsersRepo(db *sqlx.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Create inserts a new user record. The event source guarantees at most one
// creation per identity, so a duplicate id surfaces as an error.
func (r *UsersRepo) Create(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			id, email, name, avatar_url
		) VALUES (
			$1, $2, $3, $4
		)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update applies the same projection as Create by id. Updating an absent id
// is a successful no-op; the record is treated as already consistent.
func (r *UsersRepo) Update(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users SET
			email = $2,
			name = $3,
			avatar_url = $4
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete removes the record by id; deleting an absent id is a no-op.
func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (r *UsersRepo) GetUser(ctx context.Context, id string) (domain.User, error) {
	var user domain.User

	query := `SELECT id, email, name, avatar_url FROM users WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Email, &user.Name, &user.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *UsersRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id, email, name, avatar_url FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build users query: %w", err)
	}

	var result []domain.User
	err = r.db.SelectContext(ctx, &result, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return result, nil
}

func (r *UsersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	var result []domain.User

	err := r.db.SelectContext(ctx, &result, `SELECT id, email, name, avatar_url FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return result, nil
}
