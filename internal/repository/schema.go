package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func InitializeDBSchema(db *sqlx.DB) error {
	_, err := db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(255) PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	name VARCHAR(255) NOT NULL,
	avatar_url TEXT NOT NULL DEFAULT ''
);`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS movies (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title VARCHAR(255) NOT NULL,
	genre VARCHAR(255) NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	poster_url TEXT NOT NULL DEFAULT '',
	duration_minutes INTEGER NOT NULL DEFAULT 0
);`)
	if err != nil {
		return fmt.Errorf("failed to create movies table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS shows (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	movie_id UUID NOT NULL,
	start_time TIMESTAMP WITH TIME ZONE NOT NULL,
	price NUMERIC(10, 2) NOT NULL DEFAULT 0,
	occupied_seats JSONB NOT NULL DEFAULT '{}'
);`)
	if err != nil {
		return fmt.Errorf("failed to create shows table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	show_id UUID NOT NULL,
	user_id VARCHAR(255) NOT NULL,
	seats TEXT[] NOT NULL,
	amount NUMERIC(10, 2) NOT NULL DEFAULT 0,
	is_paid BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
);`)
	if err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	_, err = db.ExecContext(context.Background(), `
CREATE TABLE IF NOT EXISTS payment_checks (
	booking_id UUID PRIMARY KEY,
	due_at TIMESTAMP WITH TIME ZONE NOT NULL,
	dispatched BOOLEAN NOT NULL DEFAULT FALSE
);`)
	if err != nil {
		return fmt.Errorf("failed to create payment_checks table: %w", err)
	}

	return nil
}
