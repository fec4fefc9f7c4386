package bookings

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("booking not found")

type Booking struct {
	ID        uuid.UUID `json:"booking_id"`
	ShowID    uuid.UUID `json:"show_id"`
	UserID    string    `json:"user_id"`
	Seats     []string  `json:"seats"`
	Amount    float64   `json:"amount"`
	IsPaid    bool      `json:"is_paid"`
	CreatedAt time.Time `json:"created_at"`
}

// Details is a booking joined with its show and movie, as rendered to
// the booking owner and in notification emails.
type Details struct {
	Booking

	ShowStartTime time.Time `json:"show_start_time"`
	MovieID       uuid.UUID `json:"movie_id"`
	MovieTitle    string    `json:"movie_title"`
	PosterURL     string    `json:"poster_url"`
}
