package movies

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("movie not found")

// Movie is reference data; nothing in this service writes it.
type Movie struct {
	ID              uuid.UUID `json:"movie_id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Genre           string    `json:"genre" db:"genre"`
	Description     string    `json:"description" db:"description"`
	PosterURL       string    `json:"poster_url" db:"poster_url"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
}
