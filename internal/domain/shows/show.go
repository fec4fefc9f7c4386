package shows

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("show not found")

// SeatMap maps a seat label to the id of the user holding it.
type SeatMap map[string]string

type Show struct {
	ID            uuid.UUID `json:"show_id"`
	MovieID       uuid.UUID `json:"movie_id"`
	StartTime     time.Time `json:"start_time"`
	Price         float64   `json:"price"`
	OccupiedSeats SeatMap   `json:"occupied_seats"`
}

// Upcoming is a show joined with its movie for the reminder sweep.
// MovieTitle is empty when the movie reference is dangling.
type Upcoming struct {
	Show       Show
	MovieTitle string
	HasMovie   bool
}

// OccupantIDs returns the distinct user ids holding seats.
func (s Show) OccupantIDs() []string {
	seen := make(map[string]struct{}, len(s.OccupiedSeats))
	var ids []string
	for _, userID := range s.OccupiedSeats {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		ids = append(ids, userID)
	}
	return ids
}

// ReleaseSeats computes the seat map with the given seats removed. The input
// map is not mutated. Removing a seat that is already absent is a no-op, so
// replaying a release never double-frees.
func ReleaseSeats(occupied SeatMap, seats []string) (SeatMap, bool) {
	released := make(SeatMap, len(occupied))
	for seat, userID := range occupied {
		released[seat] = userID
	}

	changed := false
	for _, seat := range seats {
		if _, ok := released[seat]; ok {
			delete(released, seat)
			changed = true
		}
	}

	return released, changed
}
