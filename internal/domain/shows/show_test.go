package shows_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cinebook/internal/domain/shows"
)

func TestReleaseSeats(t *testing.T) {
	occupied := shows.SeatMap{
		"A1": "user_1",
		"A2": "user_1",
		"B5": "user_2",
	}

	released, changed := shows.ReleaseSeats(occupied, []string{"A1", "A2"})

	assert.True(t, changed)
	assert.Equal(t, shows.SeatMap{"B5": "user_2"}, released)

	// the input map is never mutated
	assert.Len(t, occupied, 3)
}

func TestReleaseSeats_AbsentSeatsAreNoOp(t *testing.T) {
	occupied := shows.SeatMap{"B5": "user_2"}

	released, changed := shows.ReleaseSeats(occupied, []string{"A1", "A2"})

	assert.False(t, changed)
	assert.Equal(t, occupied, released)
}

func TestReleaseSeats_Idempotent(t *testing.T) {
	occupied := shows.SeatMap{
		"A1": "user_1",
		"B5": "user_2",
	}

	once, changed := shows.ReleaseSeats(occupied, []string{"A1"})
	assert.True(t, changed)

	twice, changed := shows.ReleaseSeats(once, []string{"A1"})
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}

func TestReleaseSeats_EmptyMap(t *testing.T) {
	released, changed := shows.ReleaseSeats(nil, []string{"A1"})

	assert.False(t, changed)
	assert.Empty(t, released)
}

func TestOccupantIDs_Distinct(t *testing.T) {
	show := shows.Show{
		OccupiedSeats: shows.SeatMap{
			"A1": "user_1",
			"A2": "user_1",
			"B5": "user_2",
		},
	}

	ids := show.OccupantIDs()

	assert.Len(t, ids, 2)
	assert.ElementsMatch(t, []string{"user_1", "user_2"}, ids)
}
