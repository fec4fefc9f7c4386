package expiry_test

import (
	"context"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/application/usecases/expiry"
	bdomain "cinebook/internal/domain/bookings"
	sdomain "cinebook/internal/domain/shows"
)

type passthroughManager struct{}

func (passthroughManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingsRepo struct {
	bookings map[uuid.UUID]bdomain.Booking
}

func (r *fakeBookingsRepo) GetBooking(_ context.Context, id uuid.UUID) (bdomain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return bdomain.Booking{}, bdomain.ErrNotFound
	}
	return booking, nil
}

func (r *fakeBookingsRepo) DeleteBooking(_ context.Context, id uuid.UUID) error {
	delete(r.bookings, id)
	return nil
}

type fakeShowsRepo struct {
	shows map[uuid.UUID]sdomain.Show
}

func (r *fakeShowsRepo) GetShow(_ context.Context, id uuid.UUID) (sdomain.Show, error) {
	show, ok := r.shows[id]
	if !ok {
		return sdomain.Show{}, sdomain.ErrNotFound
	}
	return show, nil
}

func (r *fakeShowsRepo) UpdateOccupiedSeats(_ context.Context, showID uuid.UUID, seats sdomain.SeatMap) error {
	show, ok := r.shows[showID]
	if !ok {
		return sdomain.ErrNotFound
	}
	show.OccupiedSeats = seats
	r.shows[showID] = show
	return nil
}

func newFixture(paid bool) (*expiry.ReleaseUnpaidUsecase, *fakeBookingsRepo, *fakeShowsRepo, uuid.UUID, uuid.UUID) {
	showID := uuid.New()
	bookingID := uuid.New()

	bookingsRepo := &fakeBookingsRepo{
		bookings: map[uuid.UUID]bdomain.Booking{
			bookingID: {
				ID:     bookingID,
				ShowID: showID,
				UserID: "user_1",
				Seats:  []string{"A1", "A2"},
				IsPaid: paid,
			},
		},
	}
	showsRepo := &fakeShowsRepo{
		shows: map[uuid.UUID]sdomain.Show{
			showID: {
				ID: showID,
				OccupiedSeats: sdomain.SeatMap{
					"A1": "user_1",
					"A2": "user_1",
					"B5": "user_2",
				},
			},
		},
	}

	usecase := expiry.NewReleaseUnpaidUsecase(bookingsRepo, showsRepo, passthroughManager{})
	return usecase, bookingsRepo, showsRepo, bookingID, showID
}

func TestReleaseIfUnpaid_ReleasesSeatsAndDeletesBooking(t *testing.T) {
	usecase, bookingsRepo, showsRepo, bookingID, showID := newFixture(false)

	err := usecase.ReleaseIfUnpaid(context.Background(), bookingID)
	require.NoError(t, err)

	assert.Equal(t, sdomain.SeatMap{"B5": "user_2"}, showsRepo.shows[showID].OccupiedSeats)
	assert.NotContains(t, bookingsRepo.bookings, bookingID)
}

func TestReleaseIfUnpaid_PaidBookingIsUntouched(t *testing.T) {
	usecase, bookingsRepo, showsRepo, bookingID, showID := newFixture(true)

	err := usecase.ReleaseIfUnpaid(context.Background(), bookingID)
	require.NoError(t, err)

	assert.Len(t, showsRepo.shows[showID].OccupiedSeats, 3)
	assert.Contains(t, bookingsRepo.bookings, bookingID)
}

func TestReleaseIfUnpaid_MissingBookingIsSuccess(t *testing.T) {
	usecase, _, _, _, _ := newFixture(false)

	err := usecase.ReleaseIfUnpaid(context.Background(), uuid.New())
	assert.NoError(t, err)
}

func TestReleaseIfUnpaid_Idempotent(t *testing.T) {
	usecase, bookingsRepo, showsRepo, bookingID, showID := newFixture(false)

	require.NoError(t, usecase.ReleaseIfUnpaid(context.Background(), bookingID))

	seatsAfterFirst := showsRepo.shows[showID].OccupiedSeats

	require.NoError(t, usecase.ReleaseIfUnpaid(context.Background(), bookingID))

	assert.Equal(t, seatsAfterFirst, showsRepo.shows[showID].OccupiedSeats)
	assert.NotContains(t, bookingsRepo.bookings, bookingID)
}

func TestReleaseIfUnpaid_MissingShowSurfaces(t *testing.T) {
	usecase, bookingsRepo, showsRepo, bookingID, showID := newFixture(false)
	delete(showsRepo.shows, showID)

	err := usecase.ReleaseIfUnpaid(context.Background(), bookingID)
	assert.Error(t, err)

	// nothing was deleted; the platform retries the whole step
	assert.Contains(t, bookingsRepo.bookings, bookingID)
}
