package expiry

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	bdomain "cinebook/internal/domain/bookings"
	sdomain "cinebook/internal/domain/shows"
)

type BookingsRepo interface {
	GetBooking(ctx context.Context, id uuid.UUID) (bdomain.Booking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

type ShowsRepo interface {
	GetShow(ctx context.Context, id uuid.UUID) (sdomain.Show, error)
	UpdateOccupiedSeats(ctx context.Context, showID uuid.UUID, seats sdomain.SeatMap) error
}

// ReleaseUnpaidUsecase frees the seats of bookings whose payment window
// elapsed without a payment.
type ReleaseUnpaidUsecase struct {
	bookingsRepo BookingsRepo
	showsRepo    ShowsRepo
	trManager    trm.Manager
}

func NewReleaseUnpaidUsecase(
	bookingsRepo BookingsRepo,
	showsRepo ShowsRepo,
	trManager trm.Manager,
) *ReleaseUnpaidUsecase {
	return &ReleaseUnpaidUsecase{
		bookingsRepo: bookingsRepo,
		showsRepo:    showsRepo,
		trManager:    trManager,
	}
}

// ReleaseIfUnpaid is idempotent: a paid or already-deleted booking is a
// no-op, and re-running after a partial completion cannot double-free seats
// because releasing absent seat labels changes nothing. A missing show is
// surfaced; the upstream event stream does not guarantee show persistence
// beyond the booking's lifetime.
func (u *ReleaseUnpaidUsecase) ReleaseIfUnpaid(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := u.bookingsRepo.GetBooking(ctx, bookingID)
	if errors.Is(err, bdomain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load booking: %w", err)
	}

	if booking.IsPaid {
		log.FromContext(ctx).
			WithField("booking_id", bookingID).
			Info("Booking is paid, keeping seats")
		return nil
	}

	return u.trManager.Do(ctx, func(ctx context.Context) error {
		show, err := u.showsRepo.GetShow(ctx, booking.ShowID)
		if err != nil {
			return fmt.Errorf("failed to load show: %w", err)
		}

		released, changed := sdomain.ReleaseSeats(show.OccupiedSeats, booking.Seats)
		if changed {
			if err := u.showsRepo.UpdateOccupiedSeats(ctx, show.ID, released); err != nil {
				return fmt.Errorf("failed to release seats: %w", err)
			}
		}

		if err := u.bookingsRepo.DeleteBooking(ctx, bookingID); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}

		log.FromContext(ctx).
			WithField("booking_id", bookingID).
			WithField("seats", booking.Seats).
			Info("Released seats of unpaid booking")

		return nil
	})
}
