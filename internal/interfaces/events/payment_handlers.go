package events

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"

	"cinebook/internal/entities"
)

type PaymentCheckScheduler interface {
	Schedule(ctx context.Context, bookingID uuid.UUID, dueAt time.Time) error
}

type SeatReleaser interface {
	ReleaseIfUnpaid(ctx context.Context, bookingID uuid.UUID) error
}

// PaymentCheckRequestedHandler persists a due-time record for the booking.
// The expiry poller picks it up once the payment window has elapsed.
func PaymentCheckRequestedHandler(
	scheduler PaymentCheckScheduler,
	paymentWindow time.Duration,
) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"payment_check_requested_handler",
		func(ctx context.Context, payload *entities.PaymentCheckRequested_v1) error {
			log.FromContext(ctx).
				WithField("booking_id", payload.BookingID).
				Info("Scheduling payment check")

			return scheduler.Schedule(ctx, payload.BookingID, payload.BookedAt.Add(paymentWindow))
		},
	)
}

// PaymentWindowExpiredHandler frees the booking's seats if it is still
// unpaid. The step is idempotent, so at-least-once delivery is safe.
func PaymentWindowExpiredHandler(releaser SeatReleaser) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"payment_window_expired_handler",
		func(ctx context.Context, payload *entities.PaymentWindowExpired_v1) error {
			log.FromContext(ctx).
				WithField("booking_id", payload.BookingID).
				Info("Payment window expired, checking booking")

			return releaser.ReleaseIfUnpaid(ctx, payload.BookingID)
		},
	)
}
