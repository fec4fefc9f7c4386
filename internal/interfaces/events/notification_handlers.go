package events

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/google/uuid"

	"cinebook/internal/entities"
)

type NotificationsService interface {
	SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) error
	BroadcastNewShow(ctx context.Context, movieID uuid.UUID, movieTitle string) error
}

func ShowBookedHandler(notifications NotificationsService) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"show_booked_handler",
		func(ctx context.Context, payload *entities.ShowBooked_v1) error {
			log.FromContext(ctx).
				WithField("booking_id", payload.BookingID).
				Info("Sending booking confirmation")

			return notifications.SendBookingConfirmation(ctx, payload.BookingID)
		},
	)
}

func ShowAddedHandler(notifications NotificationsService) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"show_added_handler",
		func(ctx context.Context, payload *entities.ShowAdded_v1) error {
			log.FromContext(ctx).
				WithField("movie_id", payload.MovieID).
				Info("Broadcasting new show")

			return notifications.BroadcastNewShow(ctx, payload.MovieID, payload.MovieTitle)
		},
	)
}
