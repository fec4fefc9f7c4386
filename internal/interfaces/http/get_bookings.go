package http

import (
	"context"

	"github.com/labstack/echo/v4"

	bdomain "cinebook/internal/domain/bookings"
)

type BookingsService interface {
	ListUserBookings(ctx context.Context, userID string) ([]bdomain.Details, error)
}

func (s *Server) GetBookingsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	bookings, err := s.bookingsService.ListUserBookings(ctx, callerID(c))
	if err != nil {
		return respondFailure(c, "could not fetch bookings")
	}

	if bookings == nil {
		bookings = []bdomain.Details{}
	}

	return respondSuccess(c, envelope{
		"bookings": bookings,
	})
}
