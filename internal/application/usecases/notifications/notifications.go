package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"

	bdomain "cinebook/internal/domain/bookings"
	udomain "cinebook/internal/domain/users"
)

type BookingsRepo interface {
	GetBookingDetails(ctx context.Context, id uuid.UUID) (bdomain.Details, error)
}

type UsersRepo interface {
	GetUser(ctx context.Context, id string) (udomain.User, error)
	ListUsers(ctx context.Context) ([]udomain.User, error)
}

type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type Service struct {
	bookingsRepo BookingsRepo
	usersRepo    UsersRepo
	mail         MailSender
}

func NewService(bookingsRepo BookingsRepo, usersRepo UsersRepo, mail MailSender) *Service {
	return &Service{
		bookingsRepo: bookingsRepo,
		usersRepo:    usersRepo,
		mail:         mail,
	}
}

// SendBookingConfirmation mails the booking owner one confirmation. Missing
// referenced entities surface as errors; the triggering event is only
// emitted after all of them exist.
func (s *Service) SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) error {
	details, err := s.bookingsRepo.GetBookingDetails(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to load booking details: %w", err)
	}

	user, err := s.usersRepo.GetUser(ctx, details.UserID)
	if err != nil {
		return fmt.Errorf("failed to load booking owner: %w", err)
	}

	return s.mail.Send(ctx, user.Email,
		fmt.Sprintf("Booking confirmed: %s", details.MovieTitle),
		confirmationBody(user.Name, details),
	)
}

// BroadcastNewShow mails every user an announcement, sequentially. A failed
// send aborts the remainder and surfaces to the platform's retry.
func (s *Service) BroadcastNewShow(ctx context.Context, movieID uuid.UUID, movieTitle string) error {
	users, err := s.usersRepo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		err := s.mail.Send(ctx, user.Email,
			fmt.Sprintf("Now showing: %s", movieTitle),
			announcementBody(user.Name, movieTitle, movieID),
		)
		if err != nil {
			return fmt.Errorf("failed to send announcement to %s: %w", user.Email, err)
		}
	}

	log.FromContext(ctx).
		WithField("movie_id", movieID).
		WithField("recipients", len(users)).
		Info("New show broadcast complete")

	return nil
}

func confirmationBody(name string, details bdomain.Details) string {
	return fmt.Sprintf(`
	<h2>Your booking is confirmed!</h2>
	<p>Hi %s,</p>
	<p>You booked seat(s) %s for <strong>%s</strong> on %s.</p>
	<p>Amount paid: $%.2f</p>
	`,
		name,
		strings.Join(details.Seats, ", "),
		details.MovieTitle,
		details.ShowStartTime.Format("Mon, 02 Jan 2006 15:04"),
		details.Amount,
	)
}

func announcementBody(name, movieTitle string, movieID uuid.UUID) string {
	return fmt.Sprintf(`
	<h2>A new show just opened!</h2>
	<p>Hi %s,</p>
	<p>Tickets for <strong>%s</strong> are now on sale.</p>
	<p><a href="/movies/%s">Book your seats</a></p>
	`, name, movieTitle, movieID)
}
