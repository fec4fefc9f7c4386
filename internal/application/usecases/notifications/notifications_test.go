package notifications_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/application/usecases/notifications"
	bdomain "cinebook/internal/domain/bookings"
	udomain "cinebook/internal/domain/users"
)

type fakeBookingsRepo struct {
	details map[uuid.UUID]bdomain.Details
}

func (r *fakeBookingsRepo) GetBookingDetails(_ context.Context, id uuid.UUID) (bdomain.Details, error) {
	details, ok := r.details[id]
	if !ok {
		return bdomain.Details{}, bdomain.ErrNotFound
	}
	return details, nil
}

type fakeUsersRepo struct {
	users []udomain.User
}

func (r *fakeUsersRepo) GetUser(_ context.Context, id string) (udomain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return udomain.User{}, udomain.ErrNotFound
}

func (r *fakeUsersRepo) ListUsers(_ context.Context) ([]udomain.User, error) {
	return r.users, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailSender struct {
	sent    []sentMail
	failFor string
}

func (s *fakeMailSender) Send(_ context.Context, to, subject, body string) error {
	if to == s.failFor {
		return fmt.Errorf("mail relay rejected %s", to)
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func TestSendBookingConfirmation(t *testing.T) {
	bookingID := uuid.New()
	bookingsRepo := &fakeBookingsRepo{details: map[uuid.UUID]bdomain.Details{
		bookingID: {
			Booking: bdomain.Booking{
				ID:     bookingID,
				UserID: "user_1",
				Seats:  []string{"A1", "A2"},
				Amount: 24.50,
			},
			MovieTitle:    "Dune",
			ShowStartTime: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC),
		},
	}}
	usersRepo := &fakeUsersRepo{users: []udomain.User{
		{ID: "user_1", Name: "Ada Lovelace", Email: "ada@example.com"},
	}}
	mail := &fakeMailSender{}

	service := notifications.NewService(bookingsRepo, usersRepo, mail)

	err := service.SendBookingConfirmation(context.Background(), bookingID)
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ada@example.com", mail.sent[0].to)
	assert.Contains(t, mail.sent[0].subject, "Dune")
	assert.Contains(t, mail.sent[0].body, "A1, A2")
	assert.Contains(t, mail.sent[0].body, "Ada Lovelace")
}

func TestSendBookingConfirmation_MissingBookingSurfaces(t *testing.T) {
	service := notifications.NewService(
		&fakeBookingsRepo{},
		&fakeUsersRepo{},
		&fakeMailSender{},
	)

	err := service.SendBookingConfirmation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, bdomain.ErrNotFound)
}

func TestBroadcastNewShow_MailsEveryUser(t *testing.T) {
	usersRepo := &fakeUsersRepo{users: []udomain.User{
		{ID: "user_1", Name: "Ada", Email: "ada@example.com"},
		{ID: "user_2", Name: "Grace", Email: "grace@example.com"},
	}}
	mail := &fakeMailSender{}

	service := notifications.NewService(&fakeBookingsRepo{}, usersRepo, mail)

	err := service.BroadcastNewShow(context.Background(), uuid.New(), "Alien")
	require.NoError(t, err)

	require.Len(t, mail.sent, 2)
	assert.Equal(t, "ada@example.com", mail.sent[0].to)
	assert.Equal(t, "grace@example.com", mail.sent[1].to)
	assert.Contains(t, mail.sent[0].subject, "Alien")
}

func TestBroadcastNewShow_FailureAbortsRemainder(t *testing.T) {
	usersRepo := &fakeUsersRepo{users: []udomain.User{
		{ID: "user_1", Email: "ada@example.com"},
		{ID: "user_2", Email: "grace@example.com"},
		{ID: "user_3", Email: "linus@example.com"},
	}}
	mail := &fakeMailSender{failFor: "grace@example.com"}

	service := notifications.NewService(&fakeBookingsRepo{}, usersRepo, mail)

	err := service.BroadcastNewShow(context.Background(), uuid.New(), "Alien")
	assert.Error(t, err)

	// sends are sequential; the failure stops the batch
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ada@example.com", mail.sent[0].to)
}
