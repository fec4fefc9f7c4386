package entities

import (
	"time"

	"github.com/google/uuid"
)

type Event interface {
	IsInternal() bool
}

// identity-provider lifecycle events, bridged onto the bus by the webhook ingress

type UserCreated_v1 struct {
	Header EventHeader `json:"header"`

	UserID         string   `json:"user_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	EmailAddresses []string `json:"email_addresses"`
	ImageURL       string   `json:"image_url"`
}

func (e UserCreated_v1) IsInternal() bool {
	return false
}

type UserUpdated_v1 struct {
	Header EventHeader `json:"header"`

	UserID         string   `json:"user_id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	EmailAddresses []string `json:"email_addresses"`
	ImageURL       string   `json:"image_url"`
}

func (e UserUpdated_v1) IsInternal() bool {
	return false
}

type UserDeleted_v1 struct {
	Header EventHeader `json:"header"`

	UserID string `json:"user_id"`
}

func (e UserDeleted_v1) IsInternal() bool {
	return false
}

// PaymentCheckRequested_v1 is emitted when a booking is created and its
// payment deadline starts ticking.
type PaymentCheckRequested_v1 struct {
	Header EventHeader `json:"header"`

	BookingID uuid.UUID `json:"booking_id"`
	BookedAt  time.Time `json:"booked_at"`
}

func (e PaymentCheckRequested_v1) IsInternal() bool {
	return false
}

// PaymentWindowExpired_v1 is published through the outbox by the expiry
// poller once a booking's payment window has elapsed.
type PaymentWindowExpired_v1 struct {
	Header EventHeader `json:"header"`

	BookingID uuid.UUID `json:"booking_id"`
}

func (e PaymentWindowExpired_v1) IsInternal() bool {
	return true
}

type ShowBooked_v1 struct {
	Header EventHeader `json:"header"`

	BookingID uuid.UUID `json:"booking_id"`
}

func (e ShowBooked_v1) IsInternal() bool {
	return false
}

type ShowAdded_v1 struct {
	Header EventHeader `json:"header"`

	MovieID    uuid.UUID `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
}

func (e ShowAdded_v1) IsInternal() bool {
	return false
}
