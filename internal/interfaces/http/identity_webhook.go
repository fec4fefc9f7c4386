package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"

	"cinebook/internal/entities"
	"cinebook/internal/idempotency"
)

const (
	signatureHeader = "Webhook-Signature"
	deliveryHeader  = "Webhook-Id"
)

// IdentityWebhook bridges identity-provider lifecycle webhooks onto the
// event bus; the sync handlers consume them from there with the platform's
// delivery guarantees instead of inside the webhook request.
type IdentityWebhook struct {
	eventBus *cqrs.EventBus
	secret   string
}

func NewIdentityWebhook(eventBus *cqrs.EventBus, secret string) *IdentityWebhook {
	return &IdentityWebhook{
		eventBus: eventBus,
		secret:   secret,
	}
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string   `json:"id"`
		FirstName      string   `json:"first_name"`
		LastName       string   `json:"last_name"`
		EmailAddresses []string `json:"email_addresses"`
		ImageURL       string   `json:"image_url"`
	} `json:"data"`
}

func (w *IdentityWebhook) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if !w.validSignature(body, c.Request().Header.Get(signatureHeader)) {
		return c.NoContent(http.StatusUnauthorized)
	}

	var webhook identityEvent
	if err := json.Unmarshal(body, &webhook); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	// redelivered webhooks reuse the provider's delivery id, so the
	// resulting events share one idempotency key
	ctx := c.Request().Context()
	if deliveryID := c.Request().Header.Get(deliveryHeader); deliveryID != "" {
		ctx = idempotency.WithKey(ctx, deliveryID)
	}
	header := entities.NewEventHeaderWithIdempotencyKey(idempotency.GetKey(ctx))

	switch webhook.Type {
	case "user.created":
		err = w.eventBus.Publish(ctx, entities.UserCreated_v1{
			Header:         header,
			UserID:         webhook.Data.ID,
			FirstName:      webhook.Data.FirstName,
			LastName:       webhook.Data.LastName,
			EmailAddresses: webhook.Data.EmailAddresses,
			ImageURL:       webhook.Data.ImageURL,
		})
	case "user.updated":
		err = w.eventBus.Publish(ctx, entities.UserUpdated_v1{
			Header:         header,
			UserID:         webhook.Data.ID,
			FirstName:      webhook.Data.FirstName,
			LastName:       webhook.Data.LastName,
			EmailAddresses: webhook.Data.EmailAddresses,
			ImageURL:       webhook.Data.ImageURL,
		})
	case "user.deleted":
		err = w.eventBus.Publish(ctx, entities.UserDeleted_v1{
			Header: header,
			UserID: webhook.Data.ID,
		})
	default:
		// unknown lifecycle events are acknowledged and dropped
		return c.NoContent(http.StatusOK)
	}

	if err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusOK)
}

func (w *IdentityWebhook) validSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(w.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
