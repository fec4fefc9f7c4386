package app

import (
	"context"
)

// MailSender is the outbound email transport. The notification and reminder
// usecases declare the same method set; a single implementation serves both.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
