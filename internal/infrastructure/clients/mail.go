package clients

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// MailClient sends a single templated HTML message through an SMTP relay.
type MailClient struct {
	client *mail.Client
	from   string
}

func NewMailClient(host string, port int, username, password, from string) (MailClient, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return MailClient{}, fmt.Errorf("failed to create mail client: %w", err)
	}

	return MailClient{
		client: client,
		from:   from,
	}, nil
}

func (c MailClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return fmt.Errorf("failed to set mail sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set mail recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}
