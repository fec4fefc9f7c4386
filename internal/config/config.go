package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Identity IdentityConfig
	Mail     MailConfig
	Booking  BookingConfig
}

type HTTPConfig struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

type PostgresConfig struct {
	URL string `envconfig:"POSTGRES_URL" required:"true"`
}

type RedisConfig struct {
	Addr string `envconfig:"REDIS_ADDR" required:"true"`
}

type IdentityConfig struct {
	BaseURL       string `envconfig:"IDENTITY_BASE_URL" required:"true"`
	APIKey        string `envconfig:"IDENTITY_API_KEY" required:"true"`
	SessionSecret string `envconfig:"IDENTITY_SESSION_SECRET" required:"true"`
	WebhookSecret string `envconfig:"IDENTITY_WEBHOOK_SECRET" required:"true"`
}

type MailConfig struct {
	SMTPHost string `envconfig:"SMTP_HOST" required:"true"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME" required:"true"`
	Password string `envconfig:"SMTP_PASSWORD" required:"true"`
	From     string `envconfig:"MAIL_FROM" required:"true"`
}

type BookingConfig struct {
	// PaymentWindow is how long an unpaid booking keeps its seats.
	PaymentWindow time.Duration `envconfig:"PAYMENT_WINDOW" default:"10m"`
	// ExpiryPollInterval is how often the poller looks for due payment checks.
	ExpiryPollInterval time.Duration `envconfig:"EXPIRY_POLL_INTERVAL" default:"5s"`
	// ReminderInterval is the reminder sweep schedule.
	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"8h"`
	// ReminderWindow is the width of the look-ahead window scanned per sweep.
	ReminderWindow time.Duration `envconfig:"REMINDER_WINDOW" default:"10m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
