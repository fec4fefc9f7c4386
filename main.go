package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cinebook/internal/app"
	"cinebook/internal/config"
	"cinebook/internal/infrastructure/clients"
)

func main() {
	log.Init(logrus.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	watermillLogger := log.NewWatermill(logrus.NewEntry(logrus.StandardLogger()))

	db, err := sqlx.Open("postgres", cfg.Postgres.URL)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	defer redisClient.Close()

	identityClient := clients.NewIdentityClient(cfg.Identity.BaseURL, cfg.Identity.APIKey)

	mailClient, err := clients.NewMailClient(
		cfg.Mail.SMTPHost,
		cfg.Mail.SMTPPort,
		cfg.Mail.Username,
		cfg.Mail.Password,
		cfg.Mail.From,
	)
	if err != nil {
		panic(err)
	}

	a, err := app.NewApp(watermillLogger, cfg, identityClient, mailClient, redisClient, db)
	if err != nil {
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		panic(err)
	}
}
