package app

import (
	"context"
	"os"
	"time"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	trmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cinebook/internal/application/usecases/expiry"
	"cinebook/internal/application/usecases/favorites"
	"cinebook/internal/application/usecases/notifications"
	"cinebook/internal/application/usecases/reminders"
	"cinebook/internal/config"
	"cinebook/internal/infrastructure/event_publisher"
	"cinebook/internal/interfaces/events"
	"cinebook/internal/interfaces/http"
	"cinebook/internal/outbox"
	"cinebook/internal/repository"
)

type App struct {
	watermillLogger watermill.LoggerAdapter
	logger          zerolog.Logger
	cfg             config.Config

	router    *message.Router
	srv       *http.Server
	db        *sqlx.DB
	forwarder *outbox.Forwarder
	poller    *expiry.Poller
	sweep     *reminders.SweepUsecase
}

func NewApp(
	watermillLogger watermill.LoggerAdapter,
	cfg config.Config,
	identityClient favorites.IdentityClient,
	mailSender MailSender,
	redisClient *redis.Client,
	db *sqlx.DB,
) (*App, error) {
	trManager := trmanager.Must(trmsqlx.NewDefaultFactory(db))
	trGetter := trmsqlx.DefaultCtxGetter

	usersRepo := repository.NewUsersRepo(db)
	moviesRepo := repository.NewMoviesRepo(db)
	showsRepo := repository.NewShowsRepo(db, trGetter)
	bookingsRepo := repository.NewBookingsRepo(db, trGetter)
	checksRepo := repository.NewPaymentChecksRepo(db, trGetter)

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, err
	}

	publisher, err := event_publisher.NewRedisPublisher(watermillLogger, redisClient)
	if err != nil {
		return nil, err
	}

	eventBus, err := events.NewEventBus(
		event_publisher.CorrelationPublisherDecorator{Publisher: publisher},
		watermillLogger,
	)
	if err != nil {
		return nil, err
	}

	notificationsService := notifications.NewService(bookingsRepo, usersRepo, mailSender)
	releaseUsecase := expiry.NewReleaseUnpaidUsecase(bookingsRepo, showsRepo, trManager)
	favoritesUsecase := favorites.NewUsecase(identityClient, moviesRepo)
	sweep := reminders.NewSweepUsecase(
		showsRepo,
		usersRepo,
		mailSender,
		cfg.Booking.ReminderInterval,
		cfg.Booking.ReminderWindow,
	)

	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(events.CorrelationIDMiddleware)
	router.AddMiddleware(events.LoggingMiddleware)

	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          watermillLogger,
	}.Middleware)

	// skip marshalling errors before retrying
	router.AddMiddleware(events.SkipMarshallingErrorsMiddleware)

	marshaler := cqrs.JSONMarshaler{
		GenerateName: cqrs.StructName,
	}
	processor, err := events.NewEventProcessor(router, redisClient, marshaler, watermillLogger)
	if err != nil {
		return nil, err
	}

	err = processor.AddHandlers(
		events.UserCreatedHandler(usersRepo),
		events.UserUpdatedHandler(usersRepo),
		events.UserDeletedHandler(usersRepo),

		events.PaymentCheckRequestedHandler(checksRepo, cfg.Booking.PaymentWindow),
		events.PaymentWindowExpiredHandler(releaseUsecase),

		events.ShowBookedHandler(notificationsService),
		events.ShowAddedHandler(notificationsService),
	)
	if err != nil {
		return nil, err
	}

	forwarder, err := outbox.NewForwarder(db, redisClient, watermillLogger)
	if err != nil {
		return nil, err
	}

	poller := expiry.NewPoller(
		checksRepo,
		trManager,
		trGetter,
		watermillLogger,
		cfg.Booking.ExpiryPollInterval,
	)

	e := commonHTTP.NewEcho()
	srv := http.NewServer(
		e,
		cfg.HTTP.Addr,
		cfg.Identity.SessionSecret,
		bookingsRepo,
		favoritesUsecase,
		http.NewIdentityWebhook(eventBus, cfg.Identity.WebhookSecret),
		router.IsRunning,
	)

	return &App{
		watermillLogger: watermillLogger,
		logger:          zerolog.New(os.Stdout),
		cfg:             cfg,
		router:          router,
		srv:             srv,
		db:              db,
		forwarder:       forwarder,
		poller:          poller,
		sweep:           sweep,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := repository.InitializeDBSchema(a.db)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info().Msg("starting router")

		return a.router.Run(ctx)
	})

	g.Go(func() error {
		a.logger.Info().Msg("starting outbox forwarder")

		return a.forwarder.Run(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		a.logger.Info().Msg("starting expiry poller")

		return a.poller.Run(ctx)
	})

	g.Go(func() error {
		return a.runReminderCron(ctx)
	})

	g.Go(func() error {
		<-a.router.Running()
		a.logger.Info().Msg("router is running")

		a.logger.Info().Msg("starting server")
		return a.srv.Start()
	})

	g.Go(func() error {
		// Shut down
		<-ctx.Done()

		err := a.srv.Stop(ctx)
		if err != nil {
			a.logger.Err(err).Msg("error stopping server")
		}

		return err
	})

	return g.Wait()
}

func (a *App) runReminderCron(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc("@every "+a.cfg.Booking.ReminderInterval.String(), func() {
		summary, err := a.sweep.Run(ctx)
		if err != nil {
			a.logger.Err(err).Msg("reminder sweep failed")
			return
		}

		a.logger.Info().
			Int("sent", summary.Sent).
			Int("failed", summary.Failed).
			Msg(summary.Message)
	})
	if err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()

	return nil
}
