package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

type Server struct {
	e    *echo.Echo
	addr string

	bookingsService  BookingsService
	favoritesService FavoritesService
	identityWebhook  *IdentityWebhook
}

func NewServer(
	e *echo.Echo,
	addr string,
	sessionSecret string,
	bookingsService BookingsService,
	favoritesService FavoritesService,
	identityWebhook *IdentityWebhook,
	routerIsRunning func() bool,
) *Server {
	srv := &Server{
		e:                e,
		addr:             addr,
		bookingsService:  bookingsService,
		favoritesService: favoritesService,
		identityWebhook:  identityWebhook,
	}

	api := e.Group("/api", AuthMiddleware(sessionSecret))
	api.GET("/bookings", srv.GetBookingsHandler)
	api.POST("/favorites", srv.ToggleFavoriteHandler)
	api.GET("/favorites", srv.ListFavoritesHandler)

	e.POST("/webhooks/identity", identityWebhook.Handle)

	e.GET("/health", func(c echo.Context) error {
		if !routerIsRunning() {
			return c.String(http.StatusServiceUnavailable, "router is not running")
		}
		return c.String(http.StatusOK, "ok")
	})

	// logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log.FromContext(c.Request().Context()).
				WithField("path", c.Request().URL.Path).
				Info("Handling a request")

			err := next(c)

			if err != nil {
				log.FromContext(c.Request().Context()).
					WithField("error", err).
					Error("Request handling error")
			}

			return err
		}
	})
	return srv
}

func (s *Server) Start() error {
	err := s.e.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
