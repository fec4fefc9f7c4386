package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	mdomain "cinebook/internal/domain/movies"
)

type FavoritesService interface {
	Toggle(ctx context.Context, userID string, movieID uuid.UUID) (bool, error)
	List(ctx context.Context, userID string) ([]mdomain.Movie, error)
}

type ToggleFavoriteRequest struct {
	MovieID uuid.UUID `json:"movie_id"`
}

func (s *Server) ToggleFavoriteHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var request ToggleFavoriteRequest
	if err := c.Bind(&request); err != nil {
		return respondFailure(c, "invalid request body")
	}
	if request.MovieID == uuid.Nil {
		return respondFailure(c, "movie_id is required")
	}

	favorited, err := s.favoritesService.Toggle(ctx, callerID(c), request.MovieID)
	if err != nil {
		return respondFailure(c, "could not update favorites")
	}

	return respondSuccess(c, envelope{
		"favorited": favorited,
	})
}

func (s *Server) ListFavoritesHandler(c echo.Context) error {
	ctx := c.Request().Context()

	movies, err := s.favoritesService.List(ctx, callerID(c))
	if err != nil {
		return respondFailure(c, "could not fetch favorites")
	}

	if movies == nil {
		movies = []mdomain.Movie{}
	}

	return respondSuccess(c, envelope{
		"movies": movies,
	})
}
