package favorites

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	mdomain "cinebook/internal/domain/movies"
	"cinebook/internal/infrastructure/clients"
)

type IdentityClient interface {
	GetUserMetadata(ctx context.Context, userID string) (clients.Metadata, error)
	UpdateUserMetadata(ctx context.Context, userID string, metadata clients.Metadata) error
}

type MoviesRepo interface {
	GetMoviesByIDs(ctx context.Context, ids []uuid.UUID) ([]mdomain.Movie, error)
}

// Usecase keeps a user's favorite movies in the identity provider's
// metadata. The read-modify-write on Toggle has no optimistic lock, so
// concurrent toggles from the same user race; the provider owns the data and
// last write wins.
type Usecase struct {
	identity   IdentityClient
	moviesRepo MoviesRepo
}

func NewUsecase(identity IdentityClient, moviesRepo MoviesRepo) *Usecase {
	return &Usecase{
		identity:   identity,
		moviesRepo: moviesRepo,
	}
}

// Toggle adds the movie to the user's favorites if absent and removes it if
// present. Returns whether the movie is a favorite afterwards.
func (u *Usecase) Toggle(ctx context.Context, userID string, movieID uuid.UUID) (bool, error) {
	metadata, err := u.identity.GetUserMetadata(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to read user metadata: %w", err)
	}

	favorites := make([]uuid.UUID, 0, len(metadata.Favorites)+1)
	removed := false
	for _, id := range metadata.Favorites {
		if id == movieID {
			removed = true
			continue
		}
		favorites = append(favorites, id)
	}
	if !removed {
		favorites = append(favorites, movieID)
	}

	metadata.Favorites = favorites
	if err := u.identity.UpdateUserMetadata(ctx, userID, metadata); err != nil {
		return false, fmt.Errorf("failed to write user metadata: %w", err)
	}

	return !removed, nil
}

// List resolves the user's favorite ids against the movie collection. Ids
// with no matching movie are silently dropped.
func (u *Usecase) List(ctx context.Context, userID string) ([]mdomain.Movie, error) {
	metadata, err := u.identity.GetUserMetadata(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read user metadata: %w", err)
	}

	movies, err := u.moviesRepo.GetMoviesByIDs(ctx, metadata.Favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve favorite movies: %w", err)
	}

	return movies, nil
}
