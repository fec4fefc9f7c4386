package events

import (
	"context"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	domain "cinebook/internal/domain/users"
	"cinebook/internal/entities"
)

type UsersRepository interface {
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id string) error
}

func UserCreatedHandler(usersRepo UsersRepository) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"user_created_handler",
		func(ctx context.Context, payload *entities.UserCreated_v1) error {
			log.FromContext(ctx).
				WithField("user_id", payload.UserID).
				Info("Syncing created user")

			return usersRepo.Create(ctx, domain.FromIdentityPayload(
				payload.UserID,
				payload.FirstName,
				payload.LastName,
				payload.EmailAddresses,
				payload.ImageURL,
			))
		},
	)
}

func UserUpdatedHandler(usersRepo UsersRepository) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"user_updated_handler",
		func(ctx context.Context, payload *entities.UserUpdated_v1) error {
			log.FromContext(ctx).
				WithField("user_id", payload.UserID).
				Info("Syncing updated user")

			return usersRepo.Update(ctx, domain.FromIdentityPayload(
				payload.UserID,
				payload.FirstName,
				payload.LastName,
				payload.EmailAddresses,
				payload.ImageURL,
			))
		},
	)
}

func UserDeletedHandler(usersRepo UsersRepository) cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"user_deleted_handler",
		func(ctx context.Context, payload *entities.UserDeleted_v1) error {
			log.FromContext(ctx).
				WithField("user_id", payload.UserID).
				Info("Removing deleted user")

			return usersRepo.Delete(ctx, payload.UserID)
		},
	)
}
