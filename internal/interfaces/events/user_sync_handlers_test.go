package events_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "cinebook/internal/domain/users"
	"cinebook/internal/entities"
	"cinebook/internal/interfaces/events"
)

type fakeUsersRepo struct {
	users map[string]domain.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]domain.User{}}
}

func (r *fakeUsersRepo) Create(_ context.Context, user domain.User) error {
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("duplicate user id %s", user.ID)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUsersRepo) Update(_ context.Context, user domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return nil
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUsersRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func TestUserSync_CreateThenDeleteLeavesNothing(t *testing.T) {
	repo := newFakeUsersRepo()
	ctx := context.Background()

	err := events.UserCreatedHandler(repo).Handle(ctx, &entities.UserCreated_v1{
		UserID:         "user_1",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		EmailAddresses: []string{"ada@example.com", "backup@example.com"},
		ImageURL:       "https://img.example.com/ada.png",
	})
	require.NoError(t, err)

	created := repo.users["user_1"]
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.Equal(t, "https://img.example.com/ada.png", created.AvatarURL)

	err = events.UserDeletedHandler(repo).Handle(ctx, &entities.UserDeleted_v1{
		UserID: "user_1",
	})
	require.NoError(t, err)

	assert.Empty(t, repo.users)
}

func TestUserSync_UpdateOfUnknownIDIsNoOp(t *testing.T) {
	repo := newFakeUsersRepo()

	err := events.UserUpdatedHandler(repo).Handle(context.Background(), &entities.UserUpdated_v1{
		UserID:         "user_missing",
		FirstName:      "Nobody",
		EmailAddresses: []string{"nobody@example.com"},
	})

	require.NoError(t, err)
	assert.Empty(t, repo.users)
}

func TestUserSync_DuplicateCreateSurfaces(t *testing.T) {
	repo := newFakeUsersRepo()
	ctx := context.Background()

	event := &entities.UserCreated_v1{
		UserID:         "user_1",
		FirstName:      "Ada",
		EmailAddresses: []string{"ada@example.com"},
	}

	require.NoError(t, events.UserCreatedHandler(repo).Handle(ctx, event))
	assert.Error(t, events.UserCreatedHandler(repo).Handle(ctx, event))
}

func TestUserSync_DeleteOfUnknownIDIsNoOp(t *testing.T) {
	repo := newFakeUsersRepo()

	err := events.UserDeletedHandler(repo).Handle(context.Background(), &entities.UserDeleted_v1{
		UserID: "user_missing",
	})

	assert.NoError(t, err)
}
