package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdomain "cinebook/internal/domain/shows"
	udomain "cinebook/internal/domain/users"
	"cinebook/internal/repository"
)

func getDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL not set, skipping repository tests")
	}

	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repository.InitializeDBSchema(db))

	return db
}

func TestUsersRepo_CreateUpdateDelete(t *testing.T) {
	db := getDB(t)
	repo := repository.NewUsersRepo(db)
	ctx := context.Background()

	userID := "user_" + uuid.NewString()
	t.Cleanup(func() { _ = repo.Delete(context.Background(), userID) })

	err := repo.Create(ctx, udomain.User{
		ID:    userID,
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
	})
	require.NoError(t, err)

	got, err := repo.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)

	err = repo.Update(ctx, udomain.User{
		ID:    userID,
		Email: "ada@example.com",
		Name:  "Ada King",
	})
	require.NoError(t, err)

	got, err = repo.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", got.Name)

	require.NoError(t, repo.Delete(ctx, userID))

	_, err = repo.GetUser(ctx, userID)
	assert.ErrorIs(t, err, udomain.ErrNotFound)
}

func TestUsersRepo_UpdateOfUnknownIDIsNoOp(t *testing.T) {
	db := getDB(t)
	repo := repository.NewUsersRepo(db)
	ctx := context.Background()

	missingID := "user_" + uuid.NewString()

	err := repo.Update(ctx, udomain.User{
		ID:    missingID,
		Email: "ghost@example.com",
		Name:  "Ghost",
	})
	require.NoError(t, err)

	_, err = repo.GetUser(ctx, missingID)
	assert.ErrorIs(t, err, udomain.ErrNotFound)
}

func TestUsersRepo_DeleteOfUnknownIDIsNoOp(t *testing.T) {
	db := getDB(t)
	repo := repository.NewUsersRepo(db)

	assert.NoError(t, repo.Delete(context.Background(), "user_"+uuid.NewString()))
}

func TestShowsRepo_SeatRoundTrip(t *testing.T) {
	db := getDB(t)
	repo := repository.NewShowsRepo(db, trmsqlx.DefaultCtxGetter)
	ctx := context.Background()

	var showID uuid.UUID
	err := db.QueryRowxContext(ctx, `
		INSERT INTO shows (movie_id, start_time, price, occupied_seats)
		VALUES ($1, $2, $3, '{"A1": "user_1", "A2": "user_1"}')
		RETURNING id
	`, uuid.New(), time.Now().Add(time.Hour), 12.50).Scan(&showID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM shows WHERE id = $1`, showID)
	})

	show, err := repo.GetShow(ctx, showID)
	require.NoError(t, err)
	assert.Equal(t, sdomain.SeatMap{"A1": "user_1", "A2": "user_1"}, show.OccupiedSeats)

	released, changed := sdomain.ReleaseSeats(show.OccupiedSeats, []string{"A2"})
	require.True(t, changed)
	require.NoError(t, repo.UpdateOccupiedSeats(ctx, showID, released))

	show, err = repo.GetShow(ctx, showID)
	require.NoError(t, err)
	assert.Equal(t, sdomain.SeatMap{"A1": "user_1"}, show.OccupiedSeats)
}

func TestShowsRepo_UpdateUnknownShow(t *testing.T) {
	db := getDB(t)
	repo := repository.NewShowsRepo(db, trmsqlx.DefaultCtxGetter)

	err := repo.UpdateOccupiedSeats(context.Background(), uuid.New(), sdomain.SeatMap{})
	assert.ErrorIs(t, err, sdomain.ErrNotFound)
}

func TestPaymentChecksRepo_ScheduleAndClaim(t *testing.T) {
	db := getDB(t)
	repo := repository.NewPaymentChecksRepo(db, trmsqlx.DefaultCtxGetter)
	ctx := context.Background()

	bookingID := uuid.New()
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM payment_checks WHERE booking_id = $1`, bookingID)
	})

	dueAt := time.Now().Add(-time.Minute)
	require.NoError(t, repo.Schedule(ctx, bookingID, dueAt))
	// redelivery keeps the original due time
	require.NoError(t, repo.Schedule(ctx, bookingID, dueAt.Add(time.Hour)))

	ids, err := repo.ClaimDue(ctx, time.Now(), 100)
	require.NoError(t, err)
	assert.Contains(t, ids, bookingID)

	// a claimed check stays claimed
	ids, err = repo.ClaimDue(ctx, time.Now(), 100)
	require.NoError(t, err)
	assert.NotContains(t, ids, bookingID)
}

func TestPaymentChecksRepo_FutureCheckNotClaimed(t *testing.T) {
	db := getDB(t)
	repo := repository.NewPaymentChecksRepo(db, trmsqlx.DefaultCtxGetter)
	ctx := context.Background()

	bookingID := uuid.New()
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM payment_checks WHERE booking_id = $1`, bookingID)
	})

	require.NoError(t, repo.Schedule(ctx, bookingID, time.Now().Add(10*time.Minute)))

	ids, err := repo.ClaimDue(ctx, time.Now(), 100)
	require.NoError(t, err)
	assert.NotContains(t, ids, bookingID)
}
