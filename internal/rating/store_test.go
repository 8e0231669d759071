package rating_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jsvane/pingpong/internal/database"
	"github.com/jsvane/pingpong/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (rating.RatingStore, *sql.DB, func()) {
	db, cleanup, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	return rating.NewStore(db), db, cleanup
}

func insertPlayer(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO players (id, display_name, normalized_name, created_at) VALUES (?, ?, ?, ?)`,
		id, name, name, time.Now().UnixMilli())
	require.NoError(t, err)
	return id
}

func TestReplaceAll(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	alice := insertPlayer(t, db, "ALICE")
	bob := insertPlayer(t, db, "BOB")
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("inserts fresh ratings", func(t *testing.T) {
		err := store.ReplaceAll(ctx, []rating.PlayerRating{
			{PlayerID: alice, Rating: 1016.00, LastUpdatedAt: now},
			{PlayerID: bob, Rating: 984.00, LastUpdatedAt: now},
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, 1016.00, got.Rating)
		assert.Equal(t, now, got.LastUpdatedAt)
	})

	t.Run("updates existing rows in place", func(t *testing.T) {
		err := store.ReplaceAll(ctx, []rating.PlayerRating{
			{PlayerID: alice, Rating: 1030.53, LastUpdatedAt: now},
			{PlayerID: bob, Rating: 969.47, LastUpdatedAt: now},
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, 1030.53, got.Rating)
	})

	t.Run("removes rows absent from the new set", func(t *testing.T) {
		err := store.ReplaceAll(ctx, []rating.PlayerRating{
			{PlayerID: alice, Rating: 1030.53, LastUpdatedAt: now},
		})
		require.NoError(t, err)

		_, err = store.Get(ctx, bob)
		assert.Error(t, err)

		all, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("empty set clears the table", func(t *testing.T) {
		err := store.ReplaceAll(ctx, nil)
		require.NoError(t, err)

		all, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGetMissing(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.Get(context.Background(), "nobody")
	assert.Error(t, err)
}
