package player_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jsvane/pingpong/internal/database"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (player.Directory, *sql.DB, func()) {
	db, cleanup, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")
	return player.New(db), db, cleanup
}

func TestResolveOrCreate(t *testing.T) {
	dir, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	t.Run("creates a new player on first sight", func(t *testing.T) {
		p, err := dir.ResolveOrCreate(ctx, "Alice")
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "Alice", p.DisplayName)
	})

	t.Run("is idempotent for the same name", func(t *testing.T) {
		first, err := dir.ResolveOrCreate(ctx, "Bob")
		require.NoError(t, err)
		second, err := dir.ResolveOrCreate(ctx, "Bob")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("resolves regardless of casing and padding", func(t *testing.T) {
		first, err := dir.ResolveOrCreate(ctx, "Carol")
		require.NoError(t, err)

		for _, variant := range []string{"carol", "CAROL", "  Carol  ", "cArOl"} {
			p, err := dir.ResolveOrCreate(ctx, variant)
			require.NoError(t, err)
			assert.Equal(t, first.ID, p.ID, "variant %q should resolve to the same player", variant)
			assert.Equal(t, "Carol", p.DisplayName, "display name keeps its first-seen form")
		}
	})

	t.Run("rejects blank names", func(t *testing.T) {
		_, err := dir.ResolveOrCreate(ctx, "")
		assert.Error(t, err)
		_, err = dir.ResolveOrCreate(ctx, "   ")
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	dir, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	created, err := dir.ResolveOrCreate(ctx, "Dave")
	require.NoError(t, err)

	t.Run("returns an existing player", func(t *testing.T) {
		p, err := dir.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dave", p.DisplayName)
	})

	t.Run("errors for an unknown id", func(t *testing.T) {
		_, err := dir.Get(ctx, "no-such-player")
		assert.Error(t, err)
	})
}

func TestList(t *testing.T) {
	dir, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	for _, name := range []string{"zoe", "Adam", "mia"} {
		_, err := dir.ResolveOrCreate(ctx, name)
		require.NoError(t, err)
	}

	players, err := dir.List(ctx)
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, "Adam", players[0].DisplayName)
	assert.Equal(t, "mia", players[1].DisplayName)
	assert.Equal(t, "zoe", players[2].DisplayName)
}
