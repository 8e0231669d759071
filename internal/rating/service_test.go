package rating_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jsvane/pingpong/internal/database"
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (rating.Service, ledger.EventStore, player.Directory, *metrics.Mock, *sql.DB, func()) {
	db, cleanup, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")

	events := ledger.New(db)
	players := player.New(db)
	store := rating.NewStore(db)
	m := metrics.NewMock()
	svc := rating.NewService(events, players, store, m, 1000, 32)
	return svc, events, players, m, db, cleanup
}

func appendScored(t *testing.T, events ledger.EventStore, p1, p2, date string, createdAt time.Time, p1Score, p2Score int) {
	t.Helper()
	err := events.Append(context.Background(), &ledger.MatchEvent{
		ID:          uuid.NewString(),
		Kind:        ledger.KindScored,
		PlayerOneID: p1,
		PlayerTwoID: p2,
		MatchDate:   date,
		CreatedAt:   createdAt,
		Sets: []ledger.EventSet{
			{SetNumber: 1, PlayerOneScore: intPtr(p1Score), PlayerTwoScore: intPtr(p2Score)},
		},
	})
	require.NoError(t, err)
}

func intPtr(v int) *int { return &v }

func TestRebuild(t *testing.T) {
	svc, events, players, m, _, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	alice, err := players.ResolveOrCreate(ctx, "Alice")
	require.NoError(t, err)
	bob, err := players.ResolveOrCreate(ctx, "Bob")
	require.NoError(t, err)
	carol, err := players.ResolveOrCreate(ctx, "Carol")
	require.NoError(t, err)

	byID := func(ratings []rating.PlayerRating) map[string]rating.PlayerRating {
		out := make(map[string]rating.PlayerRating, len(ratings))
		for _, r := range ratings {
			out[r.PlayerID] = r
		}
		return out
	}

	t.Run("with no matches everyone sits at the base rating", func(t *testing.T) {
		ratings, err := svc.Rebuild(ctx)
		require.NoError(t, err)
		require.Len(t, ratings, 3)
		for _, r := range ratings {
			assert.Equal(t, 1000.00, r.Rating)
		}
	})

	t.Run("a single match moves both participants", func(t *testing.T) {
		appendScored(t, events, alice.ID, bob.ID, "2026-05-01", time.Now(), 11, 7)

		ratings, err := svc.Rebuild(ctx)
		require.NoError(t, err)
		got := byID(ratings)
		assert.Equal(t, 1016.00, got[alice.ID].Rating)
		assert.Equal(t, 984.00, got[bob.ID].Rating)
		assert.Equal(t, 1000.00, got[carol.ID].Rating)
	})

	t.Run("rebuild is idempotent", func(t *testing.T) {
		first, err := svc.Rebuild(ctx)
		require.NoError(t, err)
		second, err := svc.Rebuild(ctx)
		require.NoError(t, err)
		assert.Equal(t, byID(first), byID(second))
	})

	t.Run("records rebuild duration", func(t *testing.T) {
		assert.NotEmpty(t, m.GetRebuildDurations())
	})

	t.Run("stamps last update with the final outcome time", func(t *testing.T) {
		createdAt := time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)
		appendScored(t, events, bob.ID, carol.ID, "2026-05-02", createdAt, 11, 9)

		ratings, err := svc.Rebuild(ctx)
		require.NoError(t, err)
		for _, r := range ratings {
			assert.Equal(t, createdAt, r.LastUpdatedAt)
		}
	})
}

func TestRebuildCountsSkippedEvents(t *testing.T) {
	svc, events, players, m, _, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	alice, err := players.ResolveOrCreate(ctx, "Alice")
	require.NoError(t, err)
	bob, err := players.ResolveOrCreate(ctx, "Bob")
	require.NoError(t, err)

	// A scored event whose sets split evenly cannot be resolved and is
	// dropped during reconciliation.
	err = events.Append(ctx, &ledger.MatchEvent{
		ID:          uuid.NewString(),
		Kind:        ledger.KindScored,
		PlayerOneID: alice.ID,
		PlayerTwoID: bob.ID,
		MatchDate:   "2026-05-01",
		CreatedAt:   time.Now(),
		Sets: []ledger.EventSet{
			{SetNumber: 1, PlayerOneScore: intPtr(11), PlayerTwoScore: intPtr(5)},
			{SetNumber: 2, PlayerOneScore: intPtr(4), PlayerTwoScore: intPtr(11)},
		},
	})
	require.NoError(t, err)

	ratings, err := svc.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, m.GetReconciliationSkips())
	for _, r := range ratings {
		assert.Equal(t, 1000.00, r.Rating)
	}
}

func TestCurrentDoesNotRebuild(t *testing.T) {
	store := rating.NewMockStore()
	stored := []rating.PlayerRating{{PlayerID: "p1", Rating: 1042.00, LastUpdatedAt: time.Now()}}
	store.LoadAllFunc = func(ctx context.Context) ([]rating.PlayerRating, error) {
		return stored, nil
	}

	svc := rating.NewService(ledger.NewMock(), player.NewMock(), store, metrics.NewMock(), 1000, 32)

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Equal(t, 1, store.LoadAllCalls)
}
