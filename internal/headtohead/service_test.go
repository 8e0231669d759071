package headtohead_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jsvane/pingpong/internal/database"
	"github.com/jsvane/pingpong/internal/headtohead"
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      headtohead.Service
	events   ledger.EventStore
	players  player.Directory
	teardown func()
	clock    time.Time
}

func setup(t *testing.T) *fixture {
	db, cleanup, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "Failed to initialize test database")

	events := ledger.New(db)
	players := player.New(db)
	return &fixture{
		svc:      headtohead.NewService(events, players),
		events:   events,
		players:  players,
		teardown: cleanup,
		clock:    time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func intPtr(v int) *int { return &v }

// addScored records a scored match; scores are pairs of (p1, p2) set scores.
func (f *fixture) addScored(t *testing.T, p1, p2, date string, scores ...[2]int) {
	t.Helper()
	sets := make([]ledger.EventSet, len(scores))
	for i, sc := range scores {
		sets[i] = ledger.EventSet{SetNumber: i + 1, PlayerOneScore: intPtr(sc[0]), PlayerTwoScore: intPtr(sc[1])}
	}
	f.clock = f.clock.Add(time.Minute)
	err := f.events.Append(context.Background(), &ledger.MatchEvent{
		ID:          uuid.NewString(),
		Kind:        ledger.KindScored,
		PlayerOneID: p1,
		PlayerTwoID: p2,
		MatchDate:   date,
		CreatedAt:   f.clock,
		Sets:        sets,
	})
	require.NoError(t, err)
}

func (f *fixture) addOutcomeOnly(t *testing.T, p1, p2, date string, p1Won bool) {
	t.Helper()
	f.clock = f.clock.Add(time.Minute)
	err := f.events.Append(context.Background(), &ledger.MatchEvent{
		ID:           uuid.NewString(),
		Kind:         ledger.KindOutcomeOnly,
		PlayerOneID:  p1,
		PlayerTwoID:  p2,
		MatchDate:    date,
		CreatedAt:    f.clock,
		PlayerOneWon: p1Won,
	})
	require.NoError(t, err)
}

func TestSummary(t *testing.T) {
	f := setup(t)
	defer f.teardown()
	ctx := context.Background()

	alice, _ := f.players.ResolveOrCreate(ctx, "Alice")
	bob, _ := f.players.ResolveOrCreate(ctx, "Bob")
	carol, _ := f.players.ResolveOrCreate(ctx, "Carol")

	// Alice: 2 matches vs Bob (1-1), 1 match vs Carol (1-0).
	f.addScored(t, alice.ID, bob.ID, "2026-04-01", [2]int{11, 5})
	f.addScored(t, bob.ID, alice.ID, "2026-04-02", [2]int{11, 9})
	f.addScored(t, alice.ID, carol.ID, "2026-04-03", [2]int{11, 7})

	rows, err := f.svc.Summary(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Bob", rows[0].OpponentName)
	assert.Equal(t, 2, rows[0].Played)
	assert.Equal(t, 1, rows[0].Wins)
	assert.Equal(t, 1, rows[0].Losses)

	assert.Equal(t, "Carol", rows[1].OpponentName)
	assert.Equal(t, 1, rows[1].Played)
	assert.Equal(t, 1, rows[1].Wins)
}

func TestSummaryUnknownPlayer(t *testing.T) {
	f := setup(t)
	defer f.teardown()

	_, err := f.svc.Summary(context.Background(), "no-such-player")
	assert.Error(t, err)
}

func TestDetails(t *testing.T) {
	f := setup(t)
	defer f.teardown()
	ctx := context.Background()

	alice, _ := f.players.ResolveOrCreate(ctx, "Alice")
	bob, _ := f.players.ResolveOrCreate(ctx, "Bob")

	t.Run("averages point differential over scored matches", func(t *testing.T) {
		// Differentials relative to Alice: +4 and -2, so the average is +1.00.
		f.addScored(t, alice.ID, bob.ID, "2026-04-01", [2]int{15, 11})
		f.addScored(t, alice.ID, bob.ID, "2026-04-02", [2]int{11, 13})

		d, err := f.svc.Details(ctx, alice.ID, bob.ID, "", "")
		require.NoError(t, err)
		assert.Equal(t, 2, d.Played)
		assert.Equal(t, 1, d.PlayerAWins)
		assert.Equal(t, 1, d.PlayerBWins)
		assert.Equal(t, 1.00, d.AvgPointDifferential)
	})

	t.Run("flips sign when players are swapped", func(t *testing.T) {
		d, err := f.svc.Details(ctx, bob.ID, alice.ID, "", "")
		require.NoError(t, err)
		assert.Equal(t, -1.00, d.AvgPointDifferential)
	})

	t.Run("outcome-only sets contribute nothing to the differential", func(t *testing.T) {
		f.addOutcomeOnly(t, alice.ID, bob.ID, "2026-04-03", true)

		d, err := f.svc.Details(ctx, alice.ID, bob.ID, "", "")
		require.NoError(t, err)
		assert.Equal(t, 3, d.Played)
		assert.Equal(t, 2, d.PlayerAWins)
		// Same +2 point sum now spread over three matches.
		assert.Equal(t, 0.67, d.AvgPointDifferential)
	})

	t.Run("counts set wins per player", func(t *testing.T) {
		d, err := f.svc.Details(ctx, alice.ID, bob.ID, "", "")
		require.NoError(t, err)
		// Alice won sets on 04-01 and 04-03, Bob on 04-02.
		assert.Equal(t, 2, d.PlayerASetWins)
		assert.Equal(t, 1, d.PlayerBSetWins)
	})

	t.Run("honors the date range", func(t *testing.T) {
		d, err := f.svc.Details(ctx, alice.ID, bob.ID, "2026-04-02", "2026-04-02")
		require.NoError(t, err)
		assert.Equal(t, 1, d.Played)
		assert.Equal(t, 0, d.PlayerAWins)
		assert.Equal(t, 1, d.PlayerBWins)
		assert.Equal(t, -2.00, d.AvgPointDifferential)
	})

	t.Run("errors for an unknown player", func(t *testing.T) {
		_, err := f.svc.Details(ctx, alice.ID, "no-such-player", "", "")
		assert.Error(t, err)
	})
}

func TestDetailsRecent(t *testing.T) {
	f := setup(t)
	defer f.teardown()
	ctx := context.Background()

	alice, _ := f.players.ResolveOrCreate(ctx, "Alice")
	bob, _ := f.players.ResolveOrCreate(ctx, "Bob")

	// Seven matches on one day so recent must truncate to five and
	// ordinals run 1..7.
	for i := 0; i < 7; i++ {
		f.addScored(t, alice.ID, bob.ID, "2026-04-10", [2]int{11, i})
	}

	d, err := f.svc.Details(ctx, alice.ID, bob.ID, "", "")
	require.NoError(t, err)
	require.Len(t, d.Recent, 5)

	// Newest first: ordinals 7 down to 3.
	for i, m := range d.Recent {
		assert.Equal(t, 7-i, m.Ordinal)
		assert.Equal(t, alice.ID, m.WinnerID)
	}
	assert.Equal(t, []string{fmt.Sprintf("11-%d", 6)}, d.Recent[0].Sets)
}

func TestDetailsSetRendering(t *testing.T) {
	f := setup(t)
	defer f.teardown()
	ctx := context.Background()

	alice, _ := f.players.ResolveOrCreate(ctx, "Alice")
	bob, _ := f.players.ResolveOrCreate(ctx, "Bob")

	f.addScored(t, bob.ID, alice.ID, "2026-04-20", [2]int{11, 8}, [2]int{9, 11}, [2]int{11, 6})
	f.addOutcomeOnly(t, alice.ID, bob.ID, "2026-04-21", false)

	d, err := f.svc.Details(ctx, alice.ID, bob.ID, "", "")
	require.NoError(t, err)
	require.Len(t, d.Recent, 2)

	// Newest first. Scores render from Alice's perspective even though she
	// was player two in the scored event.
	assert.Equal(t, []string{"L"}, d.Recent[0].Sets)
	assert.Equal(t, []string{"8-11", "11-9", "6-11"}, d.Recent[1].Sets)
	assert.Equal(t, bob.ID, d.Recent[0].WinnerID)
	assert.Equal(t, bob.ID, d.Recent[1].WinnerID)
}
