package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func scoredEvent(id string, scores ...[2]int) *MatchEvent {
	event := &MatchEvent{
		ID:          id,
		Kind:        KindScored,
		PlayerOneID: "alice",
		PlayerTwoID: "bob",
		MatchDate:   "2024-01-01",
		CreatedAt:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	for i, s := range scores {
		event.Sets = append(event.Sets, EventSet{
			SetNumber:      i + 1,
			PlayerOneScore: intPtr(s[0]),
			PlayerTwoScore: intPtr(s[1]),
		})
	}
	return event
}

func TestResolve_ScoredMajorityWins(t *testing.T) {
	event := scoredEvent("e1", [2]int{11, 8}, [2]int{7, 11}, [2]int{11, 9})

	outcome, err := Resolve(event)
	require.NoError(t, err)

	assert.True(t, outcome.PlayerOneWon)
	assert.Equal(t, "alice", outcome.WinnerID())
	assert.Equal(t, "bob", outcome.LoserID())
	require.Len(t, outcome.Sets, 3)

	first, ok := outcome.Sets[0].(ScoredSet)
	require.True(t, ok)
	assert.Equal(t, 11, first.PlayerOneScore)
	assert.Equal(t, 8, first.PlayerTwoScore)
}

func TestResolve_ScoredEvenSplitFails(t *testing.T) {
	event := scoredEvent("e1", [2]int{11, 8}, [2]int{7, 11})

	_, err := Resolve(event)
	assert.Error(t, err)
}

func TestResolve_ScoredNoSetsFails(t *testing.T) {
	event := scoredEvent("e1")

	_, err := Resolve(event)
	assert.Error(t, err)
}

func TestResolve_ScoredOrdersSetsBySetNumber(t *testing.T) {
	event := &MatchEvent{
		ID:          "e1",
		Kind:        KindScored,
		PlayerOneID: "alice",
		PlayerTwoID: "bob",
		MatchDate:   "2024-01-01",
		Sets: []EventSet{
			{SetNumber: 2, PlayerOneScore: intPtr(11), PlayerTwoScore: intPtr(5)},
			{SetNumber: 1, PlayerOneScore: intPtr(9), PlayerTwoScore: intPtr(11)},
			{SetNumber: 3, PlayerOneScore: intPtr(12), PlayerTwoScore: intPtr(10)},
		},
	}

	outcome, err := Resolve(event)
	require.NoError(t, err)

	require.Len(t, outcome.Sets, 3)
	assert.Equal(t, 1, outcome.Sets[0].Number())
	assert.Equal(t, 2, outcome.Sets[1].Number())
	assert.Equal(t, 3, outcome.Sets[2].Number())
	assert.False(t, outcome.Sets[0].WonByPlayerOne())
	assert.True(t, outcome.PlayerOneWon)
}

func TestResolve_OutcomeOnlyWithoutSetsSynthesizesOne(t *testing.T) {
	event := &MatchEvent{
		ID:           "e1",
		Kind:         KindOutcomeOnly,
		PlayerOneID:  "alice",
		PlayerTwoID:  "bob",
		MatchDate:    "2024-01-01",
		PlayerOneWon: true,
	}

	outcome, err := Resolve(event)
	require.NoError(t, err)

	assert.True(t, outcome.PlayerOneWon)
	require.Len(t, outcome.Sets, 1)

	set, ok := outcome.Sets[0].(OutcomeSet)
	require.True(t, ok)
	assert.Equal(t, 1, set.SetNumber)
	assert.True(t, set.PlayerOneWon)
}

func TestResolve_OutcomeOnlyUsesTopLevelFlag(t *testing.T) {
	// The explicit flag wins; the per-set winners merely have to agree at
	// submission time, but resolution trusts the flag.
	event := &MatchEvent{
		ID:           "e1",
		Kind:         KindOutcomeOnly,
		PlayerOneID:  "alice",
		PlayerTwoID:  "bob",
		MatchDate:    "2024-01-01",
		PlayerOneWon: false,
		Sets: []EventSet{
			{SetNumber: 1, PlayerOneWon: boolPtr(false)},
			{SetNumber: 2, PlayerOneWon: boolPtr(true)},
			{SetNumber: 3, PlayerOneWon: boolPtr(false)},
		},
	}

	outcome, err := Resolve(event)
	require.NoError(t, err)

	assert.False(t, outcome.PlayerOneWon)
	assert.Equal(t, "bob", outcome.WinnerID())
	require.Len(t, outcome.Sets, 3)
}

func TestResolve_UnknownKindFails(t *testing.T) {
	event := &MatchEvent{ID: "e1", Kind: EventKind("MYSTERY")}

	_, err := Resolve(event)
	assert.Error(t, err)
}
