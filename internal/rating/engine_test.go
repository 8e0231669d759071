package rating

import (
	"testing"
	"time"

	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/stretchr/testify/assert"
)

func outcome(id, winner, loser string, winnerIsPlayerOne bool) ledger.MatchOutcome {
	p1, p2 := winner, loser
	if !winnerIsPlayerOne {
		p1, p2 = loser, winner
	}
	return ledger.MatchOutcome{
		EventID:      id,
		PlayerOneID:  p1,
		PlayerTwoID:  p2,
		MatchDate:    "2026-05-01",
		PlayerOneWon: winnerIsPlayerOne,
		CreatedAt:    time.Now(),
		Ordinal:      1,
	}
}

func TestReplay(t *testing.T) {
	t.Run("equal ratings shift by half the K factor", func(t *testing.T) {
		ratings := Replay([]ledger.MatchOutcome{
			outcome("e1", "alice", "bob", true),
		}, []string{"alice", "bob"}, 1000, 32)

		assert.Equal(t, 1016.00, ratings["alice"])
		assert.Equal(t, 984.00, ratings["bob"])
	})

	t.Run("players without matches keep the base rating", func(t *testing.T) {
		ratings := Replay([]ledger.MatchOutcome{
			outcome("e1", "alice", "bob", true),
		}, []string{"alice", "bob", "carol"}, 1000, 32)

		assert.Equal(t, 1000.00, ratings["carol"])
	})

	t.Run("no outcomes yields base for everyone", func(t *testing.T) {
		ratings := Replay(nil, []string{"alice", "bob"}, 1200, 16)
		assert.Equal(t, 1200.00, ratings["alice"])
		assert.Equal(t, 1200.00, ratings["bob"])
	})

	t.Run("winner position does not matter", func(t *testing.T) {
		asP1 := Replay([]ledger.MatchOutcome{outcome("e1", "alice", "bob", true)}, []string{"alice", "bob"}, 1000, 32)
		asP2 := Replay([]ledger.MatchOutcome{outcome("e1", "alice", "bob", false)}, []string{"alice", "bob"}, 1000, 32)
		assert.Equal(t, asP1, asP2)
	})

	t.Run("rounds after every match", func(t *testing.T) {
		ratings := Replay([]ledger.MatchOutcome{
			outcome("e1", "alice", "bob", true),
			outcome("e2", "alice", "bob", true),
		}, []string{"alice", "bob"}, 1000, 32)

		// After the first match alice is 1016 and bob 984. The second
		// expectation is computed from those rounded values.
		assert.Equal(t, 1030.53, ratings["alice"])
		assert.Equal(t, 969.47, ratings["bob"])
	})

	t.Run("upset against a stronger opponent pays more", func(t *testing.T) {
		// bob first loses twice, then beats alice. His gain from the upset
		// exceeds half the K factor.
		ratings := Replay([]ledger.MatchOutcome{
			outcome("e1", "alice", "bob", true),
			outcome("e2", "alice", "bob", true),
			outcome("e3", "bob", "alice", true),
		}, []string{"alice", "bob"}, 1000, 32)

		gain := ratings["bob"] - 969.47
		assert.Greater(t, gain, 16.0)
	})

	t.Run("same outcomes always produce the same ratings", func(t *testing.T) {
		outcomes := []ledger.MatchOutcome{
			outcome("e1", "alice", "bob", true),
			outcome("e2", "bob", "carol", false),
			outcome("e3", "carol", "alice", true),
		}
		first := Replay(outcomes, []string{"alice", "bob", "carol"}, 1000, 32)
		second := Replay(outcomes, []string{"alice", "bob", "carol"}, 1000, 32)
		assert.Equal(t, first, second)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1016.00, round2(1016.0000001))
	assert.Equal(t, 984.13, round2(984.125))
	assert.Equal(t, -984.13, round2(-984.125))
	assert.Equal(t, 0.00, round2(0.004))
}
