package submission

import (
	"testing"
	"time"

	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func scoredSet(n, p1, p2 int) SetRequest {
	return SetRequest{SetNumber: n, PlayerOneScore: intPtr(p1), PlayerTwoScore: intPtr(p2)}
}

func flagSet(n int, p1Won bool) SetRequest {
	return SetRequest{SetNumber: n, PlayerOneWon: boolPtr(p1Won)}
}

func baseRequest() Request {
	return Request{PlayerOneName: "Alice", PlayerTwoName: "Bob", MatchDate: "2026-05-01"}
}

func TestValidateScored(t *testing.T) {
	now := time.Now()

	t.Run("accepts a clean three set match", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{scoredSet(1, 11, 8), scoredSet(2, 7, 11), scoredSet(3, 11, 9)}

		v, err := validate(req, now)
		require.NoError(t, err)
		assert.Equal(t, ledger.KindScored, v.kind)
		assert.Len(t, v.sets, 3)
		assert.Equal(t, "2026-05-01", v.matchDate)
	})

	t.Run("accepts deuce scores", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{scoredSet(1, 15, 13)}
		_, err := validate(req, now)
		assert.NoError(t, err)
	})

	invalidScores := []struct {
		name   string
		p1, p2 int
	}{
		{"negative score", -1, 11},
		{"tie", 11, 11},
		{"winning score below 11", 10, 8},
		{"margin below 2", 11, 10},
		{"deuce margin below 2", 14, 13},
	}
	for _, tc := range invalidScores {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			req := baseRequest()
			req.Sets = []SetRequest{scoredSet(1, tc.p1, tc.p2)}
			_, err := validate(req, now)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	t.Run("rejects an even set split", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{scoredSet(1, 11, 5), scoredSet(2, 5, 11)}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "no winner")
	})

	t.Run("rejects a set with only one score", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{{SetNumber: 1, PlayerOneScore: intPtr(11)}}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "both scores")
	})

	t.Run("rejects a top-level flag on a scored submission", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{scoredSet(1, 11, 8)}
		req.PlayerOneWon = boolPtr(true)
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "win/loss flag")
	})
}

func TestValidateSetNumbers(t *testing.T) {
	now := time.Now()

	t.Run("rejects non-positive set numbers", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{scoredSet(0, 11, 8)}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "positive")
	})

	t.Run("rejects duplicate set numbers", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{scoredSet(1, 11, 8), scoredSet(1, 11, 6), scoredSet(2, 11, 3)}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "duplicate")
	})
}

func TestValidateOutcomeOnly(t *testing.T) {
	now := time.Now()

	t.Run("accepts a bare win flag", func(t *testing.T) {
		req := baseRequest()
		req.PlayerOneWon = boolPtr(false)

		v, err := validate(req, now)
		require.NoError(t, err)
		assert.Equal(t, ledger.KindOutcomeOnly, v.kind)
		assert.False(t, v.playerOneWon)
		assert.Empty(t, v.sets)
	})

	t.Run("derives the winner from set flags", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{flagSet(1, true), flagSet(2, false), flagSet(3, true)}

		v, err := validate(req, now)
		require.NoError(t, err)
		assert.Equal(t, ledger.KindOutcomeOnly, v.kind)
		assert.True(t, v.playerOneWon)
	})

	t.Run("rejects an even flag split", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{flagSet(1, true), flagSet(2, false)}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "no winner")
	})

	t.Run("rejects a flag contradicting the set majority", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{flagSet(1, true), flagSet(2, true), flagSet(3, false)}
		req.PlayerOneWon = boolPtr(false)
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "contradicts")
	})

	t.Run("accepts a flag agreeing with the set majority", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{flagSet(1, true), flagSet(2, true), flagSet(3, false)}
		req.PlayerOneWon = boolPtr(true)
		_, err := validate(req, now)
		assert.NoError(t, err)
	})
}

func TestValidateShapes(t *testing.T) {
	now := time.Now()

	t.Run("rejects an empty submission", func(t *testing.T) {
		_, err := validate(baseRequest(), now)
		assert.ErrorContains(t, err, "win/loss flag")
	})

	t.Run("rejects mixed scored and flagged sets", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{scoredSet(1, 11, 8), flagSet(2, false)}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "mixes")
	})

	t.Run("rejects a set with scores and a flag", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{{SetNumber: 1, PlayerOneScore: intPtr(11), PlayerTwoScore: intPtr(8), PlayerOneWon: boolPtr(true)}}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "mixes")
	})

	t.Run("rejects a set with nothing in it", func(t *testing.T) {
		req := baseRequest()
		req.Sets = []SetRequest{{SetNumber: 1}}
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "neither")
	})

	t.Run("rejects missing names", func(t *testing.T) {
		req := baseRequest()
		req.PlayerTwoName = "  "
		req.PlayerOneWon = boolPtr(true)
		_, err := validate(req, now)
		assert.ErrorContains(t, err, "names")
	})
}

func TestValidateMatchDate(t *testing.T) {
	now := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)

	t.Run("defaults to today in UTC", func(t *testing.T) {
		req := baseRequest()
		req.MatchDate = ""
		req.PlayerOneWon = boolPtr(true)

		v, err := validate(req, now)
		require.NoError(t, err)
		assert.Equal(t, "2026-05-15", v.matchDate)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		for _, bad := range []string{"15-05-2026", "2026/05/15", "yesterday", "2026-13-01"} {
			req := baseRequest()
			req.MatchDate = bad
			req.PlayerOneWon = boolPtr(true)
			_, err := validate(req, now)
			assert.Error(t, err, "date %q should be rejected", bad)
		}
	})
}
