package rating

import (
	"math"

	"github.com/jsvane/pingpong/internal/ledger"
)

// round2 rounds to two decimal places, halves away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// expectedScore is the standard Elo expectation for the first player.
func expectedScore(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// Replay computes ratings from scratch over a canonically ordered outcome
// ledger. Every id in knownPlayerIDs gets a rating even with no matches
// played. Both sides are rounded to two decimals after each match, so replay
// order fully determines the result.
func Replay(outcomes []ledger.MatchOutcome, knownPlayerIDs []string, base, k float64) map[string]float64 {
	ratings := make(map[string]float64, len(knownPlayerIDs))
	for _, id := range knownPlayerIDs {
		ratings[id] = base
	}

	at := func(id string) float64 {
		if r, ok := ratings[id]; ok {
			return r
		}
		return base
	}

	for _, o := range outcomes {
		winner, loser := o.WinnerID(), o.LoserID()
		rw, rl := at(winner), at(loser)

		ew := expectedScore(rw, rl)
		el := expectedScore(rl, rw)

		ratings[winner] = round2(rw + k*(1-ew))
		ratings[loser] = round2(rl + k*(0-el))
	}

	return ratings
}
