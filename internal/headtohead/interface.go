package headtohead

import "context"

// Service computes head-to-head projections from the outcome ledger.
type Service interface {
	// Summary returns one row per opponent the player has faced, ordered
	// by matches played, then wins, then opponent name.
	Summary(ctx context.Context, playerID string) ([]OpponentRow, error)
	// Details returns the full report for a pair. from and to optionally
	// bound the match dates considered, inclusive, as YYYY-MM-DD strings;
	// an empty bound is open.
	Details(ctx context.Context, playerAID, playerBID, from, to string) (Details, error)
}
