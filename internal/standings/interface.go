package standings

import "context"

// Service computes the standings table from the outcome ledger.
type Service interface {
	// Table returns the full standings, one row per known player.
	Table(ctx context.Context) ([]Row, error)
}
