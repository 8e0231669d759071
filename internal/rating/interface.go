package rating

import "context"

// RatingStore persists the derived rating projection. Rows are replaced
// wholesale on each rebuild; ratings are never written incrementally.
type RatingStore interface {
	// ReplaceAll upserts the given ratings and removes rows for any player
	// not present in the set.
	ReplaceAll(ctx context.Context, ratings []PlayerRating) error
	// LoadAll returns the current rating of every known player.
	LoadAll(ctx context.Context) ([]PlayerRating, error)
	// Get returns the current rating for a single player.
	Get(ctx context.Context, playerID string) (PlayerRating, error)
}

// Service rebuilds and serves the rating projection.
type Service interface {
	// Rebuild replays the full outcome ledger and replaces the stored
	// ratings. It returns the freshly computed ratings.
	Rebuild(ctx context.Context) ([]PlayerRating, error)
	// Current returns the stored ratings without rebuilding.
	Current(ctx context.Context) ([]PlayerRating, error)
}
