package history

import "context"

// Service serves the paginated match history.
type Service interface {
	// List returns one page of history, newest match first. page is
	// 1-based; out-of-range values are clamped. playerID optionally
	// restricts the feed to matches involving that player.
	List(ctx context.Context, page, pageSize int, playerID string) (Page, error)
}
