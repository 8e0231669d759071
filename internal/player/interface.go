package player

import "context"

// Directory resolves a display name to a stable player identity, creating
// one when absent. Resolution is idempotent by normalized name.
type Directory interface {
	ResolveOrCreate(ctx context.Context, displayName string) (Player, error)
	Get(ctx context.Context, playerID string) (Player, error)
	List(ctx context.Context) ([]Player, error)
}
