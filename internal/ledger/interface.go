package ledger

import "context"

// EventStore is the append-only persistence boundary for match events.
// There is deliberately no update or delete; corrections are new events.
type EventStore interface {
	Append(ctx context.Context, event *MatchEvent) error
	LoadAll(ctx context.Context) ([]*MatchEvent, error)
	LoadForPlayer(ctx context.Context, playerID string) ([]*MatchEvent, error)
	LoadForPair(ctx context.Context, playerAID, playerBID string) ([]*MatchEvent, error)
}
