package notifier

import (
	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/standings"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches
	SendResultNotification(result *pubsub.MatchResultMessage, dryRun bool) error
	// For the standings leaderboard
	SendLeaderboard(rows []standings.Row, dryRun bool) error

	// FormatLeaderboardResponse formats the leaderboard for callers that
	// render the message themselves.
	FormatLeaderboardResponse(rows []standings.Row) (any, error)
}
