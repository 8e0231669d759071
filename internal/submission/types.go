package submission

import (
	"fmt"
	"sync"

	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/rating"
	"github.com/jsvane/pingpong/internal/tournament"
)

// SetRequest is one submitted set. Scored submissions fill both scores;
// outcome-only submissions fill the winner flag instead.
type SetRequest struct {
	SetNumber      int   `json:"setNumber"`
	PlayerOneScore *int  `json:"playerOneScore,omitempty"`
	PlayerTwoScore *int  `json:"playerTwoScore,omitempty"`
	PlayerOneWon   *bool `json:"playerOneWon,omitempty"`
}

// Request is a match submission. Exactly one shape must be present: scored
// sets, outcome-only set winners, or the single top-level win/loss flag.
type Request struct {
	PlayerOneName string       `json:"playerOneName"`
	PlayerTwoName string       `json:"playerTwoName"`
	MatchDate     string       `json:"matchDate,omitempty"` // YYYY-MM-DD, defaults to today
	SubmittedBy   string       `json:"submittedBy,omitempty"`
	PlayerOneWon  *bool        `json:"playerOneWon,omitempty"`
	Sets          []SetRequest `json:"sets,omitempty"`
}

// Result is what the caller observes after a fully consistent submission:
// the event is persisted, ratings are rebuilt, and any open tournament
// fixture for the pair is completed.
type Result struct {
	EventID         string        `json:"eventId"`
	MatchDate       string        `json:"matchDate"`
	Ordinal         int           `json:"ordinal"`
	PlayerOne       player.Player `json:"playerOne"`
	PlayerTwo       player.Player `json:"playerTwo"`
	WinnerID        string        `json:"winnerId"`
	PlayerOneRating float64       `json:"playerOneRating"`
	PlayerTwoRating float64       `json:"playerTwoRating"`
	FixtureID       string        `json:"fixtureId,omitempty"`
}

// ValidationError rejects a malformed submission before anything is written.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type service struct {
	events      ledger.EventStore
	players     player.Directory
	ratings     rating.Service
	tournaments tournament.Service
	pubsub      pubsub.PubSubClient
	metrics     metrics.Metrics

	// One submission at a time: reconciliation and rebuild assume a stable
	// snapshot of the event log for their duration.
	mu sync.Mutex
}
