package ledger

import (
	"database/sql"
	"sync"
	"time"
)

// EventKind discriminates the two submission shapes a match event can carry.
type EventKind string

const (
	// KindScored events carry full per-set scores.
	KindScored EventKind = "SCORED"
	// KindOutcomeOnly events carry a top-level winner flag and, optionally,
	// per-set winner flags without scores.
	KindOutcomeOnly EventKind = "OUTCOME_ONLY"
)

// MatchEvent is one immutable entry in the append-only match log.
// Corrections are new events; nothing ever mutates or deletes a stored event.
type MatchEvent struct {
	ID           string    `json:"id"`
	Kind         EventKind `json:"kind"`
	PlayerOneID  string    `json:"player_one_id"`
	PlayerTwoID  string    `json:"player_two_id"`
	MatchDate    string    `json:"match_date"` // YYYY-MM-DD
	CreatedAt    time.Time `json:"created_at"`
	SubmittedBy  string    `json:"submitted_by,omitempty"`
	PlayerOneWon bool      `json:"player_one_won,omitempty"` // meaningful only for KindOutcomeOnly

	// SupersedesEventID is carried through storage but never populated or
	// honored by reconciliation; the ledger is strictly append-only with no
	// merge semantics.
	SupersedesEventID *string `json:"supersedes_event_id,omitempty"`

	Sets []EventSet `json:"sets"`
}

// EventSet is one raw submitted set on a match event. Scored events populate
// the score fields; outcome-only events populate PlayerOneWon.
type EventSet struct {
	SetNumber      int   `json:"set_number"`
	PlayerOneScore *int  `json:"player_one_score,omitempty"`
	PlayerTwoScore *int  `json:"player_two_score,omitempty"`
	PlayerOneWon   *bool `json:"player_one_won,omitempty"`
}

// SetResult is the resolved view of one set. It is a closed sum: ScoredSet
// and OutcomeSet are the only implementations, and consumers must switch on
// both.
type SetResult interface {
	Number() int
	WonByPlayerOne() bool
	isSetResult()
}

// ScoredSet is a set with full scores.
type ScoredSet struct {
	SetNumber      int `json:"set_number"`
	PlayerOneScore int `json:"player_one_score"`
	PlayerTwoScore int `json:"player_two_score"`
}

func (s ScoredSet) Number() int          { return s.SetNumber }
func (s ScoredSet) WonByPlayerOne() bool { return s.PlayerOneScore > s.PlayerTwoScore }
func (ScoredSet) isSetResult()           {}

// OutcomeSet is a set known only by its winner.
type OutcomeSet struct {
	SetNumber    int  `json:"set_number"`
	PlayerOneWon bool `json:"player_one_won"`
}

func (s OutcomeSet) Number() int          { return s.SetNumber }
func (s OutcomeSet) WonByPlayerOne() bool { return s.PlayerOneWon }
func (OutcomeSet) isSetResult()           {}

// MatchOutcome is the resolved winner/loser view of one event. It is derived,
// never persisted; every rebuild recomputes outcomes from the event log.
// Exactly one player wins by construction.
type MatchOutcome struct {
	EventID      string
	PlayerOneID  string
	PlayerTwoID  string
	MatchDate    string
	PlayerOneWon bool
	Sets         []SetResult
	SubmittedBy  string
	CreatedAt    time.Time

	// Ordinal is the 1-based position of this match within its day for this
	// player pair. Cosmetic labeling only; it is never a merge key.
	Ordinal int
}

// WinnerID returns the id of the winning player.
func (o MatchOutcome) WinnerID() string {
	if o.PlayerOneWon {
		return o.PlayerOneID
	}
	return o.PlayerTwoID
}

// LoserID returns the id of the losing player.
func (o MatchOutcome) LoserID() string {
	if o.PlayerOneWon {
		return o.PlayerTwoID
	}
	return o.PlayerOneID
}

// WonBy reports whether the given player won this outcome.
func (o MatchOutcome) WonBy(playerID string) bool {
	return o.WinnerID() == playerID
}

// store handles all database operations for the match event log.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
