package tournament

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/rating"
)

// Status represents the lifecycle state of a tournament
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// FixtureStatus represents the state of a single fixture
type FixtureStatus string

const (
	FixturePending   FixtureStatus = "PENDING"
	FixtureCompleted FixtureStatus = "COMPLETED"
)

// Tournament represents a round-robin tournament
type Tournament struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	DurationDays int        `json:"durationDays"`
	PointsPerWin int        `json:"pointsPerWin"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	EndsAt       *time.Time `json:"endsAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// Participant is one player enrolled in a tournament, with their running
// tally. Tallies update when fixtures complete.
type Participant struct {
	ID            string    `json:"id"`
	TournamentID  string    `json:"tournamentId"`
	PlayerID      string    `json:"playerId"`
	PlayerName    string    `json:"playerName"`
	JoinedAt      time.Time `json:"joinedAt"`
	MatchesPlayed int       `json:"matchesPlayed"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Points        int       `json:"points"`
}

// Fixture is a scheduled pairing awaiting a result
type Fixture struct {
	ID             string        `json:"id"`
	TournamentID   string        `json:"tournamentId"`
	PlayerOneID    string        `json:"playerOneId"`
	PlayerTwoID    string        `json:"playerTwoId"`
	Status         FixtureStatus `json:"status"`
	WinnerPlayerID *string       `json:"winnerPlayerId,omitempty"`
	MatchEventID   *string       `json:"matchEventId,omitempty"`
	RoundNumber    int           `json:"roundNumber"`
	Sequence       int           `json:"sequence"`
	CreatedAt      time.Time     `json:"createdAt"`
	CompletedAt    *time.Time    `json:"completedAt,omitempty"`
}

// Details is a tournament with its standings table
type Details struct {
	Tournament Tournament    `json:"tournament"`
	Standings  []Participant `json:"standings"`
}

// FixtureStateError signals an operation against a fixture in the wrong
// state, like recording a winner who is not part of the pairing.
type FixtureStateError struct {
	FixtureID string
	Reason    string
}

func (e *FixtureStateError) Error() string {
	return fmt.Sprintf("fixture %s: %s", e.FixtureID, e.Reason)
}

// store handles all database operations for tournaments.
type store struct {
	db      *sql.DB
	players player.Directory
	ratings rating.RatingStore
	mu      sync.Mutex
}
