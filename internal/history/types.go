package history

import (
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/player"
)

// SetScore is one set of a history entry. Scored sets carry both scores;
// outcome-only sets carry just the winner flag.
type SetScore struct {
	SetNumber      int  `json:"setNumber"`
	PlayerOneScore *int `json:"playerOneScore,omitempty"`
	PlayerTwoScore *int `json:"playerTwoScore,omitempty"`
	PlayerOneWon   bool `json:"playerOneWon"`
}

// Entry is one match in the history feed.
type Entry struct {
	EventID       string     `json:"eventId"`
	MatchDate     string     `json:"matchDate"`
	Ordinal       int        `json:"ordinal"`
	PlayerOneID   string     `json:"playerOneId"`
	PlayerOneName string     `json:"playerOneName"`
	PlayerTwoID   string     `json:"playerTwoId"`
	PlayerTwoName string     `json:"playerTwoName"`
	WinnerID      string     `json:"winnerId"`
	WinnerName    string     `json:"winnerName"`
	Sets          []SetScore `json:"sets"`
	SubmittedBy   string     `json:"submittedBy,omitempty"`
}

// Page is one page of the reverse-chronological history feed.
type Page struct {
	Entries    []Entry `json:"entries"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalCount int     `json:"totalCount"`
	TotalPages int     `json:"totalPages"`
}

type service struct {
	events  ledger.EventStore
	players player.Directory
}
