package headtohead

import (
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/player"
)

// OpponentRow summarizes one player's record against a single opponent.
type OpponentRow struct {
	OpponentID   string `json:"opponentId"`
	OpponentName string `json:"opponentName"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// RecentMatch is one of the latest outcomes between a pair, newest first.
// Set scores are rendered from player A's perspective; outcome-only sets
// show as W or L.
type RecentMatch struct {
	EventID   string   `json:"eventId"`
	MatchDate string   `json:"matchDate"`
	Ordinal   int      `json:"ordinal"`
	WinnerID  string   `json:"winnerId"`
	Sets      []string `json:"sets"`
}

// Details is the full head-to-head report for a pair of players. All
// player-A-relative figures flip sign when the players are swapped.
type Details struct {
	PlayerAID            string        `json:"playerAId"`
	PlayerAName          string        `json:"playerAName"`
	PlayerBID            string        `json:"playerBId"`
	PlayerBName          string        `json:"playerBName"`
	Played               int           `json:"played"`
	PlayerAWins          int           `json:"playerAWins"`
	PlayerBWins          int           `json:"playerBWins"`
	PlayerASetWins       int           `json:"playerASetWins"`
	PlayerBSetWins       int           `json:"playerBSetWins"`
	AvgPointDifferential float64       `json:"avgPointDifferential"`
	Recent               []RecentMatch `json:"recent"`
}

type service struct {
	events  ledger.EventStore
	players player.Directory
}
