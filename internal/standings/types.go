package standings

import (
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/rating"
)

// Row is one player's line in the standings table. Rows are ordered by win
// percentage, then wins, then matches played, then rating, then name.
type Row struct {
	PlayerID      string  `json:"playerId"`
	DisplayName   string  `json:"displayName"`
	MatchesPlayed int     `json:"matchesPlayed"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
	Rating        float64 `json:"rating"`
}

type service struct {
	events  ledger.EventStore
	players player.Directory
	ratings rating.RatingStore
}
