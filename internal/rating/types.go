package rating

import (
	"database/sql"
	"sync"
	"time"

	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/player"
)

// PlayerRating is a player's current rating as of the latest rebuild.
type PlayerRating struct {
	PlayerID      string    `json:"playerId"`
	Rating        float64   `json:"rating"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

type service struct {
	events  ledger.EventStore
	players player.Directory
	ratings RatingStore
	metrics metrics.Metrics

	base float64
	k    float64

	// rebuilds are serialized so concurrent submissions cannot interleave
	// their replay and persist phases.
	rebuildMu sync.Mutex
}
