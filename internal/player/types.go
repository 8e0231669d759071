package player

import (
	"database/sql"
	"sync"
	"time"
)

// Player is one entry in the directory.
type Player struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"display_name"`
	NormalizedName string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// store handles all database operations for the player directory.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
