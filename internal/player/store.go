package player

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new Directory backed by the given database.
func New(db *sql.DB) Directory {
	return &store{db: db}
}

// NormalizeKey derives the identity key for a display name. Two names with
// the same key are the same player.
func NormalizeKey(displayName string) (string, error) {
	trimmed := strings.TrimSpace(displayName)
	if trimmed == "" {
		return "", fmt.Errorf("player display name cannot be empty")
	}
	return strings.ToUpper(trimmed), nil
}

// ResolveOrCreate looks a player up by normalized name, creating one if
// absent. The trimmed form of the submitted name becomes the display name on
// first sight; later submissions with different casing resolve to the same
// player without renaming them.
func (s *store) ResolveOrCreate(ctx context.Context, displayName string) (Player, error) {
	key, err := NormalizeKey(displayName)
	if err != nil {
		return Player{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.getByNormalizedName(ctx, key)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return Player{}, fmt.Errorf("failed to look up player: %w", err)
	}

	p := Player{
		ID:             uuid.NewString(),
		DisplayName:    strings.TrimSpace(displayName),
		NormalizedName: key,
		CreatedAt:      time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO players (id, display_name, normalized_name, created_at)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.DisplayName, p.NormalizedName, p.CreatedAt.UnixMilli())
	if err != nil {
		return Player{}, fmt.Errorf("failed to create player: %w", err)
	}

	log.Info("Created new player", "playerID", p.ID, "name", p.DisplayName)
	return p, nil
}

func (s *store) getByNormalizedName(ctx context.Context, key string) (Player, error) {
	var p Player
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, normalized_name, created_at FROM players WHERE normalized_name = ?
	`, key).Scan(&p.ID, &p.DisplayName, &p.NormalizedName, &createdAt)
	if err != nil {
		return Player{}, err
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	return p, nil
}

// Get retrieves a single player by id.
func (s *store) Get(ctx context.Context, playerID string) (Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Player
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, normalized_name, created_at FROM players WHERE id = ?
	`, playerID).Scan(&p.ID, &p.DisplayName, &p.NormalizedName, &createdAt)
	if err == sql.ErrNoRows {
		return Player{}, fmt.Errorf("player %s not found", playerID)
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to get player: %w", err)
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	return p, nil
}

// List returns all players ordered by display name.
func (s *store) List(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, normalized_name, created_at FROM players ORDER BY display_name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.NormalizedName, &createdAt); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.CreatedAt = time.UnixMilli(createdAt).UTC()
		players = append(players, p)
	}
	return players, rows.Err()
}
