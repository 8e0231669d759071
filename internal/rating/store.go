package rating

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// NewStore creates a RatingStore backed by the given database.
func NewStore(db *sql.DB) RatingStore {
	return &store{db: db}
}

func (s *store) ReplaceAll(ctx context.Context, ratings []PlayerRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin rating transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range ratings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO player_ratings (player_id, current_rating, last_updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(player_id) DO UPDATE SET
				current_rating = excluded.current_rating,
				last_updated_at = excluded.last_updated_at
		`, r.PlayerID, r.Rating, r.LastUpdatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to upsert rating for %s: %w", r.PlayerID, err)
		}
	}

	if err := s.deleteStale(ctx, tx, ratings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rating transaction: %w", err)
	}
	return nil
}

// deleteStale removes rating rows for players absent from the new set, so a
// rebuild can shrink the projection as well as grow it.
func (s *store) deleteStale(ctx context.Context, tx *sql.Tx, ratings []PlayerRating) error {
	if len(ratings) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM player_ratings`); err != nil {
			return fmt.Errorf("failed to clear ratings: %w", err)
		}
		return nil
	}

	placeholders := make([]string, len(ratings))
	args := make([]any, len(ratings))
	for i, r := range ratings {
		placeholders[i] = "?"
		args[i] = r.PlayerID
	}
	query := fmt.Sprintf(`DELETE FROM player_ratings WHERE player_id NOT IN (%s)`, strings.Join(placeholders, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete stale ratings: %w", err)
	}
	return nil
}

func (s *store) LoadAll(ctx context.Context) ([]PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, current_rating, last_updated_at FROM player_ratings
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []PlayerRating
	for rows.Next() {
		var r PlayerRating
		var updatedAt int64
		if err := rows.Scan(&r.PlayerID, &r.Rating, &updatedAt); err != nil {
			log.Error("Failed to scan rating row", "error", err)
			continue
		}
		r.LastUpdatedAt = time.UnixMilli(updatedAt).UTC()
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func (s *store) Get(ctx context.Context, playerID string) (PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r PlayerRating
	var updatedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT player_id, current_rating, last_updated_at FROM player_ratings WHERE player_id = ?
	`, playerID).Scan(&r.PlayerID, &r.Rating, &updatedAt)
	if err == sql.ErrNoRows {
		return PlayerRating{}, fmt.Errorf("no rating for player %s", playerID)
	}
	if err != nil {
		return PlayerRating{}, fmt.Errorf("failed to get rating: %w", err)
	}
	r.LastUpdatedAt = time.UnixMilli(updatedAt).UTC()
	return r, nil
}
