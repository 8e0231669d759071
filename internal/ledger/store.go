package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new EventStore backed by the given database.
func New(db *sql.DB) EventStore {
	return &store{db: db}
}

// Append persists a new match event. Events are immutable; there is no
// conflict clause, so a duplicate id is a bug, not an upsert.
func (s *store) Append(ctx context.Context, event *MatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	setsJSON, err := json.Marshal(event.Sets)
	if err != nil {
		return fmt.Errorf("failed to marshal event sets: %w", err)
	}

	var playerOneWon any
	if event.Kind == KindOutcomeOnly {
		playerOneWon = event.PlayerOneWon
	}
	var submittedBy any
	if event.SubmittedBy != "" {
		submittedBy = event.SubmittedBy
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_events (id, event_kind, player_one_id, player_two_id, match_date, created_at, submitted_by, player_one_won, supersedes_event_id, sets_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.Kind, event.PlayerOneID, event.PlayerTwoID, event.MatchDate,
		event.CreatedAt.UnixMilli(), submittedBy, playerOneWon, event.SupersedesEventID, setsJSON)
	if err != nil {
		return fmt.Errorf("failed to append match event: %w", err)
	}

	log.Info("Appended match event", "eventID", event.ID, "kind", event.Kind, "matchDate", event.MatchDate)
	return nil
}

const eventColumns = `id, event_kind, player_one_id, player_two_id, match_date, created_at, submitted_by, player_one_won, supersedes_event_id, sets_json`

// LoadAll returns every stored match event, unordered; callers hand the
// slice to Reconcile for canonical ordering.
func (s *store) LoadAll(ctx context.Context) ([]*MatchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM match_events`)
	if err != nil {
		return nil, fmt.Errorf("failed to query match events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// LoadForPlayer returns every event in which the player appears on either
// side. The result is complete for any pair involving the player, so ordinals
// computed over it match a full reconciliation.
func (s *store) LoadForPlayer(ctx context.Context, playerID string) ([]*MatchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM match_events
		WHERE player_one_id = ? OR player_two_id = ?
	`, playerID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match events for player: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// LoadForPair returns every event between the two players, in either
// orientation.
func (s *store) LoadForPair(ctx context.Context, playerAID, playerBID string) ([]*MatchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM match_events
		WHERE (player_one_id = ? AND player_two_id = ?)
		   OR (player_one_id = ? AND player_two_id = ?)
	`, playerAID, playerBID, playerBID, playerAID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match events for pair: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]*MatchEvent, error) {
	var events []*MatchEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			log.Error("Failed to scan match event row", "error", err)
			continue
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanEvent(scanner interface{ Scan(...any) error }) (*MatchEvent, error) {
	var event MatchEvent
	var createdAt int64
	var submittedBy sql.NullString
	var playerOneWon sql.NullBool
	var setsJSON string

	err := scanner.Scan(
		&event.ID, &event.Kind, &event.PlayerOneID, &event.PlayerTwoID, &event.MatchDate,
		&createdAt, &submittedBy, &playerOneWon, &event.SupersedesEventID, &setsJSON,
	)
	if err != nil {
		return nil, err
	}

	event.CreatedAt = time.UnixMilli(createdAt).UTC()
	event.SubmittedBy = submittedBy.String
	event.PlayerOneWon = playerOneWon.Bool

	if setsJSON != "" {
		if err := json.Unmarshal([]byte(setsJSON), &event.Sets); err != nil {
			log.Error("Failed to unmarshal sets_json", "error", err, "eventID", event.ID)
		}
	}
	if event.Sets == nil {
		event.Sets = []EventSet{}
	}

	return &event, nil
}
