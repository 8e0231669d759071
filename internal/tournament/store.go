package tournament

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/rating"
)

// New creates a tournament Service backed by the given database.
func New(db *sql.DB, players player.Directory, ratings rating.RatingStore) Service {
	return &store{db: db, players: players, ratings: ratings}
}

func (s *store) Create(ctx context.Context, name, description string, durationDays, pointsPerWin int) (Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tournament{}, fmt.Errorf("tournament name cannot be empty")
	}
	if durationDays <= 0 {
		return Tournament{}, fmt.Errorf("tournament duration must be at least one day")
	}
	if pointsPerWin <= 0 {
		return Tournament{}, fmt.Errorf("points per win must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tournament := Tournament{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  strings.TrimSpace(description),
		DurationDays: durationDays,
		PointsPerWin: pointsPerWin,
		Status:       StatusDraft,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, name, description, duration_days, points_per_win, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, tournament.ID, tournament.Name, tournament.Description, tournament.DurationDays,
		tournament.PointsPerWin, tournament.Status, tournament.CreatedAt.UnixMilli())
	if err != nil {
		return Tournament{}, fmt.Errorf("failed to create tournament: %w", err)
	}

	log.Info("Created tournament", "tournamentID", tournament.ID, "name", tournament.Name)
	return tournament, nil
}

func (s *store) Join(ctx context.Context, tournamentID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tournament, err := s.get(ctx, tournamentID)
	if err != nil {
		return err
	}
	if tournament.Status != StatusDraft {
		return fmt.Errorf("tournament %s is %s; players can only join a draft tournament", tournamentID, tournament.Status)
	}
	if _, err := s.players.Get(ctx, playerID); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tournament_participants (id, tournament_id, player_id, joined_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), tournamentID, playerID, time.Now().UnixMilli())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("player %s has already joined tournament %s", playerID, tournamentID)
		}
		return fmt.Errorf("failed to join tournament: %w", err)
	}
	return nil
}

func (s *store) Leave(ctx context.Context, tournamentID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tournament, err := s.get(ctx, tournamentID)
	if err != nil {
		return err
	}
	if tournament.Status != StatusDraft {
		return fmt.Errorf("tournament %s is %s; players can only leave a draft tournament", tournamentID, tournament.Status)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tournament_participants WHERE tournament_id = ? AND player_id = ?
	`, tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("failed to leave tournament: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("player %s is not in tournament %s", playerID, tournamentID)
	}
	return nil
}

func (s *store) Start(ctx context.Context, tournamentID string) (Tournament, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tournament, err := s.get(ctx, tournamentID)
	if err != nil {
		return Tournament{}, err
	}
	if tournament.Status != StatusDraft {
		return Tournament{}, fmt.Errorf("tournament %s is %s and cannot be started", tournamentID, tournament.Status)
	}

	participants, err := s.participants(ctx, tournamentID)
	if err != nil {
		return Tournament{}, err
	}
	if len(participants) < 2 {
		return Tournament{}, fmt.Errorf("tournament %s needs at least two participants to start", tournamentID)
	}

	// Fixtures pair players in display-name order so the schedule is
	// stable regardless of join order.
	sort.SliceStable(participants, func(i, j int) bool {
		return strings.ToLower(participants[i].PlayerName) < strings.ToLower(participants[j].PlayerName)
	})
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.PlayerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Tournament{}, fmt.Errorf("failed to begin start transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	endsAt := now.Add(time.Duration(tournament.DurationDays) * 24 * time.Hour)

	for _, f := range roundRobinFixtures(ids) {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tournament_fixtures (id, tournament_id, player_one_id, player_two_id, status, round_number, sequence, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), tournamentID, f.PlayerOneID, f.PlayerTwoID, FixturePending, f.RoundNumber, f.Sequence, now.UnixMilli())
		if err != nil {
			return Tournament{}, fmt.Errorf("failed to create fixture: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tournaments SET status = ?, started_at = ?, ends_at = ? WHERE id = ?
	`, StatusActive, now.UnixMilli(), endsAt.UnixMilli(), tournamentID)
	if err != nil {
		return Tournament{}, fmt.Errorf("failed to activate tournament: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Tournament{}, fmt.Errorf("failed to commit start transaction: %w", err)
	}

	tournament.Status = StatusActive
	tournament.StartedAt = &now
	tournament.EndsAt = &endsAt
	log.Info("Started tournament", "tournamentID", tournamentID, "participants", len(participants))
	return tournament, nil
}

// roundRobinFixtures schedules every pair exactly once using the circle
// method. An odd participant count gives each player one bye round.
func roundRobinFixtures(playerIDs []string) []Fixture {
	ids := make([]string, len(playerIDs))
	copy(ids, playerIDs)
	if len(ids)%2 != 0 {
		ids = append(ids, "") // bye
	}
	n := len(ids)

	var fixtures []Fixture
	for round := 1; round < n; round++ {
		sequence := 1
		for i := 0; i < n/2; i++ {
			a, b := ids[i], ids[n-1-i]
			if a == "" || b == "" {
				continue
			}
			fixtures = append(fixtures, Fixture{
				PlayerOneID: a,
				PlayerTwoID: b,
				RoundNumber: round,
				Sequence:    sequence,
			})
			sequence++
		}
		// Rotate all but the first position.
		rotated := make([]string, 0, n)
		rotated = append(rotated, ids[0], ids[n-1])
		rotated = append(rotated, ids[1:n-1]...)
		ids = rotated
	}
	return fixtures
}

func (s *store) List(ctx context.Context) ([]Tournament, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, duration_days, points_per_win, status, created_at, started_at, ends_at, completed_at
		FROM tournaments ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		t, err := scanTournament(rows.Scan)
		if err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (s *store) Get(ctx context.Context, tournamentID string) (Details, error) {
	tournament, err := s.get(ctx, tournamentID)
	if err != nil {
		return Details{}, err
	}

	participants, err := s.participants(ctx, tournamentID)
	if err != nil {
		return Details{}, err
	}

	stored, err := s.ratings.LoadAll(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to load ratings for standings: %w", err)
	}
	ratingByID := make(map[string]float64, len(stored))
	for _, r := range stored {
		ratingByID[r.PlayerID] = r.Rating
	}

	sort.SliceStable(participants, func(i, j int) bool {
		a, b := participants[i], participants[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.MatchesPlayed != b.MatchesPlayed {
			return a.MatchesPlayed > b.MatchesPlayed
		}
		if ratingByID[a.PlayerID] != ratingByID[b.PlayerID] {
			return ratingByID[a.PlayerID] > ratingByID[b.PlayerID]
		}
		return strings.ToLower(a.PlayerName) < strings.ToLower(b.PlayerName)
	})

	return Details{Tournament: tournament, Standings: participants}, nil
}

func (s *store) Fixtures(ctx context.Context, tournamentID string) ([]Fixture, error) {
	if _, err := s.get(ctx, tournamentID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tournament_id, player_one_id, player_two_id, status, winner_player_id, match_event_id, round_number, sequence, created_at, completed_at
		FROM tournament_fixtures WHERE tournament_id = ? ORDER BY round_number, sequence
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures: %w", err)
	}
	defer rows.Close()
	return scanFixtures(rows)
}

func (s *store) OpenFixture(ctx context.Context, playerAID, playerBID string) (Fixture, bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.tournament_id, f.player_one_id, f.player_two_id, f.status, f.winner_player_id, f.match_event_id, f.round_number, f.sequence, f.created_at, f.completed_at
		FROM tournament_fixtures f
		JOIN tournaments t ON t.id = f.tournament_id
		WHERE t.status = ? AND f.status = ?
		  AND ((f.player_one_id = ? AND f.player_two_id = ?) OR (f.player_one_id = ? AND f.player_two_id = ?))
		ORDER BY f.round_number, f.sequence
		LIMIT 1
	`, StatusActive, FixturePending, playerAID, playerBID, playerBID, playerAID)
	if err != nil {
		return Fixture{}, false, fmt.Errorf("failed to query open fixtures: %w", err)
	}
	defer rows.Close()

	fixtures, err := scanFixtures(rows)
	if err != nil {
		return Fixture{}, false, err
	}
	if len(fixtures) == 0 {
		return Fixture{}, false, nil
	}
	return fixtures[0], true, nil
}

func (s *store) RecordFixtureResult(ctx context.Context, fixtureID, winnerPlayerID, matchEventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fixture, err := s.fixture(ctx, fixtureID)
	if err != nil {
		return err
	}
	if fixture.Status == FixtureCompleted {
		log.Info("Fixture already completed, ignoring result", "fixtureID", fixtureID)
		return nil
	}
	if winnerPlayerID != fixture.PlayerOneID && winnerPlayerID != fixture.PlayerTwoID {
		return &FixtureStateError{FixtureID: fixtureID, Reason: fmt.Sprintf("winner %s is not part of this fixture", winnerPlayerID)}
	}

	tournament, err := s.get(ctx, fixture.TournamentID)
	if err != nil {
		return err
	}

	loserPlayerID := fixture.PlayerOneID
	if loserPlayerID == winnerPlayerID {
		loserPlayerID = fixture.PlayerTwoID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin result transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE tournament_fixtures SET status = ?, winner_player_id = ?, match_event_id = ?, completed_at = ?
		WHERE id = ?
	`, FixtureCompleted, winnerPlayerID, matchEventID, now.UnixMilli(), fixtureID)
	if err != nil {
		return fmt.Errorf("failed to complete fixture: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tournament_participants
		SET matches_played = matches_played + 1, wins = wins + 1, points = points + ?
		WHERE tournament_id = ? AND player_id = ?
	`, tournament.PointsPerWin, fixture.TournamentID, winnerPlayerID)
	if err != nil {
		return fmt.Errorf("failed to update winner tally: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tournament_participants
		SET matches_played = matches_played + 1, losses = losses + 1
		WHERE tournament_id = ? AND player_id = ?
	`, fixture.TournamentID, loserPlayerID)
	if err != nil {
		return fmt.Errorf("failed to update loser tally: %w", err)
	}

	var pending int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tournament_fixtures WHERE tournament_id = ? AND status = ?
	`, fixture.TournamentID, FixturePending).Scan(&pending)
	if err != nil {
		return fmt.Errorf("failed to count pending fixtures: %w", err)
	}

	if pending == 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE tournaments SET status = ?, completed_at = ? WHERE id = ?
		`, StatusCompleted, now.UnixMilli(), fixture.TournamentID)
		if err != nil {
			return fmt.Errorf("failed to complete tournament: %w", err)
		}
		log.Info("Tournament completed", "tournamentID", fixture.TournamentID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result transaction: %w", err)
	}

	log.Info("Recorded fixture result", "fixtureID", fixtureID, "winnerID", winnerPlayerID)
	return nil
}

func (s *store) get(ctx context.Context, tournamentID string) (Tournament, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, duration_days, points_per_win, status, created_at, started_at, ends_at, completed_at
		FROM tournaments WHERE id = ?
	`, tournamentID)
	t, err := scanTournament(row.Scan)
	if err == sql.ErrNoRows {
		return Tournament{}, fmt.Errorf("tournament %s not found", tournamentID)
	}
	if err != nil {
		return Tournament{}, fmt.Errorf("failed to get tournament: %w", err)
	}
	return t, nil
}

func (s *store) fixture(ctx context.Context, fixtureID string) (Fixture, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tournament_id, player_one_id, player_two_id, status, winner_player_id, match_event_id, round_number, sequence, created_at, completed_at
		FROM tournament_fixtures WHERE id = ?
	`, fixtureID)
	if err != nil {
		return Fixture{}, fmt.Errorf("failed to get fixture: %w", err)
	}
	defer rows.Close()

	fixtures, err := scanFixtures(rows)
	if err != nil {
		return Fixture{}, err
	}
	if len(fixtures) == 0 {
		return Fixture{}, fmt.Errorf("fixture %s not found", fixtureID)
	}
	return fixtures[0], nil
}

func (s *store) participants(ctx context.Context, tournamentID string) ([]Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tp.id, tp.tournament_id, tp.player_id, p.display_name, tp.joined_at, tp.matches_played, tp.wins, tp.losses, tp.points
		FROM tournament_participants tp
		JOIN players p ON p.id = tp.player_id
		WHERE tp.tournament_id = ?
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		var joinedAt int64
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.PlayerID, &p.PlayerName, &joinedAt, &p.MatchesPlayed, &p.Wins, &p.Losses, &p.Points); err != nil {
			log.Error("Failed to scan participant row", "error", err)
			continue
		}
		p.JoinedAt = time.UnixMilli(joinedAt).UTC()
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func scanTournament(scan func(dest ...any) error) (Tournament, error) {
	var t Tournament
	var createdAt int64
	var startedAt, endsAt, completedAt sql.NullInt64
	err := scan(&t.ID, &t.Name, &t.Description, &t.DurationDays, &t.PointsPerWin, &t.Status,
		&createdAt, &startedAt, &endsAt, &completedAt)
	if err != nil {
		return Tournament{}, err
	}
	t.CreatedAt = time.UnixMilli(createdAt).UTC()
	t.StartedAt = millisPtr(startedAt)
	t.EndsAt = millisPtr(endsAt)
	t.CompletedAt = millisPtr(completedAt)
	return t, nil
}

func scanFixtures(rows *sql.Rows) ([]Fixture, error) {
	var fixtures []Fixture
	for rows.Next() {
		var f Fixture
		var createdAt int64
		var completedAt sql.NullInt64
		var winnerID, eventID sql.NullString
		err := rows.Scan(&f.ID, &f.TournamentID, &f.PlayerOneID, &f.PlayerTwoID, &f.Status,
			&winnerID, &eventID, &f.RoundNumber, &f.Sequence, &createdAt, &completedAt)
		if err != nil {
			log.Error("Failed to scan fixture row", "error", err)
			continue
		}
		f.CreatedAt = time.UnixMilli(createdAt).UTC()
		f.CompletedAt = millisPtr(completedAt)
		if winnerID.Valid {
			f.WinnerPlayerID = &winnerID.String
		}
		if eventID.Valid {
			f.MatchEventID = &eventID.String
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, rows.Err()
}

func millisPtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64).UTC()
	return &t
}
