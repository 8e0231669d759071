package standings

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/rating"
)

// NewService creates the standings service.
func NewService(events ledger.EventStore, players player.Directory, ratings rating.RatingStore) Service {
	return &service{events: events, players: players, ratings: ratings}
}

// round4 rounds to four decimal places, halves away from zero.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func (s *service) Table(ctx context.Context) ([]Row, error) {
	allPlayers, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for standings: %w", err)
	}

	events, err := s.events.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for standings: %w", err)
	}
	outcomes := ledger.Reconcile(events)

	stored, err := s.ratings.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings for standings: %w", err)
	}
	ratingByID := make(map[string]float64, len(stored))
	for _, r := range stored {
		ratingByID[r.PlayerID] = r.Rating
	}

	wins := make(map[string]int)
	losses := make(map[string]int)
	for _, o := range outcomes {
		wins[o.WinnerID()]++
		losses[o.LoserID()]++
	}

	rows := make([]Row, 0, len(allPlayers))
	for _, p := range allPlayers {
		row := Row{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Wins:        wins[p.ID],
			Losses:      losses[p.ID],
			Rating:      ratingByID[p.ID],
		}
		row.MatchesPlayed = row.Wins + row.Losses
		if row.MatchesPlayed > 0 {
			row.WinPercentage = round4(float64(row.Wins) / float64(row.MatchesPlayed))
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.WinPercentage != b.WinPercentage {
			return a.WinPercentage > b.WinPercentage
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.MatchesPlayed != b.MatchesPlayed {
			return a.MatchesPlayed > b.MatchesPlayed
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
	})

	return rows, nil
}
