package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/player"
)

// NewService creates the rating service. base and k configure the Elo
// replay; every rebuild starts all players at base.
func NewService(events ledger.EventStore, players player.Directory, ratings RatingStore, metrics metrics.Metrics, base, k float64) Service {
	return &service{
		events:  events,
		players: players,
		ratings: ratings,
		metrics: metrics,
		base:    base,
		k:       k,
	}
}

func (s *service) Rebuild(ctx context.Context) ([]PlayerRating, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()

	allPlayers, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for rebuild: %w", err)
	}

	events, err := s.events.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for rebuild: %w", err)
	}

	outcomes := ledger.Reconcile(events)
	if skipped := len(events) - len(outcomes); skipped > 0 {
		s.metrics.AddReconciliationSkips(skipped)
	}

	ids := make([]string, len(allPlayers))
	for i, p := range allPlayers {
		ids[i] = p.ID
	}

	computed := Replay(outcomes, ids, s.base, s.k)

	updatedAt := time.Now().UTC()
	if n := len(outcomes); n > 0 {
		updatedAt = outcomes[n-1].CreatedAt
	}

	result := make([]PlayerRating, 0, len(computed))
	for id, r := range computed {
		result = append(result, PlayerRating{PlayerID: id, Rating: r, LastUpdatedAt: updatedAt})
	}

	if err := s.ratings.ReplaceAll(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to persist ratings: %w", err)
	}

	elapsed := time.Since(start)
	s.metrics.ObserveRebuildDuration(elapsed.Seconds())
	log.Info("Rebuilt ratings", "players", len(result), "outcomes", len(outcomes), "duration", elapsed)

	return result, nil
}

func (s *service) Current(ctx context.Context) ([]PlayerRating, error) {
	return s.ratings.LoadAll(ctx)
}
