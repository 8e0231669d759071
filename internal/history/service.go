package history

import (
	"context"
	"fmt"

	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/player"
)

const (
	// DefaultPageSize is used when the caller passes a page size of zero
	// or less.
	DefaultPageSize = 25
	// MaxPageSize caps how much history one request can pull.
	MaxPageSize = 200
)

// NewService creates the history service.
func NewService(events ledger.EventStore, players player.Directory) Service {
	return &service{events: events, players: players}
}

func (s *service) List(ctx context.Context, page, pageSize int, playerID string) (Page, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	var (
		events []*ledger.MatchEvent
		err    error
	)
	if playerID != "" {
		if _, err := s.players.Get(ctx, playerID); err != nil {
			return Page{}, err
		}
		events, err = s.events.LoadForPlayer(ctx, playerID)
	} else {
		events, err = s.events.LoadAll(ctx)
	}
	if err != nil {
		return Page{}, fmt.Errorf("failed to load events for history: %w", err)
	}

	outcomes := ledger.Reconcile(events)

	total := len(outcomes)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	// Outcomes are oldest first; the feed serves newest first.
	start := total - page*pageSize
	end := start + pageSize
	if start < 0 {
		start = 0
	}

	names := make(map[string]string)
	entries := make([]Entry, 0, end-start)
	for i := end - 1; i >= start; i-- {
		entry, err := s.toEntry(ctx, outcomes[i], names)
		if err != nil {
			return Page{}, err
		}
		entries = append(entries, entry)
	}

	return Page{
		Entries:    entries,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

func (s *service) toEntry(ctx context.Context, o ledger.MatchOutcome, names map[string]string) (Entry, error) {
	for _, id := range []string{o.PlayerOneID, o.PlayerTwoID} {
		if _, ok := names[id]; !ok {
			p, err := s.players.Get(ctx, id)
			if err != nil {
				return Entry{}, fmt.Errorf("failed to resolve player %s: %w", id, err)
			}
			names[id] = p.DisplayName
		}
	}

	entry := Entry{
		EventID:       o.EventID,
		MatchDate:     o.MatchDate,
		Ordinal:       o.Ordinal,
		PlayerOneID:   o.PlayerOneID,
		PlayerOneName: names[o.PlayerOneID],
		PlayerTwoID:   o.PlayerTwoID,
		PlayerTwoName: names[o.PlayerTwoID],
		WinnerID:      o.WinnerID(),
		WinnerName:    names[o.WinnerID()],
		SubmittedBy:   o.SubmittedBy,
		Sets:          make([]SetScore, 0, len(o.Sets)),
	}

	for _, set := range o.Sets {
		switch v := set.(type) {
		case ledger.ScoredSet:
			p1, p2 := v.PlayerOneScore, v.PlayerTwoScore
			entry.Sets = append(entry.Sets, SetScore{
				SetNumber:      v.SetNumber,
				PlayerOneScore: &p1,
				PlayerTwoScore: &p2,
				PlayerOneWon:   v.WonByPlayerOne(),
			})
		case ledger.OutcomeSet:
			entry.Sets = append(entry.Sets, SetScore{
				SetNumber:    v.SetNumber,
				PlayerOneWon: v.PlayerOneWon,
			})
		}
	}

	return entry, nil
}
