package headtohead

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/player"
)

const recentMatchLimit = 5

// NewService creates the head-to-head service.
func NewService(events ledger.EventStore, players player.Directory) Service {
	return &service{events: events, players: players}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func (s *service) Summary(ctx context.Context, playerID string) ([]OpponentRow, error) {
	if _, err := s.players.Get(ctx, playerID); err != nil {
		return nil, err
	}

	events, err := s.events.LoadForPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for player: %w", err)
	}
	outcomes := ledger.Reconcile(events)

	rowsByOpponent := make(map[string]*OpponentRow)
	for _, o := range outcomes {
		opponentID := o.PlayerOneID
		if opponentID == playerID {
			opponentID = o.PlayerTwoID
		}
		row, ok := rowsByOpponent[opponentID]
		if !ok {
			row = &OpponentRow{OpponentID: opponentID}
			rowsByOpponent[opponentID] = row
		}
		row.Played++
		if o.WonBy(playerID) {
			row.Wins++
		} else {
			row.Losses++
		}
	}

	rows := make([]OpponentRow, 0, len(rowsByOpponent))
	for opponentID, row := range rowsByOpponent {
		opponent, err := s.players.Get(ctx, opponentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve opponent %s: %w", opponentID, err)
		}
		row.OpponentName = opponent.DisplayName
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Played != b.Played {
			return a.Played > b.Played
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return strings.ToLower(a.OpponentName) < strings.ToLower(b.OpponentName)
	})

	return rows, nil
}

func (s *service) Details(ctx context.Context, playerAID, playerBID, from, to string) (Details, error) {
	playerA, err := s.players.Get(ctx, playerAID)
	if err != nil {
		return Details{}, err
	}
	playerB, err := s.players.Get(ctx, playerBID)
	if err != nil {
		return Details{}, err
	}

	events, err := s.events.LoadForPair(ctx, playerAID, playerBID)
	if err != nil {
		return Details{}, fmt.Errorf("failed to load events for pair: %w", err)
	}
	outcomes := ledger.Reconcile(events)

	d := Details{
		PlayerAID:   playerA.ID,
		PlayerAName: playerA.DisplayName,
		PlayerBID:   playerB.ID,
		PlayerBName: playerB.DisplayName,
	}

	var diffSum float64
	for _, o := range outcomes {
		if !withinRange(o.MatchDate, from, to) {
			continue
		}
		d.Played++
		if o.WonBy(playerAID) {
			d.PlayerAWins++
		} else {
			d.PlayerBWins++
		}

		aIsPlayerOne := o.PlayerOneID == playerAID
		for _, set := range o.Sets {
			if set.WonByPlayerOne() == aIsPlayerOne {
				d.PlayerASetWins++
			} else {
				d.PlayerBSetWins++
			}
			if scored, ok := set.(ledger.ScoredSet); ok {
				diff := float64(scored.PlayerOneScore - scored.PlayerTwoScore)
				if !aIsPlayerOne {
					diff = -diff
				}
				diffSum += diff
			}
		}

		d.Recent = append(d.Recent, recentMatch(o, aIsPlayerOne))
	}

	if d.Played > 0 {
		d.AvgPointDifferential = round2(diffSum / float64(d.Played))
	}

	// Outcomes arrive oldest first; the recent list is newest first,
	// capped at five.
	reverse(d.Recent)
	if len(d.Recent) > recentMatchLimit {
		d.Recent = d.Recent[:recentMatchLimit]
	}

	return d, nil
}

func withinRange(matchDate, from, to string) bool {
	if from != "" && matchDate < from {
		return false
	}
	if to != "" && matchDate > to {
		return false
	}
	return true
}

func recentMatch(o ledger.MatchOutcome, aIsPlayerOne bool) RecentMatch {
	m := RecentMatch{
		EventID:   o.EventID,
		MatchDate: o.MatchDate,
		Ordinal:   o.Ordinal,
		WinnerID:  o.WinnerID(),
		Sets:      make([]string, 0, len(o.Sets)),
	}
	for _, set := range o.Sets {
		switch v := set.(type) {
		case ledger.ScoredSet:
			if aIsPlayerOne {
				m.Sets = append(m.Sets, fmt.Sprintf("%d-%d", v.PlayerOneScore, v.PlayerTwoScore))
			} else {
				m.Sets = append(m.Sets, fmt.Sprintf("%d-%d", v.PlayerTwoScore, v.PlayerOneScore))
			}
		case ledger.OutcomeSet:
			if v.PlayerOneWon == aIsPlayerOne {
				m.Sets = append(m.Sets, "W")
			} else {
				m.Sets = append(m.Sets, "L")
			}
		}
	}
	return m
}

func reverse(matches []RecentMatch) {
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
}
