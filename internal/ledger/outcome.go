package ledger

import (
	"fmt"
	"sort"
)

// Resolve turns one match event into its resolved outcome. It is pure; the
// caller decides whether a failure aborts the run or drops the event.
//
// Scored events derive the winner from the set-count majority and fail when
// the sets split evenly. Outcome-only events use the event's explicit winner
// flag; an outcome-only event with zero sets synthesizes a single set so
// every outcome carries at least one set for downstream statistics.
func Resolve(event *MatchEvent) (MatchOutcome, error) {
	if event == nil {
		return MatchOutcome{}, fmt.Errorf("nil match event")
	}

	sets := append([]EventSet(nil), event.Sets...)
	sort.Slice(sets, func(i, j int) bool { return sets[i].SetNumber < sets[j].SetNumber })

	var resolved []SetResult
	var playerOneWon bool

	switch event.Kind {
	case KindScored:
		if len(sets) == 0 {
			return MatchOutcome{}, fmt.Errorf("scored event %s has no sets", event.ID)
		}
		for _, set := range sets {
			if set.PlayerOneScore == nil || set.PlayerTwoScore == nil {
				return MatchOutcome{}, fmt.Errorf("scored event %s set %d is missing scores", event.ID, set.SetNumber)
			}
			resolved = append(resolved, ScoredSet{
				SetNumber:      set.SetNumber,
				PlayerOneScore: *set.PlayerOneScore,
				PlayerTwoScore: *set.PlayerTwoScore,
			})
		}
		won, err := deriveWinner(resolved)
		if err != nil {
			return MatchOutcome{}, fmt.Errorf("event %s: %w", event.ID, err)
		}
		playerOneWon = won

	case KindOutcomeOnly:
		if len(sets) == 0 {
			resolved = []SetResult{OutcomeSet{SetNumber: 1, PlayerOneWon: event.PlayerOneWon}}
		} else {
			for _, set := range sets {
				if set.PlayerOneWon == nil {
					return MatchOutcome{}, fmt.Errorf("outcome-only event %s set %d is missing a winner", event.ID, set.SetNumber)
				}
				resolved = append(resolved, OutcomeSet{SetNumber: set.SetNumber, PlayerOneWon: *set.PlayerOneWon})
			}
		}
		playerOneWon = event.PlayerOneWon

	default:
		return MatchOutcome{}, fmt.Errorf("event %s has unknown kind %q", event.ID, event.Kind)
	}

	return MatchOutcome{
		EventID:      event.ID,
		PlayerOneID:  event.PlayerOneID,
		PlayerTwoID:  event.PlayerTwoID,
		MatchDate:    event.MatchDate,
		PlayerOneWon: playerOneWon,
		Sets:         resolved,
		SubmittedBy:  event.SubmittedBy,
		CreatedAt:    event.CreatedAt,
	}, nil
}

// deriveWinner returns true when player one took strictly more sets. A tied
// set counts for neither player; such sets cannot be submitted but may exist
// in legacy data.
func deriveWinner(sets []SetResult) (bool, error) {
	p1Sets, p2Sets := 0, 0
	for _, set := range sets {
		if scored, ok := set.(ScoredSet); ok && scored.PlayerOneScore == scored.PlayerTwoScore {
			continue
		}
		if set.WonByPlayerOne() {
			p1Sets++
		} else {
			p2Sets++
		}
	}
	if p1Sets == p2Sets {
		return false, fmt.Errorf("sets split %d-%d with no clear winner", p1Sets, p2Sets)
	}
	return p1Sets > p2Sets, nil
}
