package ledger

import (
	"sort"

	"github.com/charmbracelet/log"
)

// Reconcile orders and filters the full event collection into the canonical
// outcome sequence. Every consumer of the ledger (rating engine, standings,
// head-to-head, history) folds over this exact sequence; none re-derive their
// own ordering or filtering.
//
// Events are totally ordered by (match date, created at, event id); the id
// is the final tie-break so reconciliation stays deterministic even when
// timestamps collide, as they do during bulk seeding. Within each
// (date, unordered pair) group a 1-based ordinal is assigned in that order.
// Events that fail outcome resolution are logged and dropped; historical
// records never abort reconciliation.
func Reconcile(events []*MatchEvent) []MatchOutcome {
	sorted := append([]*MatchEvent(nil), events...)
	sort.Slice(sorted, func(i, j int) bool { return canonicalEventLess(sorted[i], sorted[j]) })

	type groupKey struct {
		matchDate string
		pair      string
	}
	nextOrdinal := make(map[groupKey]int)

	outcomes := make([]MatchOutcome, 0, len(sorted))
	for _, event := range sorted {
		key := groupKey{matchDate: event.MatchDate, pair: PairKey(event.PlayerOneID, event.PlayerTwoID)}
		nextOrdinal[key]++

		outcome, err := Resolve(event)
		if err != nil {
			log.Warn("Dropping unresolvable match event from ledger", "eventID", event.ID, "error", err)
			continue
		}
		outcome.Ordinal = nextOrdinal[key]
		outcomes = append(outcomes, outcome)
	}

	sort.Slice(outcomes, func(i, j int) bool { return canonicalOutcomeLess(outcomes[i], outcomes[j]) })
	return outcomes
}

// PairKey canonicalizes an unordered player pair so (A,B) and (B,A) collide.
func PairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

func canonicalEventLess(a, b *MatchEvent) bool {
	if a.MatchDate != b.MatchDate {
		return a.MatchDate < b.MatchDate
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func canonicalOutcomeLess(a, b MatchOutcome) bool {
	if a.MatchDate != b.MatchDate {
		return a.MatchDate < b.MatchDate
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.EventID < b.EventID
}
