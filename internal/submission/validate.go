package submission

import (
	"strings"
	"time"

	"github.com/jsvane/pingpong/internal/ledger"
)

const dateLayout = "2006-01-02"

// validated is the outcome of shape classification and score validation,
// ready to become a match event.
type validated struct {
	kind         ledger.EventKind
	playerOneWon bool // only meaningful for outcome-only events
	matchDate    string
	sets         []ledger.EventSet
}

func validate(req Request, now time.Time) (validated, error) {
	if strings.TrimSpace(req.PlayerOneName) == "" || strings.TrimSpace(req.PlayerTwoName) == "" {
		return validated{}, validationErrorf("both player names are required")
	}

	matchDate := strings.TrimSpace(req.MatchDate)
	if matchDate == "" {
		matchDate = now.UTC().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, matchDate); err != nil {
		return validated{}, validationErrorf("match date %q is not a valid YYYY-MM-DD date", matchDate)
	}

	if err := validateSetNumbers(req.Sets); err != nil {
		return validated{}, err
	}

	var scored, flagged int
	for _, set := range req.Sets {
		hasScore := set.PlayerOneScore != nil || set.PlayerTwoScore != nil
		if hasScore && set.PlayerOneWon != nil {
			return validated{}, validationErrorf("set %d mixes scores with a winner flag", set.SetNumber)
		}
		if hasScore {
			scored++
		} else if set.PlayerOneWon != nil {
			flagged++
		} else {
			return validated{}, validationErrorf("set %d carries neither scores nor a winner flag", set.SetNumber)
		}
	}
	if scored > 0 && flagged > 0 {
		return validated{}, validationErrorf("submission mixes scored sets with outcome-only sets")
	}

	switch {
	case scored > 0:
		return validateScored(req, matchDate)
	case flagged > 0:
		return validateOutcomeSets(req, matchDate)
	default:
		if req.PlayerOneWon == nil {
			return validated{}, validationErrorf("submission needs scored sets, set winners, or a win/loss flag")
		}
		return validated{
			kind:         ledger.KindOutcomeOnly,
			playerOneWon: *req.PlayerOneWon,
			matchDate:    matchDate,
		}, nil
	}
}

func validateSetNumbers(sets []SetRequest) error {
	seen := make(map[int]bool, len(sets))
	for _, set := range sets {
		if set.SetNumber <= 0 {
			return validationErrorf("set numbers must be positive, got %d", set.SetNumber)
		}
		if seen[set.SetNumber] {
			return validationErrorf("duplicate set number %d", set.SetNumber)
		}
		seen[set.SetNumber] = true
	}
	return nil
}

func validateScored(req Request, matchDate string) (validated, error) {
	if req.PlayerOneWon != nil {
		return validated{}, validationErrorf("scored submissions cannot carry a win/loss flag")
	}

	var p1Sets, p2Sets int
	sets := make([]ledger.EventSet, 0, len(req.Sets))
	for _, set := range req.Sets {
		if set.PlayerOneScore == nil || set.PlayerTwoScore == nil {
			return validated{}, validationErrorf("set %d needs both scores", set.SetNumber)
		}
		p1, p2 := *set.PlayerOneScore, *set.PlayerTwoScore
		if p1 < 0 || p2 < 0 {
			return validated{}, validationErrorf("set %d has a negative score", set.SetNumber)
		}
		if p1 == p2 {
			return validated{}, validationErrorf("set %d is a tie; table tennis sets cannot tie", set.SetNumber)
		}
		if max(p1, p2) < 11 {
			return validated{}, validationErrorf("set %d: the winning score must be at least 11", set.SetNumber)
		}
		if abs(p1-p2) < 2 {
			return validated{}, validationErrorf("set %d: sets must be won by at least 2 points", set.SetNumber)
		}
		if p1 > p2 {
			p1Sets++
		} else {
			p2Sets++
		}
		sets = append(sets, ledger.EventSet{SetNumber: set.SetNumber, PlayerOneScore: set.PlayerOneScore, PlayerTwoScore: set.PlayerTwoScore})
	}

	if p1Sets == p2Sets {
		return validated{}, validationErrorf("sets split evenly; the match has no winner")
	}

	return validated{kind: ledger.KindScored, matchDate: matchDate, sets: sets}, nil
}

func validateOutcomeSets(req Request, matchDate string) (validated, error) {
	var p1Sets, p2Sets int
	sets := make([]ledger.EventSet, 0, len(req.Sets))
	for _, set := range req.Sets {
		if *set.PlayerOneWon {
			p1Sets++
		} else {
			p2Sets++
		}
		sets = append(sets, ledger.EventSet{SetNumber: set.SetNumber, PlayerOneWon: set.PlayerOneWon})
	}

	if p1Sets == p2Sets {
		return validated{}, validationErrorf("set winners split evenly; the match has no winner")
	}
	playerOneWon := p1Sets > p2Sets
	if req.PlayerOneWon != nil && *req.PlayerOneWon != playerOneWon {
		return validated{}, validationErrorf("the win/loss flag contradicts the set winners")
	}

	return validated{
		kind:         ledger.KindOutcomeOnly,
		playerOneWon: playerOneWon,
		matchDate:    matchDate,
		sets:         sets,
	}, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
