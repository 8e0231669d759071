package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jsvane/pingpong/internal/ledger"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/rating"
	"github.com/jsvane/pingpong/internal/tournament"
)

// NewService creates the submission orchestrator.
func NewService(
	events ledger.EventStore,
	players player.Directory,
	ratings rating.Service,
	tournaments tournament.Service,
	pubsubClient pubsub.PubSubClient,
	m metrics.Metrics,
) Service {
	return &service{
		events:      events,
		players:     players,
		ratings:     ratings,
		tournaments: tournaments,
		pubsub:      pubsubClient,
		metrics:     m,
	}
}

func (s *service) Submit(ctx context.Context, req Request) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := validate(req, time.Now())
	if err != nil {
		s.metrics.IncSubmissionsRejected()
		return Result{}, err
	}

	keyOne, err := player.NormalizeKey(req.PlayerOneName)
	if err != nil {
		s.metrics.IncSubmissionsRejected()
		return Result{}, &ValidationError{Message: err.Error()}
	}
	keyTwo, err := player.NormalizeKey(req.PlayerTwoName)
	if err != nil {
		s.metrics.IncSubmissionsRejected()
		return Result{}, &ValidationError{Message: err.Error()}
	}
	if keyOne == keyTwo {
		s.metrics.IncSubmissionsRejected()
		return Result{}, validationErrorf("a player cannot play against themselves")
	}

	playerOne, err := s.players.ResolveOrCreate(ctx, req.PlayerOneName)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve player one: %w", err)
	}
	playerTwo, err := s.players.ResolveOrCreate(ctx, req.PlayerTwoName)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve player two: %w", err)
	}

	event := &ledger.MatchEvent{
		ID:           uuid.NewString(),
		Kind:         v.kind,
		PlayerOneID:  playerOne.ID,
		PlayerTwoID:  playerTwo.ID,
		MatchDate:    v.matchDate,
		CreatedAt:    time.Now().UTC(),
		SubmittedBy:  req.SubmittedBy,
		PlayerOneWon: v.playerOneWon,
		Sets:         v.sets,
	}
	if err := s.events.Append(ctx, event); err != nil {
		return Result{}, fmt.Errorf("failed to persist match event: %w", err)
	}

	ratings, err := s.ratings.Rebuild(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to rebuild ratings: %w", err)
	}

	outcome, err := s.findOutcome(ctx, event)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		EventID:   event.ID,
		MatchDate: event.MatchDate,
		Ordinal:   outcome.Ordinal,
		PlayerOne: playerOne,
		PlayerTwo: playerTwo,
		WinnerID:  outcome.WinnerID(),
	}
	for _, r := range ratings {
		switch r.PlayerID {
		case playerOne.ID:
			result.PlayerOneRating = r.Rating
		case playerTwo.ID:
			result.PlayerTwoRating = r.Rating
		}
	}

	if fixtureID, err := s.completeFixture(ctx, &result); err != nil {
		return Result{}, err
	} else if fixtureID != "" {
		result.FixtureID = fixtureID
	}

	s.metrics.IncSubmissionsAccepted()
	log.Info("Accepted match submission",
		"eventID", event.ID, "playerOne", playerOne.DisplayName, "playerTwo", playerTwo.DisplayName,
		"winnerID", result.WinnerID, "matchDate", event.MatchDate, "ordinal", result.Ordinal)

	s.announce(outcome, result)
	return result, nil
}

// findOutcome reconciles the pair's events and locates the one just
// appended, picking up its ordinal and resolved winner.
func (s *service) findOutcome(ctx context.Context, event *ledger.MatchEvent) (ledger.MatchOutcome, error) {
	pairEvents, err := s.events.LoadForPair(ctx, event.PlayerOneID, event.PlayerTwoID)
	if err != nil {
		return ledger.MatchOutcome{}, fmt.Errorf("failed to load pair events: %w", err)
	}
	for _, o := range ledger.Reconcile(pairEvents) {
		if o.EventID == event.ID {
			return o, nil
		}
	}
	return ledger.MatchOutcome{}, fmt.Errorf("submitted event %s did not resolve to an outcome", event.ID)
}

// completeFixture resolves any open tournament fixture for the pair.
func (s *service) completeFixture(ctx context.Context, result *Result) (string, error) {
	fixture, found, err := s.tournaments.OpenFixture(ctx, result.PlayerOne.ID, result.PlayerTwo.ID)
	if err != nil {
		return "", fmt.Errorf("failed to look up open fixtures: %w", err)
	}
	if !found {
		return "", nil
	}
	if err := s.tournaments.RecordFixtureResult(ctx, fixture.ID, result.WinnerID, result.EventID); err != nil {
		return "", fmt.Errorf("failed to record fixture result: %w", err)
	}
	return fixture.ID, nil
}

// announce publishes the result for notification. Failures are logged but
// never fail the submission.
func (s *service) announce(outcome ledger.MatchOutcome, result Result) {
	winnerName := result.PlayerOne.DisplayName
	if result.WinnerID == result.PlayerTwo.ID {
		winnerName = result.PlayerTwo.DisplayName
	}

	msg := pubsub.MatchResultMessage{
		EventID:         result.EventID,
		MatchDate:       result.MatchDate,
		Ordinal:         result.Ordinal,
		PlayerOneName:   result.PlayerOne.DisplayName,
		PlayerTwoName:   result.PlayerTwo.DisplayName,
		WinnerName:      winnerName,
		Sets:            renderSets(outcome.Sets),
		PlayerOneRating: result.PlayerOneRating,
		PlayerTwoRating: result.PlayerTwoRating,
	}
	if err := s.pubsub.SendMessage(pubsub.EventNotifyResult, msg); err != nil {
		log.Error("Failed to publish match result", "error", err, "eventID", result.EventID)
	}
}

func renderSets(sets []ledger.SetResult) []string {
	rendered := make([]string, 0, len(sets))
	for _, set := range sets {
		switch v := set.(type) {
		case ledger.ScoredSet:
			rendered = append(rendered, fmt.Sprintf("%d-%d", v.PlayerOneScore, v.PlayerTwoScore))
		case ledger.OutcomeSet:
			if v.PlayerOneWon {
				rendered = append(rendered, "W")
			} else {
				rendered = append(rendered, "L")
			}
		}
	}
	return rendered
}
