package tournament

import "context"

// Service manages tournament lifecycles, fixtures and standings.
type Service interface {
	// Create starts a new tournament in Draft state.
	Create(ctx context.Context, name, description string, durationDays, pointsPerWin int) (Tournament, error)

	// Join enrolls a player. Only Draft tournaments accept joins.
	Join(ctx context.Context, tournamentID, playerID string) error

	// Leave removes a player. Only Draft tournaments allow leaving.
	Leave(ctx context.Context, tournamentID, playerID string) error

	// Start activates a Draft tournament and generates its round-robin
	// fixtures. Requires at least two participants.
	Start(ctx context.Context, tournamentID string) (Tournament, error)

	// List returns all tournaments, newest first.
	List(ctx context.Context) ([]Tournament, error)

	// Get returns one tournament with its standings.
	Get(ctx context.Context, tournamentID string) (Details, error)

	// Fixtures returns a tournament's fixtures in schedule order.
	Fixtures(ctx context.Context, tournamentID string) ([]Fixture, error)

	// OpenFixture finds a pending fixture for the given pair in any
	// active tournament. The second return is false when there is none.
	OpenFixture(ctx context.Context, playerAID, playerBID string) (Fixture, bool, error)

	// RecordFixtureResult completes a fixture with the given winner and
	// backing match event, updates participant tallies, and completes the
	// tournament when its last fixture finishes. Recording against an
	// already-completed fixture is a no-op.
	RecordFixtureResult(ctx context.Context, fixtureID, winnerPlayerID, matchEventID string) error
}
