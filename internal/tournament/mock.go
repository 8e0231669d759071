package tournament

import "context"

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	CreateFunc              func(ctx context.Context, name, description string, durationDays, pointsPerWin int) (Tournament, error)
	JoinFunc                func(ctx context.Context, tournamentID, playerID string) error
	LeaveFunc               func(ctx context.Context, tournamentID, playerID string) error
	StartFunc               func(ctx context.Context, tournamentID string) (Tournament, error)
	ListFunc                func(ctx context.Context) ([]Tournament, error)
	GetFunc                 func(ctx context.Context, tournamentID string) (Details, error)
	FixturesFunc            func(ctx context.Context, tournamentID string) ([]Fixture, error)
	OpenFixtureFunc         func(ctx context.Context, playerAID, playerBID string) (Fixture, bool, error)
	RecordFixtureResultFunc func(ctx context.Context, fixtureID, winnerPlayerID, matchEventID string) error

	CreateCalls              int
	JoinCalls                [][2]string
	LeaveCalls               [][2]string
	StartCalls               []string
	ListCalls                int
	GetCalls                 []string
	FixturesCalls            []string
	OpenFixtureCalls         [][2]string
	RecordFixtureResultCalls [][3]string
}

// NewMock creates a new MockService.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) Create(ctx context.Context, name, description string, durationDays, pointsPerWin int) (Tournament, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, description, durationDays, pointsPerWin)
	}
	return Tournament{}, nil
}

func (m *MockService) Join(ctx context.Context, tournamentID, playerID string) error {
	m.JoinCalls = append(m.JoinCalls, [2]string{tournamentID, playerID})
	if m.JoinFunc != nil {
		return m.JoinFunc(ctx, tournamentID, playerID)
	}
	return nil
}

func (m *MockService) Leave(ctx context.Context, tournamentID, playerID string) error {
	m.LeaveCalls = append(m.LeaveCalls, [2]string{tournamentID, playerID})
	if m.LeaveFunc != nil {
		return m.LeaveFunc(ctx, tournamentID, playerID)
	}
	return nil
}

func (m *MockService) Start(ctx context.Context, tournamentID string) (Tournament, error) {
	m.StartCalls = append(m.StartCalls, tournamentID)
	if m.StartFunc != nil {
		return m.StartFunc(ctx, tournamentID)
	}
	return Tournament{}, nil
}

func (m *MockService) List(ctx context.Context) ([]Tournament, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockService) Get(ctx context.Context, tournamentID string) (Details, error) {
	m.GetCalls = append(m.GetCalls, tournamentID)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tournamentID)
	}
	return Details{}, nil
}

func (m *MockService) Fixtures(ctx context.Context, tournamentID string) ([]Fixture, error) {
	m.FixturesCalls = append(m.FixturesCalls, tournamentID)
	if m.FixturesFunc != nil {
		return m.FixturesFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (m *MockService) OpenFixture(ctx context.Context, playerAID, playerBID string) (Fixture, bool, error) {
	m.OpenFixtureCalls = append(m.OpenFixtureCalls, [2]string{playerAID, playerBID})
	if m.OpenFixtureFunc != nil {
		return m.OpenFixtureFunc(ctx, playerAID, playerBID)
	}
	return Fixture{}, false, nil
}

func (m *MockService) RecordFixtureResult(ctx context.Context, fixtureID, winnerPlayerID, matchEventID string) error {
	m.RecordFixtureResultCalls = append(m.RecordFixtureResultCalls, [3]string{fixtureID, winnerPlayerID, matchEventID})
	if m.RecordFixtureResultFunc != nil {
		return m.RecordFixtureResultFunc(ctx, fixtureID, winnerPlayerID, matchEventID)
	}
	return nil
}
