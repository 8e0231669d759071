package headtohead

import "context"

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	SummaryFunc func(ctx context.Context, playerID string) ([]OpponentRow, error)
	DetailsFunc func(ctx context.Context, playerAID, playerBID, from, to string) (Details, error)

	SummaryCalls []string
	DetailsCalls [][2]string
}

// NewMock creates a new MockService.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) Summary(ctx context.Context, playerID string) ([]OpponentRow, error) {
	m.SummaryCalls = append(m.SummaryCalls, playerID)
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, playerID)
	}
	return nil, nil
}

func (m *MockService) Details(ctx context.Context, playerAID, playerBID, from, to string) (Details, error) {
	m.DetailsCalls = append(m.DetailsCalls, [2]string{playerAID, playerBID})
	if m.DetailsFunc != nil {
		return m.DetailsFunc(ctx, playerAID, playerBID, from, to)
	}
	return Details{}, nil
}
