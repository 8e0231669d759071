package player

import "context"

// MockDirectory is a mock implementation of the Directory interface for testing.
type MockDirectory struct {
	ResolveOrCreateFunc func(ctx context.Context, displayName string) (Player, error)
	GetFunc             func(ctx context.Context, playerID string) (Player, error)
	ListFunc            func(ctx context.Context) ([]Player, error)

	ResolveOrCreateCalls []string
	GetCalls             []string
	ListCalls            int
}

// NewMock creates a new MockDirectory.
func NewMock() *MockDirectory {
	return &MockDirectory{}
}

func (m *MockDirectory) ResolveOrCreate(ctx context.Context, displayName string) (Player, error) {
	m.ResolveOrCreateCalls = append(m.ResolveOrCreateCalls, displayName)
	if m.ResolveOrCreateFunc != nil {
		return m.ResolveOrCreateFunc(ctx, displayName)
	}
	return Player{}, nil
}

func (m *MockDirectory) Get(ctx context.Context, playerID string) (Player, error) {
	m.GetCalls = append(m.GetCalls, playerID)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, playerID)
	}
	return Player{}, nil
}

func (m *MockDirectory) List(ctx context.Context) ([]Player, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}
