package ledger

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the EventStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	AppendFunc        func(ctx context.Context, event *MatchEvent) error
	LoadAllFunc       func(ctx context.Context) ([]*MatchEvent, error)
	LoadForPlayerFunc func(ctx context.Context, playerID string) ([]*MatchEvent, error)
	LoadForPairFunc   func(ctx context.Context, playerAID, playerBID string) ([]*MatchEvent, error)

	AppendCalls        []*MatchEvent
	LoadForPlayerCalls []string
	LoadForPairCalls   [][2]string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Append(ctx context.Context, event *MatchEvent) error {
	m.mu.Lock()
	m.AppendCalls = append(m.AppendCalls, event)
	m.mu.Unlock()
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, event)
	}
	return nil
}

func (m *MockStore) LoadAll(ctx context.Context) ([]*MatchEvent, error) {
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) LoadForPlayer(ctx context.Context, playerID string) ([]*MatchEvent, error) {
	m.mu.Lock()
	m.LoadForPlayerCalls = append(m.LoadForPlayerCalls, playerID)
	m.mu.Unlock()
	if m.LoadForPlayerFunc != nil {
		return m.LoadForPlayerFunc(ctx, playerID)
	}
	return nil, nil
}

func (m *MockStore) LoadForPair(ctx context.Context, playerAID, playerBID string) ([]*MatchEvent, error) {
	m.mu.Lock()
	m.LoadForPairCalls = append(m.LoadForPairCalls, [2]string{playerAID, playerBID})
	m.mu.Unlock()
	if m.LoadForPairFunc != nil {
		return m.LoadForPairFunc(ctx, playerAID, playerBID)
	}
	return nil, nil
}
