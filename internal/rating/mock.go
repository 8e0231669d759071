package rating

import "context"

// MockStore is a mock implementation of the RatingStore interface for testing.
type MockStore struct {
	ReplaceAllFunc func(ctx context.Context, ratings []PlayerRating) error
	LoadAllFunc    func(ctx context.Context) ([]PlayerRating, error)
	GetFunc        func(ctx context.Context, playerID string) (PlayerRating, error)

	ReplaceAllCalls [][]PlayerRating
	LoadAllCalls    int
	GetCalls        []string
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ReplaceAll(ctx context.Context, ratings []PlayerRating) error {
	m.ReplaceAllCalls = append(m.ReplaceAllCalls, ratings)
	if m.ReplaceAllFunc != nil {
		return m.ReplaceAllFunc(ctx, ratings)
	}
	return nil
}

func (m *MockStore) LoadAll(ctx context.Context) ([]PlayerRating, error) {
	m.LoadAllCalls++
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) Get(ctx context.Context, playerID string) (PlayerRating, error) {
	m.GetCalls = append(m.GetCalls, playerID)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, playerID)
	}
	return PlayerRating{}, nil
}

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	RebuildFunc func(ctx context.Context) ([]PlayerRating, error)
	CurrentFunc func(ctx context.Context) ([]PlayerRating, error)

	RebuildCalls int
	CurrentCalls int
}

// NewMockService creates a new MockService.
func NewMockService() *MockService {
	return &MockService{}
}

func (m *MockService) Rebuild(ctx context.Context) ([]PlayerRating, error) {
	m.RebuildCalls++
	if m.RebuildFunc != nil {
		return m.RebuildFunc(ctx)
	}
	return nil, nil
}

func (m *MockService) Current(ctx context.Context) ([]PlayerRating, error) {
	m.CurrentCalls++
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return nil, nil
}
