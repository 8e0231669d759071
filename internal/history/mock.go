package history

import "context"

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	ListFunc func(ctx context.Context, page, pageSize int, playerID string) (Page, error)

	ListCalls int
}

// NewMock creates a new MockService.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) List(ctx context.Context, page, pageSize int, playerID string) (Page, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, pageSize, playerID)
	}
	return Page{}, nil
}
