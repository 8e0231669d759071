package standings

import "context"

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	TableFunc func(ctx context.Context) ([]Row, error)

	TableCalls int
}

// NewMock creates a new MockService.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) Table(ctx context.Context) ([]Row, error) {
	m.TableCalls++
	if m.TableFunc != nil {
		return m.TableFunc(ctx)
	}
	return nil, nil
}
