package submission

import "context"

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	SubmitFunc func(ctx context.Context, req Request) (Result, error)

	SubmitCalls []Request
}

// NewMock creates a new MockService.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) Submit(ctx context.Context, req Request) (Result, error) {
	m.SubmitCalls = append(m.SubmitCalls, req)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return Result{}, nil
}
