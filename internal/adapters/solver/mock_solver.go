package solver

import (
	"context"
	"sync"
	"vrp-route-viewer/internal/domain"
)

// MockSolver returns a fixed response and records every request.
// If Gate is non-nil, Solve blocks until Gate is closed or ctx is done.
type MockSolver struct {
	Response domain.SolveResponse
	Err      error
	Gate     chan struct{}

	mu    sync.Mutex
	calls []domain.SolveRequest
}

func NewMockSolver(routes []domain.Route, err error) *MockSolver {
	return &MockSolver{Response: domain.SolveResponse{Routes: routes}, Err: err}
}

func (m *MockSolver) Solve(ctx context.Context, req domain.SolveRequest) (domain.SolveResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.SolveResponse{}, ctx.Err()
		}
	}

	if m.Err != nil {
		return domain.SolveResponse{}, m.Err
	}
	return m.Response, nil
}

// Calls returns a copy of the recorded requests.
func (m *MockSolver) Calls() []domain.SolveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SolveRequest, len(m.calls))
	copy(out, m.calls)
	return out
}
