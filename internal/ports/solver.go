package ports

import (
	"context"
	"vrp-route-viewer/internal/domain"
)

// Contract for the remote vehicle-routing solver.
type Solver interface {
	// Submit a validated request and return the solver's routes.
	// An empty route list is a valid answer, not an error.
	Solve(ctx context.Context, req domain.SolveRequest) (domain.SolveResponse, error)
}
