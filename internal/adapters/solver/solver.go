package solver

import (
	"time"
	"vrp-route-viewer/internal/ports"
)

// New builds the solver used by the server. By default every Solve is one
// POST to endpoint. The CachingSolver decorator is added only when a cache
// is configured or coalesce is set, since it lets identical submissions
// share or skip the POST.
func New(endpoint string, timeout time.Duration, cache ports.SolveCache, coalesce bool) (ports.Solver, error) {
	s, err := NewHTTPSolver(endpoint, timeout)
	if err != nil {
		return nil, err
	}

	if cache == nil && !coalesce {
		return s, nil
	}
	return NewCachingSolver(s, cache), nil
}
