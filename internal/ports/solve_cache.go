package ports

import (
	"context"
	"vrp-route-viewer/internal/domain"
)

// Optional storage for previously solved requests.
type SolveCache interface {
	// Return the cached response for key, reporting whether it was found.
	Get(ctx context.Context, key string) (domain.SolveResponse, bool, error)
	// Store a response under key.
	Put(ctx context.Context, key string, resp domain.SolveResponse) error
}
