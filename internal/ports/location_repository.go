package ports

import (
	"context"
	"vrp-route-viewer/internal/domain"
)

// Port: a boundary for loading Location entities from a data source.
type LocationRepository interface {
	// Retrieve all locations known to the data source.
	ListLocations(ctx context.Context) ([]domain.Location, error)
}
