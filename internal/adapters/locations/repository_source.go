package locations

import (
	"context"
	"fmt"
	"vrp-route-viewer/internal/ports"
)

// LoadFromRepository snapshots every location from repo into an
// immutable registry. Later changes to the data source are not observed.
func LoadFromRepository(ctx context.Context, repo ports.LocationRepository) (*StaticRegistry, error) {
	locs, err := repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations from repository: %w", err)
	}

	return NewStaticRegistry(locs)
}
