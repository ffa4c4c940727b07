package ports

import "vrp-route-viewer/internal/domain"

// Read-only mapping from location codes to coordinates.
type LocationRegistry interface {
	// Return the coordinates for a normalized code.
	Lookup(code string) (domain.Coordinates, bool)
	// Return every known location, ordered by code.
	List() []domain.Location
}
