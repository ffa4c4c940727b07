package locations

import (
	"errors"
	"fmt"
	"sort"
	"vrp-route-viewer/internal/domain"
)

// Locations served when no file or database source is configured.
var DefaultLocations = []domain.Location{
	{Code: "EDO.MEX", Coordinates: domain.Coordinates{Lat: 19.293704, Lng: -99.653710}},
	{Code: "QRO", Coordinates: domain.Coordinates{Lat: 20.593507, Lng: -100.390072}},
	{Code: "CDMX", Coordinates: domain.Coordinates{Lat: 19.432915, Lng: -99.133364}},
	{Code: "SLP", Coordinates: domain.Coordinates{Lat: 22.150933, Lng: -100.974140}},
	{Code: "MTY", Coordinates: domain.Coordinates{Lat: 25.675058, Lng: -100.287582}},
	{Code: "PUE", Coordinates: domain.Coordinates{Lat: 19.063633, Lng: -98.306990}},
	{Code: "GDL", Coordinates: domain.Coordinates{Lat: 20.677204, Lng: -103.346994}},
	{Code: "MICH", Coordinates: domain.Coordinates{Lat: 19.702594, Lng: -101.192382}},
	{Code: "SON", Coordinates: domain.Coordinates{Lat: 29.075226, Lng: -110.959624}},
}

// StaticRegistry is an immutable in-memory LocationRegistry.
// It is safe for concurrent use because nothing mutates it after construction.
type StaticRegistry struct {
	byCode map[string]domain.Coordinates
	sorted []domain.Location
}

// NewStaticRegistry validates and indexes locs. Codes are normalized;
// blank codes, duplicates and out-of-range coordinates are rejected.
func NewStaticRegistry(locs []domain.Location) (*StaticRegistry, error) {
	if len(locs) == 0 {
		return nil, errors.New("new registry: location list must not be empty")
	}

	byCode := make(map[string]domain.Coordinates, len(locs))
	sorted := make([]domain.Location, 0, len(locs))
	for i, l := range locs {
		code := domain.NormalizeCode(l.Code)
		if code == "" {
			return nil, fmt.Errorf("new registry: location at index %d has empty code", i)
		}
		if _, ok := byCode[code]; ok {
			return nil, fmt.Errorf("new registry: duplicate location code %q", code)
		}
		if err := l.Coordinates.Validate(); err != nil {
			return nil, fmt.Errorf("new registry: location %q: %w", code, err)
		}

		byCode[code] = l.Coordinates
		sorted = append(sorted, domain.Location{Code: code, Coordinates: l.Coordinates})
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	return &StaticRegistry{byCode: byCode, sorted: sorted}, nil
}

// MustDefault returns the registry built from DefaultLocations.
func MustDefault() *StaticRegistry {
	r, err := NewStaticRegistry(DefaultLocations)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *StaticRegistry) Lookup(code string) (domain.Coordinates, bool) {
	c, ok := r.byCode[code]
	return c, ok
}

func (r *StaticRegistry) List() []domain.Location {
	out := make([]domain.Location, len(r.sorted))
	copy(out, r.sorted)
	return out
}
