package locations

import (
	"fmt"
	"os"
	"vrp-route-viewer/internal/domain"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Locations []yamlLocation `yaml:"locations"`
}

type yamlLocation struct {
	Code string  `yaml:"code"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

// ParseYAML decodes a locations document of the form
//
//	locations:
//	  - {code: CDMX, lat: 19.43, lng: -99.13}
func ParseYAML(b []byte) ([]domain.Location, error) {
	var f yamlFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse locations yaml: %w", err)
	}

	out := make([]domain.Location, 0, len(f.Locations))
	for _, l := range f.Locations {
		out = append(out, domain.Location{
			Code:        l.Code,
			Coordinates: domain.Coordinates{Lat: l.Lat, Lng: l.Lng},
		})
	}
	return out, nil
}

// LoadYAMLFile reads path and builds a registry from it.
func LoadYAMLFile(path string) (*StaticRegistry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load locations: read %q: %w", path, err)
	}

	locs, err := ParseYAML(b)
	if err != nil {
		return nil, fmt.Errorf("load locations %q: %w", path, err)
	}

	return NewStaticRegistry(locs)
}
