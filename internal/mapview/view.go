package mapview

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// LatLng is a [lat, lng] pair, the shape Leaflet accepts directly.
type LatLng [2]float64

// Bounds is a [[south, west], [north, east]] box.
type Bounds [2]LatLng

func boundsOf(points []LatLng) Bounds {
	b := Bounds{points[0], points[0]}
	for _, p := range points[1:] {
		b = b.extend(p)
	}
	return b
}

func (b Bounds) extend(p LatLng) Bounds {
	if p[0] < b[0][0] {
		b[0][0] = p[0]
	}
	if p[1] < b[0][1] {
		b[0][1] = p[1]
	}
	if p[0] > b[1][0] {
		b[1][0] = p[0]
	}
	if p[1] > b[1][1] {
		b[1][1] = p[1]
	}
	return b
}

func (b Bounds) union(o Bounds) Bounds {
	return b.extend(o[0]).extend(o[1])
}

type TileLayer struct {
	URLTemplate string `json:"url"`
	Attribution string `json:"attribution"`
}

type Polyline struct {
	Route   int      `json:"route"`
	Points  []LatLng `json:"points"`
	Color   string   `json:"color"`
	Weight  int      `json:"weight"`
	Opacity float64  `json:"opacity"`
}

type Marker struct {
	Route    int    `json:"route"`
	Code     string `json:"code"`
	Position LatLng `json:"position"`
	Popup    string `json:"popup"`
}

// SkippedStop records a stop code that could not be placed on the map.
type SkippedStop struct {
	Route int    `json:"route"`
	Code  string `json:"code"`
}

// FitMode selects how the final viewport is computed.
type FitMode string

const (
	// FitLastRoute fits the viewport to each route in turn, so only the
	// last drawn route's bounds remain.
	FitLastRoute FitMode = "last"
	// FitAllRoutes accumulates the bounds of every drawn route.
	FitAllRoutes FitMode = "all"
)

func ParseFitMode(s string) (FitMode, error) {
	switch m := FitMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FitLastRoute, FitAllRoutes:
		return m, nil
	case "":
		return FitLastRoute, nil
	default:
		return "", fmt.Errorf("unknown fit mode %q", s)
	}
}

// View is one map instance: base layer, overlays and the fitted viewport.
// A view is immutable once returned by the Presenter; only its disposed
// flag changes.
type View struct {
	ID        uint64        `json:"id"`
	Center    LatLng        `json:"center"`
	Zoom      int           `json:"zoom"`
	Tiles     TileLayer     `json:"tiles"`
	Polylines []Polyline    `json:"polylines"`
	Markers   []Marker      `json:"markers"`
	Fit       *Bounds       `json:"fit,omitempty"`
	Skipped   []SkippedStop `json:"skipped,omitempty"`

	disposed atomic.Bool
}

// Dispose marks the view as torn down. Calling it again is a no-op.
func (v *View) Dispose() { v.disposed.Store(true) }

func (v *View) Disposed() bool { return v.disposed.Load() }
