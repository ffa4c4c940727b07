// Package mapview turns solver routes into a map description that the
// page draws with Leaflet.
package mapview

import (
	"html"
	"sync"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/ports"
)

// Defaults for a freshly created map.
var (
	DefaultCenter = LatLng{22.0, -102.0}
	DefaultTiles  = TileLayer{
		URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap contributors",
	}
)

const (
	DefaultZoom  = 5
	routeColor   = "#FF5733"
	routeWeight  = 5
	routeOpacity = 0.7
)

// Presenter owns the single live map view of one session. Every Present
// disposes the previous view before creating a new one, so at most one
// view is live at a time. Safe for concurrent use.
type Presenter struct {
	registry ports.LocationRegistry
	fit      FitMode

	mu      sync.Mutex
	current *View
	nextID  uint64
}

func NewPresenter(registry ports.LocationRegistry, fit FitMode) *Presenter {
	if fit == "" {
		fit = FitLastRoute
	}
	return &Presenter{registry: registry, fit: fit}
}

// Present replaces the current view with one drawing routes in order.
// Stops missing from the registry are skipped and listed in View.Skipped.
func (p *Presenter) Present(routes []domain.Route) *View {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.Dispose()
		p.current = nil
	}

	p.nextID++
	v := &View{
		ID:        p.nextID,
		Center:    DefaultCenter,
		Zoom:      DefaultZoom,
		Tiles:     DefaultTiles,
		Polylines: make([]Polyline, 0, len(routes)),
		Markers:   make([]Marker, 0),
	}

	for i, r := range routes {
		p.drawRoute(v, i+1, r)
	}

	p.current = v
	return v
}

func (p *Presenter) drawRoute(v *View, index int, r domain.Route) {
	points := make([]LatLng, 0, len(r.Stops))
	for _, code := range r.Stops {
		c, ok := p.registry.Lookup(code)
		if !ok {
			v.Skipped = append(v.Skipped, SkippedStop{Route: index, Code: code})
			continue
		}

		pos := LatLng{c.Lat, c.Lng}
		points = append(points, pos)
		v.Markers = append(v.Markers, Marker{
			Route:    index,
			Code:     code,
			Position: pos,
			Popup:    "<strong>" + html.EscapeString(code) + "</strong>",
		})
	}

	if len(points) == 0 {
		return
	}

	v.Polylines = append(v.Polylines, Polyline{
		Route:   index,
		Points:  points,
		Color:   routeColor,
		Weight:  routeWeight,
		Opacity: routeOpacity,
	})

	b := boundsOf(points)
	if p.fit == FitAllRoutes && v.Fit != nil {
		b = v.Fit.union(b)
	}
	v.Fit = &b
}

// Current returns the live view, or nil before the first Present.
func (p *Presenter) Current() *View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Dispose tears down the live view, if any.
func (p *Presenter) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.current.Dispose()
		p.current = nil
	}
}
