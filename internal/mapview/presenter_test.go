package mapview

import (
	"sync"
	"testing"
	"vrp-route-viewer/internal/adapters/locations"
	"vrp-route-viewer/internal/domain"
)

var twoRoutes = []domain.Route{
	{Stops: []string{"CDMX", "QRO", "SLP"}},
	{Stops: []string{"GDL", "MICH"}},
}

func TestPresentDrawsEveryRoute(t *testing.T) {
	p := NewPresenter(locations.MustDefault(), FitLastRoute)
	v := p.Present(twoRoutes)

	if v.Center != DefaultCenter || v.Zoom != DefaultZoom || v.Tiles != DefaultTiles {
		t.Fatalf("unexpected base map: center=%v zoom=%d tiles=%+v", v.Center, v.Zoom, v.Tiles)
	}
	if len(v.Polylines) != 2 {
		t.Fatalf("polylines = %d, want 2", len(v.Polylines))
	}
	if len(v.Markers) != 5 {
		t.Fatalf("markers = %d, want 5", len(v.Markers))
	}

	line := v.Polylines[0]
	if line.Color != "#FF5733" || line.Weight != 5 || line.Opacity != 0.7 {
		t.Fatalf("polyline style = %+v", line)
	}
	if len(line.Points) != 3 || line.Points[0] != (LatLng{19.432915, -99.133364}) {
		t.Fatalf("polyline points = %v", line.Points)
	}
	if v.Markers[0].Popup != "<strong>CDMX</strong>" {
		t.Fatalf("popup = %q", v.Markers[0].Popup)
	}
}

func TestPresentFitLastRoute(t *testing.T) {
	p := NewPresenter(locations.MustDefault(), FitLastRoute)
	v := p.Present(twoRoutes)

	want := Bounds{{19.702594, -103.346994}, {20.677204, -101.192382}}
	if v.Fit == nil || *v.Fit != want {
		t.Fatalf("fit = %v, want last route bounds %v", v.Fit, want)
	}
}

func TestPresentFitAllRoutes(t *testing.T) {
	p := NewPresenter(locations.MustDefault(), FitAllRoutes)
	v := p.Present(twoRoutes)

	want := Bounds{{19.432915, -103.346994}, {22.150933, -99.133364}}
	if v.Fit == nil || *v.Fit != want {
		t.Fatalf("fit = %v, want union %v", v.Fit, want)
	}
}

func TestPresentSkipsUnknownStops(t *testing.T) {
	p := NewPresenter(locations.MustDefault(), FitLastRoute)
	v := p.Present([]domain.Route{
		{Stops: []string{"CDMX", "ATLANTIS", "QRO"}},
		{Stops: []string{"NOWHERE"}},
	})

	if len(v.Polylines) != 1 || len(v.Polylines[0].Points) != 2 {
		t.Fatalf("polylines = %+v", v.Polylines)
	}
	if len(v.Skipped) != 2 || v.Skipped[0] != (SkippedStop{Route: 1, Code: "ATLANTIS"}) || v.Skipped[1].Route != 2 {
		t.Fatalf("skipped = %+v", v.Skipped)
	}
	// The unresolvable second route leaves the first route's viewport.
	if v.Fit == nil || v.Fit[1][0] != 20.593507 {
		t.Fatalf("fit = %v", v.Fit)
	}
}

func TestPresentDisposesPreviousView(t *testing.T) {
	p := NewPresenter(locations.MustDefault(), FitLastRoute)

	first := p.Present(twoRoutes)
	second := p.Present(twoRoutes[:1])

	if !first.Disposed() {
		t.Fatal("previous view must be disposed")
	}
	if second.Disposed() {
		t.Fatal("current view must be live")
	}
	if p.Current() != second {
		t.Fatal("Current must return the latest view")
	}
	if second.ID <= first.ID {
		t.Fatalf("view ids must increase: %d then %d", first.ID, second.ID)
	}

	p.Dispose()
	p.Dispose()
	if !second.Disposed() || p.Current() != nil {
		t.Fatal("Dispose must tear down the live view")
	}
}

func TestPresentConcurrentLeavesOneLiveView(t *testing.T) {
	p := NewPresenter(locations.MustDefault(), FitLastRoute)

	var mu sync.Mutex
	var views []*View
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := p.Present(twoRoutes)
			mu.Lock()
			views = append(views, v)
			mu.Unlock()
		}()
	}
	wg.Wait()

	live := 0
	for _, v := range views {
		if !v.Disposed() {
			live++
			if v != p.Current() {
				t.Fatal("the live view must be the current one")
			}
		}
	}
	if live != 1 {
		t.Fatalf("live views = %d, want 1", live)
	}
}

func TestParseFitMode(t *testing.T) {
	if m, err := ParseFitMode(" ALL "); err != nil || m != FitAllRoutes {
		t.Fatalf("ParseFitMode(ALL) = %q, %v", m, err)
	}
	if m, err := ParseFitMode(""); err != nil || m != FitLastRoute {
		t.Fatalf("ParseFitMode(\"\") = %q, %v", m, err)
	}
	if _, err := ParseFitMode("center"); err == nil {
		t.Fatal("expected error")
	}
}
