package solver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"vrp-route-viewer/internal/domain"
)

func newTestSolver(t *testing.T, h http.HandlerFunc) *HTTPSolver {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	s, err := NewHTTPSolver(srv.URL+"/vrp", 0)
	if err != nil {
		t.Fatalf("NewHTTPSolver: %v", err)
	}
	return s
}

func cdmxRequest() domain.SolveRequest {
	return domain.SolveRequest{
		DepotCode: "CDMX",
		Depot:     domain.Coordinates{Lat: 19.432915, Lng: -99.133364},
		MaxLoad:   500,
	}
}

func TestSolveSendsWirePayload(t *testing.T) {
	var gotMethod, gotPath, gotType string
	var gotBody map[string]json.RawMessage

	s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rutas":[]}`))
	})

	req := cdmxRequest()
	req.Constraints = []domain.Constraint{{Origin: "QRO", Destination: "MTY"}}
	if _, err := s.Solve(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/vrp" {
		t.Fatalf("got %s %s, want POST /vrp", gotMethod, gotPath)
	}
	if gotType != "application/json" {
		t.Fatalf("Content-Type = %q", gotType)
	}
	if string(gotBody["almacen"]) != "[19.432915,-99.133364]" {
		t.Fatalf("almacen = %s", gotBody["almacen"])
	}
	if string(gotBody["max_carga"]) != "500" {
		t.Fatalf("max_carga = %s", gotBody["max_carga"])
	}
	if len(gotBody) != 2 {
		t.Fatalf("payload must only carry almacen and max_carga, got %v", gotBody)
	}
}

func TestSolveDecodesRoutes(t *testing.T) {
	s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rutas":[{"ruta":["CDMX","QRO"],"peso_total":120,"costo":45.5,"tiempo":"2h"},{"ruta":["CDMX"],"peso_total":1,"costo":2,"tiempo":90}]}`))
	})

	resp, err := s.Solve(context.Background(), cdmxRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(resp.Routes))
	}

	r := resp.Routes[0]
	if strings.Join(r.Stops, ",") != "CDMX,QRO" || r.TotalWeight != 120 || r.Cost != 45.5 || r.EstimatedTime != "2h" {
		t.Fatalf("route 1 = %+v", r)
	}
	if resp.Routes[1].EstimatedTime != "90" {
		t.Fatalf("non-string tiempo should render verbatim, got %q", resp.Routes[1].EstimatedTime)
	}
}

func TestSolveEmptyAnswers(t *testing.T) {
	bodies := map[string]string{
		"empty array":   `{"rutas":[]}`,
		"missing rutas": `{"mensaje":"sin rutas"}`,
		"null rutas":    `{"rutas":null}`,
		"object rutas":  `{"rutas":{"a":1}}`,
		"top level":     `[1,2,3]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			resp, err := s.Solve(context.Background(), cdmxRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(resp.Routes) != 0 {
				t.Fatalf("expected no routes, got %d", len(resp.Routes))
			}
		})
	}
}

func TestSolveJSONErrorStatusIsNotFatal(t *testing.T) {
	s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"solver crashed"}`))
	})

	resp, err := s.Solve(context.Background(), cdmxRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Routes) != 0 {
		t.Fatalf("expected no routes, got %d", len(resp.Routes))
	}
}

func TestSolveFailures(t *testing.T) {
	t.Run("non json ok", func(t *testing.T) {
		s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>hi</html>"))
		})
		_, err := s.Solve(context.Background(), cdmxRequest())
		if err == nil || !strings.Contains(err.Error(), "not valid JSON") {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("non json bad gateway", func(t *testing.T) {
		s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		})
		_, err := s.Solve(context.Background(), cdmxRequest())
		var he *httpStatusError
		if !errors.As(err, &he) || he.Code != http.StatusBadGateway {
			t.Fatalf("err = %v, want httpStatusError 502", err)
		}
		if !strings.Contains(err.Error(), "upstream down") {
			t.Fatalf("error text should carry body: %v", err)
		}
	})

	t.Run("null body", func(t *testing.T) {
		s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("null\n"))
		})
		_, err := s.Solve(context.Background(), cdmxRequest())
		if err == nil || !strings.Contains(err.Error(), "body is null") {
			t.Fatalf("err = %v, want null body error", err)
		}
	})

	t.Run("malformed route", func(t *testing.T) {
		s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rutas":[{"ruta":"CDMX"}]}`))
		})
		if _, err := s.Solve(context.Background(), cdmxRequest()); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		s, err := NewHTTPSolver(url+"/vrp", 0)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Solve(context.Background(), cdmxRequest()); err == nil {
			t.Fatal("expected transport error")
		}
	})

	t.Run("single attempt", func(t *testing.T) {
		hits := 0
		s := newTestSolver(t, func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, _ = s.Solve(context.Background(), cdmxRequest())
		if hits != 1 {
			t.Fatalf("expected exactly one attempt, got %d", hits)
		}
	})
}

func TestNewHTTPSolverValidatesEndpoint(t *testing.T) {
	for _, u := range []string{"", "ftp://x/vrp", "http://", "::bad"} {
		if _, err := NewHTTPSolver(u, 0); err == nil {
			t.Errorf("NewHTTPSolver(%q): expected error", u)
		}
	}
}

func TestCacheKeyIgnoresConstraints(t *testing.T) {
	a := cdmxRequest()
	b := cdmxRequest()
	b.Constraints = []domain.Constraint{{Origin: "QRO", Destination: "SLP"}}

	ka, _ := CacheKey(a)
	kb, _ := CacheKey(b)
	if ka != kb {
		t.Fatalf("keys differ for identical wire payloads: %s vs %s", ka, kb)
	}

	b.MaxLoad = 501
	kc, _ := CacheKey(b)
	if kc == ka {
		t.Fatal("different loads must produce different keys")
	}
}
