package solver

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/platform/metrics"
	"vrp-route-viewer/internal/platform/obs"
)

// HTTPSolver implements ports.Solver against the remote VRP service.
//
// Each Solve is exactly one POST: no retry, no backoff. The call is bounded
// only by the caller's context and the optional client timeout.
// The solver is safe for concurrent use.
type HTTPSolver struct {
	session  *http.Client
	endpoint string
}

// Wire request: {"almacen": [lat, lng], "max_carga": n}.
type solveRequestBody struct {
	Almacen  []float64 `json:"almacen"`
	MaxCarga int       `json:"max_carga"`
}

// Wire response. Rutas is kept raw so that a missing or non-array value
// can be told apart from a malformed one.
type solveResponseBody struct {
	Rutas json.RawMessage `json:"rutas"`
}

type wireRoute struct {
	Ruta      []string        `json:"ruta"`
	PesoTotal float64         `json:"peso_total"`
	Costo     float64         `json:"costo"`
	Tiempo    json.RawMessage `json:"tiempo"`
}

// NewHTTPSolver returns a solver posting to endpoint. A zero timeout
// leaves the request unbounded apart from the caller's context.
func NewHTTPSolver(endpoint string, timeout time.Duration) (*HTTPSolver, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("new solver: parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("new solver: endpoint %q must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("new solver: endpoint %q has no host", endpoint)
	}

	return &HTTPSolver{
		session:  &http.Client{Timeout: timeout},
		endpoint: u.String(),
	}, nil
}

// EncodeRequest renders the wire payload for req. Constraints are not
// part of the payload.
func EncodeRequest(req domain.SolveRequest) ([]byte, error) {
	return json.Marshal(solveRequestBody{
		Almacen:  req.Depot.CoordsToList(),
		MaxCarga: req.MaxLoad,
	})
}

// CacheKey identifies requests that produce the same wire payload.
func CacheKey(req domain.SolveRequest) (string, error) {
	b, err := EncodeRequest(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "vrp:solve:" + hex.EncodeToString(sum[:]), nil
}

func (s *HTTPSolver) Solve(ctx context.Context, req domain.SolveRequest) (_ domain.SolveResponse, err error) {
	defer obs.Time(ctx, "solver.Solve")(&err)

	if req.MaxLoad <= 0 {
		return domain.SolveResponse{}, errors.New("solve: max load must be positive")
	}

	if n := len(req.Constraints); n > 0 {
		log.Printf("req_id=%s solver: constraints are not forwarded count=%d", obs.RequestID(ctx), n)
	}

	payload, err := EncodeRequest(req)
	if err != nil {
		return domain.SolveResponse{}, fmt.Errorf("marshal solve request: %w", err)
	}

	httpReq, err := s.newRequest(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.SolveResponse{}, err
	}

	start := time.Now()
	status, body, err := s.do(httpReq)
	metrics.SolverLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SolverCalls.WithLabelValues("error").Inc()
		return domain.SolveResponse{}, err
	}

	resp, err := decodeResponse(status, body)
	if err != nil {
		metrics.SolverCalls.WithLabelValues("error").Inc()
		return domain.SolveResponse{}, err
	}

	if len(resp.Routes) == 0 {
		metrics.SolverCalls.WithLabelValues("empty").Inc()
	} else {
		metrics.SolverCalls.WithLabelValues("ok").Inc()
	}

	return resp, nil
}

// decodeResponse parses the body whatever the status code. A body that
// is not JSON, or is JSON null, is a failure; any other JSON document
// without a usable "rutas" array is an empty answer.
func decodeResponse(status int, body []byte) (domain.SolveResponse, error) {
	if !json.Valid(body) {
		if status < 200 || status > 299 {
			return domain.SolveResponse{}, &httpStatusError{Code: status, Body: truncate(string(body), 200)}
		}
		return domain.SolveResponse{}, fmt.Errorf("decode solve response: body is not valid JSON: %q", truncate(string(body), 80))
	}

	// A null document is a decode failure, not an empty answer.
	if string(bytes.TrimSpace(body)) == "null" {
		return domain.SolveResponse{}, errors.New("decode solve response: body is null")
	}

	var decoded solveResponseBody
	if err := json.Unmarshal(body, &decoded); err != nil {
		// Valid JSON that is not an object carries no routes.
		return domain.SolveResponse{}, nil
	}

	raw := bytes.TrimSpace(decoded.Rutas)
	if len(raw) == 0 || raw[0] != '[' {
		return domain.SolveResponse{}, nil
	}

	var wire []wireRoute
	if err := json.Unmarshal(raw, &wire); err != nil {
		return domain.SolveResponse{}, fmt.Errorf("decode solve response routes: %w", err)
	}

	routes := make([]domain.Route, 0, len(wire))
	for i, w := range wire {
		if w.Ruta == nil {
			return domain.SolveResponse{}, fmt.Errorf("decode solve response: route %d has no stops", i+1)
		}
		routes = append(routes, domain.Route{
			Stops:         w.Ruta,
			TotalWeight:   w.PesoTotal,
			Cost:          w.Costo,
			EstimatedTime: displayText(w.Tiempo),
		})
	}

	return domain.SolveResponse{Routes: routes}, nil
}

// displayText renders an opaque JSON value the way a template literal
// would: strings unquoted, anything else verbatim.
func displayText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
