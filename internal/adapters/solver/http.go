package solver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Responses larger than this are rejected rather than buffered.
const maxResponseBytes = 8 << 20

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("solver responded %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("solver responded %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

func (s *HTTPSolver) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do performs a single attempt and returns the status code with the
// buffered body. Status handling is left to the caller because the solver
// may answer non-2xx with a JSON document.
func (s *HTTPSolver) do(req *http.Request) (int, []byte, error) {
	resp, err := s.session.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	if len(b) > maxResponseBytes {
		return resp.StatusCode, nil, fmt.Errorf("response body exceeds %d bytes", maxResponseBytes)
	}

	return resp.StatusCode, b, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
