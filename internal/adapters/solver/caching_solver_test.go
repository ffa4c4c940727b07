package solver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"vrp-route-viewer/internal/domain"
)

type memoryCache struct {
	mu      sync.Mutex
	m       map[string]domain.SolveResponse
	getErr  error
	putErr  error
	putKeys []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{m: map[string]domain.SolveResponse{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (domain.SolveResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return domain.SolveResponse{}, false, c.getErr
	}
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memoryCache) Put(_ context.Context, key string, resp domain.SolveResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putKeys = append(c.putKeys, key)
	if c.putErr != nil {
		return c.putErr
	}
	c.m[key] = resp
	return nil
}

var oneRoute = []domain.Route{{Stops: []string{"CDMX", "QRO"}, TotalWeight: 120, Cost: 45.5, EstimatedTime: "2h"}}

func TestCachingSolverServesFromCache(t *testing.T) {
	mock := NewMockSolver(oneRoute, nil)
	cache := newMemoryCache()
	s := NewCachingSolver(mock, cache)

	for i := 0; i < 3; i++ {
		resp, err := s.Solve(context.Background(), cdmxRequest())
		if err != nil {
			t.Fatalf("solve %d: %v", i, err)
		}
		if len(resp.Routes) != 1 {
			t.Fatalf("solve %d: expected 1 route", i)
		}
	}

	if n := len(mock.Calls()); n != 1 {
		t.Fatalf("upstream calls = %d, want 1", n)
	}
}

func TestCachingSolverDoesNotCacheEmptyOrErrors(t *testing.T) {
	cache := newMemoryCache()

	empty := NewMockSolver(nil, nil)
	if _, err := NewCachingSolver(empty, cache).Solve(context.Background(), cdmxRequest()); err != nil {
		t.Fatal(err)
	}

	failing := NewMockSolver(nil, errors.New("timeout"))
	if _, err := NewCachingSolver(failing, cache).Solve(context.Background(), cdmxRequest()); err == nil {
		t.Fatal("expected upstream error")
	}

	if len(cache.putKeys) != 0 {
		t.Fatalf("nothing should be cached, got %v", cache.putKeys)
	}
}

func TestCachingSolverIgnoresCacheFailures(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("redis down")
	cache.putErr = errors.New("redis down")

	mock := NewMockSolver(oneRoute, nil)
	resp, err := NewCachingSolver(mock, cache).Solve(context.Background(), cdmxRequest())
	if err != nil {
		t.Fatalf("cache failures must not fail a solve: %v", err)
	}
	if len(resp.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(resp.Routes))
	}
}

func TestCachingSolverCoalescesConcurrentRequests(t *testing.T) {
	mock := NewMockSolver(oneRoute, nil)
	mock.Gate = make(chan struct{})
	s := NewCachingSolver(mock, nil)

	const n = 4
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Solve(context.Background(), cdmxRequest())
			errs <- err
		}()
	}

	deadline := time.Now().Add(time.Second)
	for len(mock.Calls()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// Let the other callers join the in-flight call before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(mock.Gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := len(mock.Calls()); got < 1 || got >= n {
		t.Fatalf("upstream calls = %d, want coalescing below %d", got, n)
	}
}

func TestCachingSolverSharedCallSurvivesCancelledCaller(t *testing.T) {
	mock := NewMockSolver(oneRoute, nil)
	mock.Gate = make(chan struct{})
	s := NewCachingSolver(mock, nil)

	firstCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Solve(firstCtx, cdmxRequest())
		firstErr <- err
	}()

	deadline := time.Now().Add(time.Second)
	for len(mock.Calls()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first caller never reached upstream")
		}
		time.Sleep(5 * time.Millisecond)
	}

	type result struct {
		resp domain.SolveResponse
		err  error
	}
	second := make(chan result, 1)
	go func() {
		resp, err := s.Solve(context.Background(), cdmxRequest())
		second <- result{resp, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller err = %v, want context.Canceled", err)
	}

	close(mock.Gate)
	got := <-second
	if got.err != nil {
		t.Fatalf("second caller err = %v, want success", got.err)
	}
	if len(got.resp.Routes) != 1 {
		t.Fatalf("second caller routes = %d, want 1", len(got.resp.Routes))
	}
	if n := len(mock.Calls()); n != 1 {
		t.Fatalf("upstream calls = %d, want 1", n)
	}
}
