package solver

import (
	"context"
	"fmt"
	"log"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/platform/metrics"
	"vrp-route-viewer/internal/platform/obs"
	"vrp-route-viewer/internal/ports"

	"golang.org/x/sync/singleflight"
)

// CachingSolver wraps another solver with request coalescing and an
// optional response cache.
//
// Identical requests in flight at the same time share one upstream call,
// which keeps running when the caller that started it goes away.
// Only non-empty successful responses are cached; cache errors are logged
// and never fail a solve.
type CachingSolver struct {
	next  ports.Solver
	cache ports.SolveCache
	group singleflight.Group
}

// NewCachingSolver wraps next. cache may be nil to coalesce only.
func NewCachingSolver(next ports.Solver, cache ports.SolveCache) *CachingSolver {
	return &CachingSolver{next: next, cache: cache}
}

func (c *CachingSolver) Solve(ctx context.Context, req domain.SolveRequest) (domain.SolveResponse, error) {
	key, err := CacheKey(req)
	if err != nil {
		return domain.SolveResponse{}, fmt.Errorf("caching solver: cache key: %w", err)
	}

	if c.cache != nil {
		resp, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("req_id=%s solve cache read failed: %v", obs.RequestID(ctx), err)
		} else if ok {
			metrics.SolverCalls.WithLabelValues("cached").Inc()
			return resp, nil
		}
	}

	// The shared call must outlive any single caller; each caller still
	// stops waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		resp, err := c.next.Solve(shared, req)
		if err != nil {
			return domain.SolveResponse{}, err
		}

		if c.cache != nil && len(resp.Routes) > 0 {
			if err := c.cache.Put(shared, key, resp); err != nil {
				log.Printf("req_id=%s solve cache write failed: %v", obs.RequestID(shared), err)
			}
		}
		return resp, nil
	})

	select {
	case <-ctx.Done():
		return domain.SolveResponse{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.SolveResponse{}, res.Err
		}
		return res.Val.(domain.SolveResponse), nil
	}
}
