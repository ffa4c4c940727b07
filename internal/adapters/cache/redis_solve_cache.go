package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisSolveCache is a Redis-backed cache of solver responses keyed by
// request payload hash. Entries expire after TTL.
type RedisSolveCache struct {
	RDB *redis.Client
	TTL time.Duration
}

type cachedRoute struct {
	Stops         []string `json:"stops"`
	TotalWeight   float64  `json:"total_weight"`
	Cost          float64  `json:"cost"`
	EstimatedTime string   `json:"estimated_time"`
}

type cachedResponse struct {
	Routes []cachedRoute `json:"routes"`
}

func NewRedisSolveCache(rdb *redis.Client, ttl time.Duration) *RedisSolveCache {
	return &RedisSolveCache{RDB: rdb, TTL: ttl}
}

// NewRedisSolveCacheFromURL parses a redis:// URL and verifies the
// connection.
func NewRedisSolveCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisSolveCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("solve cache: parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("solve cache: ping redis: %w", err)
	}

	return NewRedisSolveCache(rdb, ttl), nil
}

// Fetch a cached response.
func (c *RedisSolveCache) Get(ctx context.Context, key string) (_ domain.SolveResponse, _ bool, err error) {
	defer obs.Time(ctx, "solve.cache.Get")(&err)

	if c.RDB == nil {
		return domain.SolveResponse{}, false, errors.New("solve cache: redis client is nil")
	}

	if key == "" {
		return domain.SolveResponse{}, false, errors.New("get solve cache: key must not be empty")
	}

	b, err := c.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SolveResponse{}, false, nil
	}
	if err != nil {
		return domain.SolveResponse{}, false, fmt.Errorf("get solve cache: %w", err)
	}

	var cached cachedResponse
	if err := json.Unmarshal(b, &cached); err != nil {
		return domain.SolveResponse{}, false, fmt.Errorf("get solve cache: decode entry %q: %w", key, err)
	}

	routes := make([]domain.Route, 0, len(cached.Routes))
	for _, r := range cached.Routes {
		routes = append(routes, domain.Route{
			Stops:         r.Stops,
			TotalWeight:   r.TotalWeight,
			Cost:          r.Cost,
			EstimatedTime: r.EstimatedTime,
		})
	}

	return domain.SolveResponse{Routes: routes}, true, nil
}

// Store a response with the configured TTL.
func (c *RedisSolveCache) Put(ctx context.Context, key string, resp domain.SolveResponse) error {
	if c.RDB == nil {
		return errors.New("solve cache: redis client is nil")
	}

	if key == "" {
		return errors.New("insert solve cache: key must not be empty")
	}

	cached := cachedResponse{Routes: make([]cachedRoute, 0, len(resp.Routes))}
	for _, r := range resp.Routes {
		cached.Routes = append(cached.Routes, cachedRoute{
			Stops:         r.Stops,
			TotalWeight:   r.TotalWeight,
			Cost:          r.Cost,
			EstimatedTime: r.EstimatedTime,
		})
	}

	b, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("insert solve cache: encode: %w", err)
	}

	if err := c.RDB.Set(ctx, key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert solve cache key=%q: %w", key, err)
	}

	return nil
}

// Close releases the underlying client.
func (c *RedisSolveCache) Close() error {
	if c.RDB == nil {
		return nil
	}
	return c.RDB.Close()
}
