package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"vrp-route-viewer/internal/adapters/cache"
	"vrp-route-viewer/internal/adapters/locations"
	"vrp-route-viewer/internal/adapters/repositories"
	"vrp-route-viewer/internal/adapters/solver"
	"vrp-route-viewer/internal/api"
	"vrp-route-viewer/internal/config"
	"vrp-route-viewer/internal/mapview"
	"vrp-route-viewer/internal/platform/db"
	"vrp-route-viewer/internal/platform/metrics"
	"vrp-route-viewer/internal/ports"
	"vrp-route-viewer/internal/session"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (registry source, HTTP solver, Redis cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	registry, err := loadRegistry(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Location registry ready locations=%d", len(registry.List()))

	// Redis and coalescing are opt-in; by default every submission is one POST.
	var solveCache ports.SolveCache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisSolveCacheFromURL(ctx, cfg.RedisURL, cfg.SolveCacheTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		solveCache = rc
		log.Printf("Solve cache enabled ttl=%s", cfg.SolveCacheTTL)
	}

	vrpSolver, err := solver.New(cfg.SolverURL, cfg.SolverTimeout, solveCache, cfg.SolveCoalesce)
	if err != nil {
		log.Fatal(err)
	}

	fit, err := mapview.ParseFitMode(cfg.MapFitMode)
	if err != nil {
		log.Fatal(err)
	}

	sessions := session.NewStore(registry, fit, cfg.SessionTTL)
	sessions.StartJanitor(ctx, time.Minute)

	router := api.NewRouter(api.Options{
		Registry:        registry,
		Solver:          vrpSolver,
		Sessions:        sessions,
		SessionTTL:      cfg.SessionTTL,
		AllowOrigins:    cfg.AllowOrigins,
		SubmitRateLimit: rate.Limit(cfg.SubmitRateRPS),
		SubmitBurst:     cfg.SubmitRateBurst,
		TrustProxy:      cfg.TrustProxy,
	})

	// The solver host may cold-start, so writes get a long timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s solver=%s fit=%s coalesce=%t", cfg.Port, cfg.SolverURL, fit, cfg.SolveCoalesce || solveCache != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// loadRegistry picks the location source: a YAML file, then Postgres,
// then the built-in table.
func loadRegistry(ctx context.Context, cfg *config.Config) (*locations.StaticRegistry, error) {
	switch {
	case cfg.LocationsFile != "":
		return locations.LoadYAMLFile(cfg.LocationsFile)

	case cfg.DatabaseURL != "":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		defer conn.Close()

		return locations.LoadFromRepository(ctx, repositories.NewPostgresLocationRepository(conn))

	default:
		return locations.MustDefault(), nil
	}
}
