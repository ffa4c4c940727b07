package api

import (
	"net/http"
	"time"
	"vrp-route-viewer/internal/api/handlers"
	"vrp-route-viewer/internal/platform/metrics"
	"vrp-route-viewer/internal/ports"
	"vrp-route-viewer/internal/services"
	"vrp-route-viewer/internal/session"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Options carries the dependencies and tunables of the HTTP surface.
type Options struct {
	Registry   ports.LocationRegistry
	Solver     ports.Solver
	Sessions   *session.Store
	SessionTTL time.Duration

	AllowOrigins    []string
	SubmitRateLimit rate.Limit
	SubmitBurst     int
	// TrustProxy rewrites the client address from X-Forwarded-For /
	// X-Real-IP. Off, the rate limiter keys on the TCP peer.
	TrustProxy bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Registry: opts.Registry}
	pageHandler := &handlers.PageHandler{Registry: opts.Registry}
	locHandler := &handlers.LocationHandler{Registry: opts.Registry}
	submitHandler := &handlers.SubmitHandler{
		Submitter:  &services.Submitter{Registry: opts.Registry, Solver: opts.Solver},
		Sessions:   opts.Sessions,
		SessionTTL: opts.SessionTTL,
	}
	stateHandler := &handlers.StateHandler{Sessions: opts.Sessions, SessionTTL: opts.SessionTTL}

	limiter := newClientLimiter(opts.SubmitRateLimit, opts.SubmitBurst)

	mux.HandleFunc("/", pageHandler.Index)
	mux.Handle("/static/", handlers.Static())
	mux.HandleFunc("/health", healthHandler.Get)
	mux.HandleFunc("/locations", locHandler.List)
	mux.Handle("/submit", limiter.middleware(http.HandlerFunc(submitHandler.Submit)))
	mux.HandleFunc("/state", stateHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	var h http.Handler = mux
	h = metricsMiddleware(h)
	h = loggingMiddleware(h)
	h = cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
	h = chimiddleware.Recoverer(h)
	if opts.TrustProxy {
		h = chimiddleware.RealIP(h)
	}
	h = chimiddleware.RequestID(h)

	return h
}
