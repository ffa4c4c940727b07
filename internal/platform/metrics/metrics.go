package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SolverCalls counts remote solver calls by outcome (ok, empty, error, cached).
	SolverCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_solver_calls_total", Help: "Remote solver calls by outcome."},
		[]string{"outcome"},
	)
	SolverLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "vrp_solver_latency_seconds", Help: "Remote solver latency in seconds.", Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}},
	)

	// Submissions counts form submissions by final view state.
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_submissions_total", Help: "Form submissions by resulting state."},
		[]string{"state", "stale"},
	)
)

var regOnce sync.Once

// Register adds every collector to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolverCalls)
		Registry.MustRegister(SolverLatency)
		Registry.MustRegister(Submissions)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
