package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime settings of the server.
// Values come from the environment (optionally populated from .env).
type Config struct {
	Port            string
	SolverURL       string
	SolverTimeout   time.Duration
	MapFitMode      string
	LocationsFile   string
	DatabaseURL     string
	RedisURL        string
	SolveCacheTTL   time.Duration
	SolveCoalesce   bool
	SubmitRateRPS   float64
	SubmitRateBurst int
	AllowOrigins    []string
	SessionTTL      time.Duration
	// TrustProxy applies X-Forwarded-For / X-Real-IP to the client address.
	// Leave it off unless a proxy that sets those headers is in front.
	TrustProxy bool
}

const DefaultSolverURL = "https://vrp-backend.onrender.com/vrp"

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            Get("PORT", "8080"),
		SolverURL:       Get("SOLVER_URL", DefaultSolverURL),
		SolverTimeout:   GetDuration("SOLVER_TIMEOUT", 0),
		MapFitMode:      strings.ToLower(Get("MAP_FIT_MODE", "last")),
		LocationsFile:   os.Getenv("LOCATIONS_FILE"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		SolveCacheTTL:   GetDuration("SOLVE_CACHE_TTL", 10*time.Minute),
		SolveCoalesce:   GetBool("SOLVE_COALESCE", false),
		SubmitRateRPS:   GetFloat("SUBMIT_RATE_RPS", 2),
		SubmitRateBurst: GetInt("SUBMIT_RATE_BURST", 5),
		AllowOrigins:    GetSlice("ALLOW_ORIGINS", []string{"*"}),
		SessionTTL:      GetDuration("SESSION_TTL", 30*time.Minute),
		TrustProxy:      GetBool("TRUST_PROXY", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that cannot be defaulted safely.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if strings.TrimSpace(c.SolverURL) == "" {
		return fmt.Errorf("SOLVER_URL is required")
	}
	if c.MapFitMode != "last" && c.MapFitMode != "all" {
		return fmt.Errorf("invalid MAP_FIT_MODE %q (must be last or all)", c.MapFitMode)
	}
	if c.SolverTimeout < 0 {
		return fmt.Errorf("SOLVER_TIMEOUT must be >= 0")
	}
	if c.SubmitRateRPS <= 0 || c.SubmitRateBurst < 1 {
		return fmt.Errorf("SUBMIT_RATE_RPS must be > 0 and SUBMIT_RATE_BURST >= 1")
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func GetBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func GetFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

// GetDuration accepts Go duration strings ("30s") or plain seconds ("30").
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func GetSlice(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
