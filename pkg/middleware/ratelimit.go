package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/time/rate"
)

// RateConfig holds token-bucket limits applied across all requests to a module.
type RateConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// RateEnv maps rate config fields to environment variable names for override injection.
type RateEnv struct {
	Enabled           string
	RequestsPerSecond string
	Burst             string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RateConfig) Finalize(env *RateEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if c.Burst <= 0 {
		return fmt.Errorf("burst must be positive")
	}
	return nil
}

// Merge overwrites fields from overlay. Enabled always applies; numeric
// fields only apply when non-zero.
func (c *RateConfig) Merge(overlay *RateConfig) {
	c.Enabled = overlay.Enabled
	if overlay.RequestsPerSecond != 0 {
		c.RequestsPerSecond = overlay.RequestsPerSecond
	}
	if overlay.Burst != 0 {
		c.Burst = overlay.Burst
	}
}

func (c *RateConfig) loadDefaults() {
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = 100
	}
	if c.Burst == 0 {
		c.Burst = 200
	}
}

func (c *RateConfig) loadEnv(env *RateEnv) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.RequestsPerSecond != "" {
		if v := os.Getenv(env.RequestsPerSecond); v != "" {
			if rps, err := strconv.ParseFloat(v, 64); err == nil {
				c.RequestsPerSecond = rps
			}
		}
	}
	if env.Burst != "" {
		if v := os.Getenv(env.Burst); v != "" {
			if burst, err := strconv.Atoi(v); err == nil {
				c.Burst = burst
			}
		}
	}
}

// RateLimit returns middleware that rejects requests with 429 once the
// token bucket is exhausted. Passes through when disabled.
func RateLimit(cfg *RateConfig) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
		})
	}
}
