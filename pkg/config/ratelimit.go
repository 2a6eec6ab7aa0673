package config

import (
	"log/slog"
	"time"
)

// RateLimitConfig drives the per-IP limiter wrapped around the whole API.
// Invalid values log a warning and fall back to defaults rather than failing
// startup; an API with a slightly wrong limit beats no API.
type RateLimitConfig struct {
	// Enabled turns the limiter off entirely. Leave it on outside of load
	// tests.
	Enabled bool

	// Limit is the number of requests each client IP may make per Window.
	Limit int

	// Window is the sliding window the limit applies over.
	Window time.Duration
}

// LoadRateLimitConfig reads RATELIMIT_ENABLED (default true),
// RATELIMIT_LIMIT (default 300) and RATELIMIT_WINDOW (default 1m).
func LoadRateLimitConfig() (*RateLimitConfig, error) {
	cfg := &RateLimitConfig{
		Enabled: GetEnvBool("RATELIMIT_ENABLED", true),
	}

	limit := GetEnvInt("RATELIMIT_LIMIT", 300)
	if limit <= 0 {
		slog.Warn("invalid RATELIMIT_LIMIT, using default",
			slog.Int("value", limit),
			slog.Int("default", 300))
		limit = 300
	}
	cfg.Limit = limit

	window := GetEnvDuration("RATELIMIT_WINDOW", time.Minute)
	if err := ValidatePositiveDuration(window); err != nil {
		slog.Warn("invalid RATELIMIT_WINDOW, using default",
			slog.String("value", window.String()),
			slog.String("default", "1m"),
			slog.String("error", err.Error()))
		window = time.Minute
	}
	cfg.Window = window

	return cfg, nil
}

// CSPConfig toggles the Content-Security-Policy middleware.
type CSPConfig struct {
	Enabled bool

	// ReportOnly delivers the policy without enforcing it, for soaking a
	// new policy against real traffic.
	ReportOnly bool
}

// LoadCSPConfig reads CSP_ENABLED (default true) and CSP_REPORT_ONLY
// (default false).
func LoadCSPConfig() (*CSPConfig, error) {
	return &CSPConfig{
		Enabled:    GetEnvBool("CSP_ENABLED", true),
		ReportOnly: GetEnvBool("CSP_REPORT_ONLY", false),
	}, nil
}
