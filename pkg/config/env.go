package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment readers with warn-and-default semantics: a typo in an env var
// should surface in the logs, not crash the server or silently change
// behavior to something surprising.

// GetEnvString returns the variable's value, or fallback when unset.
func GetEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt parses the variable as an integer.
func GetEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", fallback),
			slog.String("error", err.Error()))
		return fallback
	}
	return v
}

// GetEnvBool accepts the strconv.ParseBool spellings (1/t/true, 0/f/false).
func GetEnvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Bool("default", fallback))
		return fallback
	}
	return v
}

// GetEnvDuration parses the variable with time.ParseDuration ("30s", "5m").
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.String("default", fallback.String()),
			slog.String("error", err.Error()))
		return fallback
	}
	return v
}

// GetEnvStringList splits the variable on commas, trimming whitespace and
// dropping empty entries. An effectively empty list falls back.
func GetEnvStringList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
