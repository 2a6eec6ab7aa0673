// Package pagination implements offset pagination for the content listing
// endpoints: query parsing, offset math, response metadata, and the metrics
// and log fields shared by every paginated route.
package pagination

import (
	"os"
	"strconv"
)

// Config bounds what a caller may request per page.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig is page 1, 20 items, capped at 100. The public site renders
// 20 cards per page, so the defaults match what the frontend asks for.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT and
// PAGINATION_MAX_LIMIT, falling back to DefaultConfig values.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  envInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: envInt("PAGINATION_DEFAULT_LIMIT", 20),
		MaxLimit:     envInt("PAGINATION_MAX_LIMIT", 100),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
