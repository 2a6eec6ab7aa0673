package http

import (
	"context"
	"log/slog"
	"time"

	"amal-cms/internal/handler/http/middleware"
	"amal-cms/pkg/config"
)

// DefaultCleanupInterval applies when RATELIMIT_CLEANUP_INTERVAL is unset.
const DefaultCleanupInterval = 5 * time.Minute

// StartRateLimitCleanup periodically evicts idle client state from the rate
// limiter so the IP map does not grow without bound. It blocks until ctx is
// cancelled, so run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter *middleware.RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			limiter.CleanupExpired()
			slog.Debug("rate limit cleanup completed",
				slog.Int("active_ips", limiter.ActiveIPs()))
		}
	}
}

// LoadCleanupInterval reads RATELIMIT_CLEANUP_INTERVAL, defaulting to 5m.
func LoadCleanupInterval() time.Duration {
	return config.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval)
}
