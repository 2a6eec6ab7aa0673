package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rateLimitDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "amal_ratelimit_decisions_total",
		Help: "Rate limit decisions by outcome (allowed or limited).",
	},
	[]string{"outcome"},
)

// RateLimiter enforces a per-client-IP sliding window over all API routes.
// The client IP comes from the configured IPExtractor, so deployments behind
// a trusted proxy count real clients instead of the proxy address.
type RateLimiter struct {
	limit     int
	window    time.Duration
	extractor IPExtractor

	// now is swappable so tests can move the window without sleeping.
	now func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

// NewRateLimiter returns a limiter allowing limit requests per window for
// each client IP.
func NewRateLimiter(limit int, window time.Duration, extractor IPExtractor) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		extractor: extractor,
		now:       time.Now,
		clients:   make(map[string][]time.Time),
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After hint.
// When IP extraction fails the raw RemoteAddr is used rather than letting
// the request through uncounted.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.extractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter falling back to RemoteAddr",
				slog.String("remote_addr", r.RemoteAddr),
				slog.Any("error", err))
			ip = r.RemoteAddr
		}

		if !rl.allow(ip) {
			rateLimitDecisions.WithLabelValues("limited").Inc()
			slog.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
				slog.Int("limit", rl.limit))
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		rateLimitDecisions.WithLabelValues("allowed").Inc()
		next.ServeHTTP(w, r)
	})
}

// allow prunes timestamps that fell out of the window, then admits the
// request if the client is still under the limit.
func (rl *RateLimiter) allow(ip string) bool {
	now := rl.now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	hits := rl.clients[ip]
	kept := hits[:0]
	for _, ts := range hits {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= rl.limit {
		rl.clients[ip] = kept
		return false
	}
	rl.clients[ip] = append(kept, now)
	return true
}

// ActiveIPs reports how many client IPs currently hold window state. Exposed
// for the health endpoint.
func (rl *RateLimiter) ActiveIPs() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// CleanupExpired drops clients whose every timestamp fell out of the window.
// Run it periodically or the map grows with one entry per IP ever seen.
func (rl *RateLimiter) CleanupExpired() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, hits := range rl.clients {
		live := false
		for _, ts := range hits {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(rl.clients, ip)
		}
	}
}
