package auth

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"amal-cms/internal/handler/http/middleware"
	"amal-cms/internal/handler/http/respond"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles token issuance per client IP. Credential stuffing
// against /auth/token is the main brute-force surface of the API, so the
// budget here is far tighter than the general request limits.
type LoginLimiter struct {
	mu       sync.Mutex
	clients  map[string]*loginClient
	limit    rate.Limit
	burst    int
	extract  middleware.IPExtractor
	lastScan time.Time
}

type loginClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter allows attempts per minute with the given burst.
func NewLoginLimiter(attemptsPerMinute float64, burst int) *LoginLimiter {
	return &LoginLimiter{
		clients:  make(map[string]*loginClient),
		limit:    rate.Limit(attemptsPerMinute / 60.0),
		burst:    burst,
		extract:  &middleware.RemoteAddrExtractor{},
		lastScan: time.Now(),
	}
}

// Wrap applies the limiter in front of the login handler. Requests over
// budget are answered 429 without touching the credential check.
func (l *LoginLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extract.ExtractIP(r)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !l.allow(ip) {
			w.Header().Set("Retry-After", "60")
			respond.SafeError(w, http.StatusTooManyRequests,
				errors.New("too many login attempts, retry later"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *LoginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.clients[ip]
	if !ok {
		c = &loginClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	l.evictStale(now)

	return c.limiter.Allow()
}

// evictStale drops clients idle for over an hour. Caller holds the lock.
func (l *LoginLimiter) evictStale(now time.Time) {
	if now.Sub(l.lastScan) < 10*time.Minute {
		return
	}
	l.lastScan = now
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > time.Hour {
			delete(l.clients, ip)
		}
	}
}
