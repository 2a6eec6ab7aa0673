package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"amal-cms/internal/handler/http/middleware"
	"amal-cms/pkg/security/csp"
)

// chainFor builds the middleware slice the way the server wires it: rate
// limiting outermost, then CSP, around a plain JSON handler.
func chainFor(limiter *middleware.RateLimiter, cspMW *middleware.CSPMiddleware) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	chain := http.Handler(inner)
	if cspMW != nil {
		chain = cspMW.Middleware()(chain)
	}
	if limiter != nil {
		chain = limiter.Middleware(chain)
	}
	return chain
}

func TestRateLimitedChain(t *testing.T) {
	limiter := middleware.NewRateLimiter(3, time.Minute, &middleware.RemoteAddrExtractor{})
	cspMW := middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.StrictPolicy(),
	})
	handler := chainFor(limiter, cspMW)

	doGet := func(remoteAddr, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			rec := doGet("203.0.113.1:12345", "/programs")
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
			}
			if got := rec.Header().Get("Content-Security-Policy"); got == "" {
				t.Fatalf("request %d: missing Content-Security-Policy header", i+1)
			}
		}

		rec := doGet("203.0.113.1:12345", "/programs")
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
		}
		if got := rec.Header().Get("Retry-After"); got != "60" {
			t.Errorf("Retry-After = %q, want %q", got, "60")
		}
	})

	t.Run("another client is unaffected", func(t *testing.T) {
		rec := doGet("203.0.113.2:9000", "/publications")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestChainWithoutLimiter(t *testing.T) {
	handler := chainFor(nil, middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.StrictPolicy(),
	}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/faqs", nil)
		req.RemoteAddr = "203.0.113.3:443"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

func TestStartRateLimitCleanupStopsOnCancel(t *testing.T) {
	limiter := middleware.NewRateLimiter(5, 10*time.Millisecond, &middleware.RemoteAddrExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.RemoteAddr = "203.0.113.4:1234"
	rec := httptest.NewRecorder()
	limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)
	if got := limiter.ActiveIPs(); got != 1 {
		t.Fatalf("ActiveIPs() = %d, want 1", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		StartRateLimitCleanup(ctx, limiter, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for limiter.ActiveIPs() != 0 {
		select {
		case <-deadline:
			t.Fatal("cleanup never evicted the idle client")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not stop on context cancel")
	}
}
