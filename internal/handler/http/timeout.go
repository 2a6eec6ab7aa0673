package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout caps how long a single request may run. A request that exceeds d
// gets 504 and its context is cancelled so repository queries stop too.
//
// The handler keeps running in its goroutine until it notices the
// cancellation; the shared writer makes sure only one side produces output.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &deadlineWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				tw.mu.Lock()
				tw.expired = true
				if !tw.wrote {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
				tw.mu.Unlock()
			}
		})
	}
}

// deadlineWriter drops handler output once the deadline response went out.
type deadlineWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	expired bool
	wrote   bool
}

func (w *deadlineWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.expired || w.wrote {
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *deadlineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !w.wrote {
		w.wrote = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(p)
}
