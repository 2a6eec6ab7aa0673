package http

import (
	"net/http"
)

// Size ceilings on raw request inputs. Bearer tokens stay well under 1KB and
// slugs keep content URLs short, so anything near these limits is abuse.
const (
	maxAuthHeaderLen = 8192
	maxPathLen       = 2048
	maxBodyBytes     = 10 << 20
)

// InputValidation rejects oversized requests before any routing or handler
// work happens: Authorization header, URL path, and request body each get a
// hard ceiling.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderLen {
				writeValidationError(w, http.StatusBadRequest, "authorization header too large")
				return
			}
			if len(r.URL.Path) > maxPathLen {
				writeValidationError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func writeValidationError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
