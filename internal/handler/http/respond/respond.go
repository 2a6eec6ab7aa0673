// Package respond writes JSON responses for the content API. Error helpers
// decide what a client may see: validation messages pass through, anything
// that could describe the backend is replaced with a generic message and
// logged server-side.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON body with the given status code. Encoding failures
// are logged; the status line is already on the wire by then.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes err verbatim as {"error": ...}. Only for messages the caller
// already knows are client-safe; otherwise use SafeError.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// Substrings that mark a message as written for the client. Validation
// errors in this codebase phrase themselves with these.
var safeMessageMarkers = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
}

func clientSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range safeMessageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// SafeError writes err if its message reads like a validation error, and a
// generic "internal server error" otherwise. 5xx responses never expose the
// message regardless of how it reads; the real error is logged after
// credential scrubbing. A nil err writes nothing.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && clientSafe(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
