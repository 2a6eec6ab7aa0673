package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// OriginValidator decides which Origin values receive CORS headers.
type OriginValidator interface {
	IsAllowed(origin string) bool
	GetAllowedOrigins() []string
}

// CORSLogger receives CORS events. The indirection keeps the middleware
// testable without a real logger.
type CORSLogger interface {
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// CORSConfig is the policy the middleware enforces. Credentials are always
// allowed because the admin frontend authenticates with a Bearer token.
type CORSConfig struct {
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // preflight cache, seconds
	Validator      OriginValidator
	Logger         CORSLogger
}

// CORS handles cross-origin requests for the content API. Disallowed
// origins get no CORS headers at all, so the browser blocks the response;
// the request itself still runs. Preflights for allowed origins are answered
// with 204 without reaching the next handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS origin rejected", map[string]interface{}{
						"origin": origin,
						"path":   r.URL.Path,
						"method": r.Method,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo the origin back; a wildcard is incompatible with
			// credentialed requests.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				if config.Logger != nil {
					config.Logger.Debug("CORS preflight", map[string]interface{}{
						"origin":           origin,
						"requested_method": r.Header.Get("Access-Control-Request-Method"),
					})
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WhitelistValidator matches origins against a fixed list, case-insensitive
// and ignoring trailing slashes.
type WhitelistValidator struct {
	allowedOrigins []string
}

func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = normalizeOrigin(origin)
		if origin != "" {
			normalized = append(normalized, origin)
		}
	}
	return &WhitelistValidator{allowedOrigins: normalized}
}

func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// GetAllowedOrigins returns a copy so callers cannot mutate the whitelist.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.allowedOrigins))
	copy(out, v.allowedOrigins)
	return out
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// LoadCORSConfig builds the policy from environment variables:
//
//	CORS_ALLOWED_ORIGINS  comma-separated origins, required
//	CORS_ALLOWED_METHODS  default GET,POST,PUT,DELETE,PATCH,OPTIONS
//	CORS_ALLOWED_HEADERS  default Content-Type,Authorization,X-Request-ID,X-Trace-ID
//	CORS_MAX_AGE          default 86400
//
// An unset origin list is a startup error; the admin frontend must be named
// explicitly rather than defaulting open. The Logger field is left nil for
// the caller to inject.
func LoadCORSConfig() (*CORSConfig, error) {
	origins, err := loadOrigins()
	if err != nil {
		return nil, err
	}
	methods, err := loadMethods()
	if err != nil {
		return nil, err
	}
	maxAge, err := loadMaxAge()
	if err != nil {
		return nil, err
	}

	headers := splitEnvList("CORS_ALLOWED_HEADERS")
	if len(headers) == 0 {
		headers = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Trace-ID"}
	}

	return &CORSConfig{
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         maxAge,
		Validator:      NewWhitelistValidator(origins),
	}, nil
}

func loadOrigins() ([]string, error) {
	parts := splitEnvList("CORS_ALLOWED_ORIGINS")
	if len(parts) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS is required")
	}
	for _, origin := range parts {
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid origin %q: want http(s)://host[:port]", origin)
		}
		if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
			return nil, fmt.Errorf("origin %q must not carry a path, query, or fragment", origin)
		}
	}
	return parts, nil
}

func loadMethods() ([]string, error) {
	parts := splitEnvList("CORS_ALLOWED_METHODS")
	if len(parts) == 0 {
		return []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}, nil
	}
	valid := map[string]bool{
		"GET": true, "POST": true, "PUT": true,
		"DELETE": true, "PATCH": true, "OPTIONS": true,
	}
	methods := make([]string, 0, len(parts))
	for _, m := range parts {
		m = strings.ToUpper(m)
		if !valid[m] {
			return nil, fmt.Errorf("invalid HTTP method %q in CORS_ALLOWED_METHODS", m)
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func loadMaxAge() (int, error) {
	raw := strings.TrimSpace(os.Getenv("CORS_MAX_AGE"))
	if raw == "" {
		return 86400, nil
	}
	maxAge, err := strconv.Atoi(raw)
	if err != nil || maxAge < 0 {
		return 0, fmt.Errorf("CORS_MAX_AGE must be a non-negative integer, got %q", raw)
	}
	return maxAge, nil
}

func splitEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SlogAdapter bridges CORSLogger onto a slog.Logger.
type SlogAdapter struct {
	Logger *slog.Logger
}

func (a *SlogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.Logger.Warn(msg, slogArgs(fields)...)
}

func (a *SlogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.Logger.Debug(msg, slogArgs(fields)...)
}

func slogArgs(fields map[string]interface{}) []any {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return args
}

// NoOpLogger discards everything; used in tests.
type NoOpLogger struct{}

func (l *NoOpLogger) Warn(string, map[string]interface{})  {}
func (l *NoOpLogger) Debug(string, map[string]interface{}) {}
