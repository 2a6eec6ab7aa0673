package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"amal-cms/pkg/security/csp"
)

// CSPMiddlewareConfig selects which Content-Security-Policy header each
// response carries. The API serves JSON, so the default is the strict
// policy; PathPolicies lets HTML-serving prefixes (the /metrics exposition
// page, for instance) override it.
type CSPMiddlewareConfig struct {
	Enabled bool

	// DefaultPolicy applies when no PathPolicies prefix matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies. The longest matching
	// prefix wins:
	//
	//	map[string]*csp.CSPBuilder{
	//	    "/metrics": csp.RelaxedPolicy(),
	//	    "/":        csp.StrictPolicy(),
	//	}
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly switches to Content-Security-Policy-Report-Only so a new
	// policy can soak before enforcement.
	ReportOnly bool
}

// CSPMiddleware stamps CSP headers onto responses.
type CSPMiddleware struct {
	config CSPMiddlewareConfig
}

func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	return &CSPMiddleware{config: config}
}

// Middleware applies the selected policy, or passes through untouched when
// disabled or when no policy covers the path.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			policy := m.selectPolicy(r.URL.Path)
			if policy == nil {
				next.ServeHTTP(w, r)
				return
			}
			if m.config.ReportOnly {
				policy = policy.ReportOnly(true)
			}

			value := policy.Build()
			if value == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := policy.HeaderName()
			w.Header().Set(header, value)
			slog.Debug("CSP header applied",
				slog.String("path", r.URL.Path),
				slog.String("header", header))

			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy returns the policy of the longest matching PathPolicies
// prefix, falling back to DefaultPolicy. "/publications/annual-report"
// matches "/publications" before "/".
func (m *CSPMiddleware) selectPolicy(path string) *csp.CSPBuilder {
	longest := ""
	var matched *csp.CSPBuilder
	for prefix, policy := range m.config.PathPolicies {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			matched = policy
		}
	}
	if matched != nil {
		return matched
	}
	return m.config.DefaultPolicy
}
