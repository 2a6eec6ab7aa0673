package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params is the page the caller asked for. Page numbers are 1-based.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads page and limit from the query string. Missing
// parameters take the configured defaults; malformed or out-of-range values
// are an error rather than silently clamped, so the frontend notices bad
// links.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Page: cfg.DefaultPage, Limit: cfg.DefaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
