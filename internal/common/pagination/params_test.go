package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"amal-cms/internal/common/pagination"
)

var testConfig = pagination.Config{
	DefaultPage:  1,
	DefaultLimit: 20,
	MaxLimit:     100,
}

func parseQuery(t *testing.T, query string) (pagination.Params, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/publications?"+query, nil)
	return pagination.ParseQueryParams(req, testConfig)
}

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"both parameters", "page=2&limit=30", pagination.Params{Page: 2, Limit: 30}},
		{"no parameters take defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"page only", "page=3", pagination.Params{Page: 3, Limit: 20}},
		{"limit only", "limit=50", pagination.Params{Page: 1, Limit: 50}},
		{"smallest valid page", "page=1&limit=1", pagination.Params{Page: 1, Limit: 1}},
		{"limit at the cap", "limit=100", pagination.Params{Page: 1, Limit: 100}},
		{"deep page is fine", "page=999", pagination.Params{Page: 999, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuery(t, tt.query)
			if err != nil {
				t.Fatalf("ParseQueryParams(%q) error = %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("ParseQueryParams(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseQueryParamsRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		wantMsg string
	}{
		{"zero page", "page=0", "page must be a positive integer"},
		{"negative page", "page=-1", "page must be a positive integer"},
		{"non-numeric page", "page=two", "page must be a positive integer"},
		{"zero limit", "limit=0", "limit must be between 1 and 100"},
		{"negative limit", "limit=-10", "limit must be between 1 and 100"},
		{"limit over the cap", "limit=101", "limit must be between 1 and 100"},
		{"non-numeric limit", "limit=all", "limit must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseQuery(t, tt.query)
			if err == nil {
				t.Fatalf("ParseQueryParams(%q) expected an error", tt.query)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}
