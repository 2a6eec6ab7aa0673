package pagination_test

import (
	"testing"

	"amal-cms/internal/common/pagination"
)

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  pagination.Params
		wantErr bool
	}{
		{"valid", pagination.Params{Page: 1, Limit: 20}, false},
		{"limit at the cap", pagination.Params{Page: 5, Limit: 100}, false},
		{"zero page", pagination.Params{Page: 0, Limit: 20}, true},
		{"zero limit", pagination.Params{Page: 1, Limit: 0}, true},
		{"limit above the cap", pagination.Params{Page: 1, Limit: 101}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate(testConfig)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.params, err, tt.wantErr)
			}
		})
	}
}

func TestParamsWithDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params pagination.Params
		want   pagination.Params
	}{
		{"zero value takes defaults", pagination.Params{}, pagination.Params{Page: 1, Limit: 20}},
		{"negative page resets", pagination.Params{Page: -3, Limit: 10}, pagination.Params{Page: 1, Limit: 10}},
		{"oversized limit clamps", pagination.Params{Page: 2, Limit: 500}, pagination.Params{Page: 2, Limit: 100}},
		{"valid values pass through", pagination.Params{Page: 4, Limit: 25}, pagination.Params{Page: 4, Limit: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.WithDefaults(testConfig); got != tt.want {
				t.Errorf("WithDefaults(%+v) = %+v, want %+v", tt.params, got, tt.want)
			}
		})
	}
}
