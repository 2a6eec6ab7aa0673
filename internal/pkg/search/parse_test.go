package search

import (
	"strings"
	"testing"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "single keyword",
			raw:  "water",
			want: []string{"water"},
		},
		{
			name: "multiple keywords with extra whitespace",
			raw:  "  clean   water  well ",
			want: []string{"clean", "water", "well"},
		},
		{
			name: "arabic keywords",
			raw:  "مياه نظيفة",
			want: []string{"مياه", "نظيفة"},
		},
		{
			name:    "empty query",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "too many keywords",
			raw:     "a b c d e f g h i j k",
			wantErr: true,
		},
		{
			name:    "keyword too long",
			raw:     strings.Repeat("x", DefaultMaxKeywordLength+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeywords(tt.raw, DefaultMaxKeywordCount, DefaultMaxKeywordLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKeywords(%q) = %v", tt.raw, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d keywords, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keywords[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseKeywordsLengthBoundary(t *testing.T) {
	// A keyword of exactly the cap parses fine; counted in runes, not bytes.
	exact := strings.Repeat("م", DefaultMaxKeywordLength)
	if _, err := ParseKeywords(exact, DefaultMaxKeywordCount, DefaultMaxKeywordLength); err != nil {
		t.Fatalf("keyword at length cap rejected: %v", err)
	}
}
