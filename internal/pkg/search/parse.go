package search

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxKeywordCount caps how many keywords a single search accepts.
	DefaultMaxKeywordCount = 10

	// DefaultMaxKeywordLength caps the length of a single keyword in runes.
	// Long enough for Arabic phrases, short enough to keep LIKE patterns sane.
	DefaultMaxKeywordLength = 100
)

// ParseKeywords splits a raw query into search keywords.
// Keywords are separated by whitespace and combined with AND semantics
// by the caller. Returns an error when the query exceeds the configured
// keyword count or any keyword exceeds the length cap.
func ParseKeywords(raw string, maxCount, maxLength int) ([]string, error) {
	keywords := strings.Fields(raw)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}
	if len(keywords) > maxCount {
		return nil, fmt.Errorf("too many keywords: %d (max %d)", len(keywords), maxCount)
	}
	for _, kw := range keywords {
		if n := len([]rune(kw)); n > maxLength {
			return nil, fmt.Errorf("keyword too long: %d characters (max %d)", n, maxLength)
		}
	}
	return keywords, nil
}
