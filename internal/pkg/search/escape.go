// Package search holds shared helpers for substring search queries.
package search

import (
	"strings"
	"time"
)

// DefaultSearchTimeout caps how long a search statement may run. Substring
// search over text columns is the slowest query shape in the repository.
const DefaultSearchTimeout = 5 * time.Second

// likeEscaper escapes the LIKE/ILIKE metacharacters so user input matches
// literally. Backslash is the ESCAPE character on both backends.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes a keyword and wraps it in wildcards for a substring
// LIKE/ILIKE match.
func EscapeLike(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}
