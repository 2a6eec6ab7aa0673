// Package entity defines the core domain entities and validation logic for the application.
// It contains the bilingual content types published on the foundation's website
// (programs, projects, publications, and so on), along with their validation
// rules and domain-specific errors.
package entity

import "time"

// Content holds the fields every bilingual content type shares: the
// locale-paired slugs, the publish flag with its coupled timestamp, the
// audit timestamps, and the page view counter.
//
// Invariant: IsPublished == true exactly when PublishedAt != nil. The
// repository's publish operation couples the two fields in a single
// statement; nothing else may set them independently.
type Content struct {
	ID          int64      `json:"id"`
	SlugEn      string     `json:"slug_en"`
	SlugAr      string     `json:"slug_ar"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PageViews   int64      `json:"page_views"`
}

// Meta returns the embedded common part. Concrete content types embed
// Content, so this gives generic code access to the shared fields.
func (c *Content) Meta() *Content { return c }

// ResetServerOwned clears the fields only the server may assign: identity,
// the publish pair, and the view counter. Types carrying extra counters
// override this and call through.
func (c *Content) ResetServerOwned() {
	c.ID = 0
	c.IsPublished = false
	c.PublishedAt = nil
	c.PageViews = 0
}

// CommonColumns lists the shared table columns in the order CommonValues
// and CommonDest produce them. The id column is not included.
var CommonColumns = []string{
	"slug_en", "slug_ar",
	"is_published", "published_at",
	"created_at", "updated_at",
	"page_views",
}

// CommonValues returns the shared column values aligned with CommonColumns.
func (c *Content) CommonValues() []any {
	return []any{
		c.SlugEn, c.SlugAr,
		c.IsPublished, c.PublishedAt,
		c.CreatedAt, c.UpdatedAt,
		c.PageViews,
	}
}

// CommonDest returns scan destinations aligned with CommonColumns.
func (c *Content) CommonDest() []any {
	return []any{
		&c.SlugEn, &c.SlugAr,
		&c.IsPublished, &c.PublishedAt,
		&c.CreatedAt, &c.UpdatedAt,
		&c.PageViews,
	}
}
