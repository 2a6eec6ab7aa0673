// Package repository defines the persistence contracts of the application.
// Its centerpiece is ContentRepository, a single generic CRUD and query
// surface shared by every bilingual content table, parameterized by a Schema
// describing the table behind the type.
package repository

import (
	"context"
	"database/sql"
	"time"

	"amal-cms/internal/domain/entity"
)

// Querier is the storage session a repository operates on. *sql.DB satisfies
// it, as does the circuit breaker wrapper. Passing it in explicitly keeps
// connection lifecycle (pooling, shutdown, test doubles) in the caller's
// hands instead of behind a package-level handle.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Record constrains a content pointer type to expose the embedded
// entity.Content, giving generic code access to the shared columns
// (id, slugs, publish pair, timestamps, counters) without reflection.
type Record[T any] interface {
	*T
	Meta() *entity.Content
}

// ListFilter is the filter vocabulary for List and Count. All provided
// options combine with AND. Zero values mean "not filtered"; paging fields
// fall back to defaults in the repository.
type ListFilter struct {
	Published  *bool
	ProgramID  *int64
	ProjectID  *int64
	ActivityID *int64
	CategoryID *int64
	Limit      int    // default 50
	Offset     int    // default 0
	OrderBy    string // default "created_at"; validated against the schema
	Order      string // "asc" or "desc"; default "desc"
}

// SearchFilter restricts Search beyond its keywords.
type SearchFilter struct {
	PublishedOnly bool
	From          *time.Time // published_at >= From
	To            *time.Time // published_at <= To
}

// DefaultLimit applies when ListFilter.Limit is not positive.
const DefaultLimit = 50

// ContentRepository is the uniform persistence surface over one bilingual
// content table. Lookups that miss return (nil, nil): not found is a normal
// outcome, not an error. Unique constraint violations surface wrapped around
// entity.ErrConflict; other storage failures as *entity.StorageError.
//
// The publish pair (is_published, published_at) and the counters are owned
// by SetPublished and the increment operations respectively; Update rejects
// them. Increments execute as a single atomic statement at the storage
// layer, so concurrent calls on the same row never lose updates.
type ContentRepository[T any] interface {
	Create(ctx context.Context, e *T) (*T, error)
	List(ctx context.Context, f ListFilter) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	// GetBySlug resolves either locale's slug in one query and only returns
	// published rows (plus is_public where the type carries the flag).
	GetBySlug(ctx context.Context, slug string) (*T, error)
	// Search matches every keyword (AND) as a case-insensitive substring in
	// any of the schema's search columns (OR), ordered by recency.
	Search(ctx context.Context, keywords []string, f SearchFilter) ([]*T, error)
	// Update applies a partial column set and stamps updated_at. Returns
	// (nil, nil) when no row matched.
	Update(ctx context.Context, id int64, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// SetPublished toggles visibility and couples published_at to the flag
	// (now() on publish, NULL on unpublish) in one statement.
	SetPublished(ctx context.Context, id int64, published bool) (*T, error)
	IncrementViews(ctx context.Context, id int64) (int64, error)
	IncrementDownloads(ctx context.Context, id int64) (int64, error)
	// Count honors the ListFilter vocabulary; paging fields are ignored.
	Count(ctx context.Context, f ListFilter) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
	// FindByTags returns rows whose tag arrays (either locale) overlap tags.
	FindByTags(ctx context.Context, tags []string, publishedOnly bool) ([]*T, error)
}
