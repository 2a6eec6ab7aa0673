package repository

import "slices"

// Parent names an optional parent foreign key column a content table may
// carry. The constants double as column names.
type Parent string

// Parent key columns shared across the content tables.
const (
	ParentProgram  Parent = "program_id"
	ParentProject  Parent = "project_id"
	ParentActivity Parent = "activity_id"
	ParentCategory Parent = "category_id"
)

// Schema describes the table behind a content type: the column list with
// value and scan closures, and the metadata the generic repository needs to
// build slug lookups, substring search, parent filters, counter increments,
// and tag overlap queries. One Schema value per content type replaces the
// per-type repository the naive layout would need.
type Schema[T any] struct {
	// Table is the table name.
	Table string
	// Columns lists every column except id, in insert order.
	Columns []string
	// Values returns insert values aligned with Columns.
	Values func(e *T) []any
	// Dest returns scan destinations aligned with "id" followed by Columns.
	Dest func(e *T) []any

	// SlugEn and SlugAr are the locale-paired slug columns.
	SlugEn, SlugAr string
	// PublicFlag is the extra visibility column ("is_public"), empty when
	// the type has none.
	PublicFlag string
	// DownloadsColumn is the download counter column, empty when the type
	// has none. Every type has the page_views counter.
	DownloadsColumn string
	// SearchColumns are the bilingual text columns substring search scans.
	SearchColumns []string
	// Parents are the parent foreign key columns present on this table.
	Parents []Parent
	// TagsEn and TagsAr are the tag array columns.
	TagsEn, TagsAr string
	// ArrayColumns lists every string-array column (tags and keywords);
	// adapters use it to encode array values per dialect.
	ArrayColumns []string
}

// immutableColumns may never pass through Update: timestamps are stamped by
// the repository, counters move only via increments, and the publish pair is
// owned by SetPublished.
var immutableColumns = []string{
	"created_at", "updated_at",
	"page_views", "downloads",
	"is_published", "published_at",
}

// Updatable reports whether Update may set the column.
func (s *Schema[T]) Updatable(column string) bool {
	if slices.Contains(immutableColumns, column) {
		return false
	}
	return slices.Contains(s.Columns, column)
}

// Orderable reports whether the column may appear in ORDER BY. The whitelist
// is what keeps caller-supplied OrderBy out of SQL injection territory.
func (s *Schema[T]) Orderable(column string) bool {
	return column == "id" || slices.Contains(s.Columns, column)
}

// HasParent reports whether the table carries the given parent column.
func (s *Schema[T]) HasParent(p Parent) bool {
	return slices.Contains(s.Parents, p)
}

// IsArrayColumn reports whether the column holds a string array.
func (s *Schema[T]) IsArrayColumn(column string) bool {
	return slices.Contains(s.ArrayColumns, column)
}
