// Package sqlite provides the SQLite implementation of the generic content
// repository. It mirrors the PostgreSQL adapter's semantics with ?
// placeholders, LIKE-based substring search, and tag arrays stored as JSON
// text queried through json_each.
package sqlite

import (
	"fmt"
	"strings"

	"amal-cms/internal/domain/entity"
	"amal-cms/internal/pkg/search"
	"amal-cms/internal/repository"
)

// ContentQueryBuilder builds WHERE and ORDER BY fragments for one content
// table, shared between SELECT and COUNT queries.
type ContentQueryBuilder[T any] struct {
	schema *repository.Schema[T]
}

// NewContentQueryBuilder creates a builder bound to the given schema.
func NewContentQueryBuilder[T any](schema *repository.Schema[T]) *ContentQueryBuilder[T] {
	return &ContentQueryBuilder[T]{schema: schema}
}

// ListWhere builds the WHERE clause for List and Count.
func (qb *ContentQueryBuilder[T]) ListWhere(f repository.ListFilter) (clause string, args []any, err error) {
	var conditions []string

	if f.Published != nil {
		conditions = append(conditions, "is_published = ?")
		args = append(args, *f.Published)
	}

	parents := []struct {
		col repository.Parent
		val *int64
	}{
		{repository.ParentProgram, f.ProgramID},
		{repository.ParentProject, f.ProjectID},
		{repository.ParentActivity, f.ActivityID},
		{repository.ParentCategory, f.CategoryID},
	}
	for _, p := range parents {
		if p.val == nil {
			continue
		}
		if !qb.schema.HasParent(p.col) {
			return "", nil, &entity.ValidationError{
				Field:   string(p.col),
				Message: fmt.Sprintf("not a filter for %s", qb.schema.Table),
			}
		}
		conditions = append(conditions, string(p.col)+" = ?")
		args = append(args, *p.val)
	}

	if len(conditions) == 0 {
		return "", args, nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// OrderClause validates ordering against the schema's column whitelist.
func (qb *ContentQueryBuilder[T]) OrderClause(f repository.ListFilter) (string, error) {
	column := f.OrderBy
	if column == "" {
		column = "created_at"
	}
	if !qb.schema.Orderable(column) {
		return "", &entity.ValidationError{Field: "order_by", Message: "unknown column " + column}
	}

	direction := "DESC"
	switch strings.ToLower(f.Order) {
	case "", "desc":
	case "asc":
		direction = "ASC"
	default:
		return "", &entity.ValidationError{Field: "order", Message: "must be asc or desc"}
	}
	return column + " " + direction, nil
}

// SearchWhere builds the keyword search clause. SQLite's LIKE is
// case-insensitive for ASCII, which matches the PostgreSQL adapter's ILIKE
// for the Latin-script columns; Arabic text has no case to fold.
func (qb *ContentQueryBuilder[T]) SearchWhere(keywords []string, f repository.SearchFilter) (clause string, args []any) {
	var conditions []string

	for _, keyword := range keywords {
		matches := make([]string, 0, len(qb.schema.SearchColumns))
		pattern := search.EscapeLike(keyword)
		for _, col := range qb.schema.SearchColumns {
			matches = append(matches, col+` LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	if f.PublishedOnly {
		conditions = append(conditions, "is_published = TRUE")
	}
	if f.From != nil {
		conditions = append(conditions, "published_at >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conditions = append(conditions, "published_at <= ?")
		args = append(args, *f.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// SlugWhere builds the published-only slug lookup across both locales.
func (qb *ContentQueryBuilder[T]) SlugWhere() string {
	clause := fmt.Sprintf("WHERE (%s = ? OR %s = ?) AND is_published = TRUE",
		qb.schema.SlugEn, qb.schema.SlugAr)
	if qb.schema.PublicFlag != "" {
		clause += fmt.Sprintf(" AND %s = TRUE", qb.schema.PublicFlag)
	}
	return clause
}

// TagsWhere builds the overlap condition against the JSON-encoded tag
// columns: a row matches when json_each finds any of the given values in
// either locale's array. Returns the clause and the number of ? slots per
// column so the caller can repeat the tag arguments.
func (qb *ContentQueryBuilder[T]) TagsWhere(tagCount int, publishedOnly bool) string {
	in := strings.TrimSuffix(strings.Repeat("?, ", tagCount), ", ")
	clause := fmt.Sprintf(
		"WHERE (EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value IN (%s))"+
			" OR EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value IN (%s)))",
		qb.schema.TagsEn, in, qb.schema.TagsAr, in)
	if publishedOnly {
		clause += " AND is_published = TRUE"
	}
	return clause
}
