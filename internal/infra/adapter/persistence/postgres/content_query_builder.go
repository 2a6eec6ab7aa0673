// Package postgres provides the PostgreSQL implementation of the generic
// content repository. It uses raw SQL with numbered placeholders, ILIKE for
// case-insensitive substring search, and text[] columns for tags.
package postgres

import (
	"fmt"
	"strings"

	"amal-cms/internal/domain/entity"
	"amal-cms/internal/pkg/search"
	"amal-cms/internal/repository"
)

// ContentQueryBuilder builds WHERE and ORDER BY fragments for one content
// table. It is shared between SELECT and COUNT queries so the filter
// semantics cannot drift between a page and its total.
type ContentQueryBuilder[T any] struct {
	schema *repository.Schema[T]
}

// NewContentQueryBuilder creates a builder bound to the given schema.
func NewContentQueryBuilder[T any](schema *repository.Schema[T]) *ContentQueryBuilder[T] {
	return &ContentQueryBuilder[T]{schema: schema}
}

// ListWhere builds the WHERE clause for List and Count. All conditions
// combine with AND. A filter naming a parent column the table does not carry
// is a caller bug and fails with a ValidationError.
func (qb *ContentQueryBuilder[T]) ListWhere(f repository.ListFilter) (clause string, args []any, err error) {
	var conditions []string
	next := func() int { return len(args) + 1 }

	if f.Published != nil {
		conditions = append(conditions, fmt.Sprintf("is_published = $%d", next()))
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
		conditions = append(conditions, fmt.Sprintf("%s = $%d", p.col, next()))
		args = append(args, *p.val)
	}

	if len(conditions) == 0 {
		return "", args, nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// OrderClause validates the caller-supplied ordering against the schema's
// column whitelist and returns the ORDER BY expression. Defaults are
// created_at descending.
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

// SearchWhere builds the WHERE clause for keyword search: every keyword must
// match (AND), each as a case-insensitive substring in any search column
// (OR). Optional publish restriction and published_at date range apply on
// top.
func (qb *ContentQueryBuilder[T]) SearchWhere(keywords []string, f repository.SearchFilter) (clause string, args []any) {
	var conditions []string
	next := func() int { return len(args) + 1 }

	for _, keyword := range keywords {
		matches := make([]string, 0, len(qb.schema.SearchColumns))
		idx := next()
		for _, col := range qb.schema.SearchColumns {
			matches = append(matches, fmt.Sprintf("%s ILIKE $%d", col, idx))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
		args = append(args, search.EscapeLike(keyword))
	}

	if f.PublishedOnly {
		conditions = append(conditions, "is_published = TRUE")
	}
	if f.From != nil {
		conditions = append(conditions, fmt.Sprintf("published_at >= $%d", next()))
		args = append(args, *f.From)
	}
	if f.To != nil {
		conditions = append(conditions, fmt.Sprintf("published_at <= $%d", next()))
		args = append(args, *f.To)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// SlugWhere builds the published-only slug lookup across both locales. The
// single OR query means the caller gets the same row no matter which
// locale's slug it received.
func (qb *ContentQueryBuilder[T]) SlugWhere() string {
	clause := fmt.Sprintf("WHERE (%s = $1 OR %s = $1) AND is_published = TRUE",
		qb.schema.SlugEn, qb.schema.SlugAr)
	if qb.schema.PublicFlag != "" {
		clause += fmt.Sprintf(" AND %s = TRUE", qb.schema.PublicFlag)
	}
	return clause
}

// TagsWhere builds the array-overlap condition for FindByTags using the
// text[] && operator.
func (qb *ContentQueryBuilder[T]) TagsWhere(publishedOnly bool) string {
	clause := fmt.Sprintf("WHERE (%s && $1 OR %s && $1)", qb.schema.TagsEn, qb.schema.TagsAr)
	if publishedOnly {
		clause += " AND is_published = TRUE"
	}
	return clause
}
