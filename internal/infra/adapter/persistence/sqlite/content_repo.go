package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"amal-cms/internal/domain/entity"
	"amal-cms/internal/pkg/search"
	"amal-cms/internal/repository"
)

// ContentRepo is the SQLite implementation of the generic content
// repository. It matches the PostgreSQL adapter's observable behavior so the
// two backends are interchangeable behind the interface.
type ContentRepo[T any, P repository.Record[T]] struct {
	db           repository.Querier
	schema       *repository.Schema[T]
	queryBuilder *ContentQueryBuilder[T]
	selectCols   string
}

// NewContentRepo creates a repository for the content type described by
// schema, operating on the given storage session.
func NewContentRepo[T any, P repository.Record[T]](db repository.Querier, schema *repository.Schema[T]) *ContentRepo[T, P] {
	return &ContentRepo[T, P]{
		db:           db,
		schema:       schema,
		queryBuilder: NewContentQueryBuilder(schema),
		selectCols:   "id, " + strings.Join(schema.Columns, ", "),
	}
}

// Create inserts a new row, stamping timestamps and normalizing the publish
// pair. RETURNING gives back the database-assigned id.
func (repo *ContentRepo[T, P]) Create(ctx context.Context, e *T) (*T, error) {
	now := time.Now().UTC()
	meta := P(e).Meta()
	meta.CreatedAt, meta.UpdatedAt = now, now
	if meta.IsPublished && meta.PublishedAt == nil {
		publishedAt := now
		meta.PublishedAt = &publishedAt
	}
	if !meta.IsPublished {
		meta.PublishedAt = nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(repo.schema.Columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		repo.schema.Table, strings.Join(repo.schema.Columns, ", "), placeholders)

	args, err := repo.bindArgs(repo.schema.Values(e))
	if err != nil {
		return nil, wrapError("Create", err)
	}
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&meta.ID); err != nil {
		return nil, wrapError("Create", err)
	}
	return e, nil
}

// List returns one page of rows matching the filter.
func (repo *ContentRepo[T, P]) List(ctx context.Context, f repository.ListFilter) ([]*T, error) {
	where, args, err := repo.queryBuilder.ListWhere(f)
	if err != nil {
		return nil, err
	}
	order, err := repo.queryBuilder.OrderClause(f)
	if err != nil {
		return nil, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = repository.DefaultLimit
	}
	offset := max(f.Offset, 0)

	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s LIMIT ? OFFSET ?",
		repo.selectCols, repo.schema.Table, where, order)
	args = append(args, limit, offset)

	return repo.queryMany(ctx, "List", query, args...)
}

// Get looks a row up by primary key without publish filtering.
func (repo *ContentRepo[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ? LIMIT 1",
		repo.selectCols, repo.schema.Table)
	return repo.queryOne(ctx, "Get", query, id)
}

// GetBySlug resolves either locale's slug in one query, published rows only.
func (repo *ContentRepo[T, P]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1",
		repo.selectCols, repo.schema.Table, repo.queryBuilder.SlugWhere())
	return repo.queryOne(ctx, "GetBySlug", query, slug, slug)
}

// Search runs multi-keyword substring search ordered by recency.
func (repo *ContentRepo[T, P]) Search(ctx context.Context, keywords []string, f repository.SearchFilter) ([]*T, error) {
	if len(keywords) == 0 && f.From == nil && f.To == nil {
		return []*T{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, search.DefaultSearchTimeout)
	defer cancel()

	where, args := repo.queryBuilder.SearchWhere(keywords, f)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY COALESCE(published_at, created_at) DESC",
		repo.selectCols, repo.schema.Table, where)

	return repo.queryMany(ctx, "Search", query, args...)
}

// Update applies a partial column set and stamps updated_at. The publish
// pair, counters, and timestamps are rejected. Returns (nil, nil) when no
// row matched.
func (repo *ContentRepo[T, P]) Update(ctx context.Context, id int64, fields map[string]any) (*T, error) {
	if len(fields) == 0 {
		return nil, &entity.ValidationError{Field: "fields", Message: "must not be empty"}
	}

	columns := make([]string, 0, len(fields))
	for col := range fields {
		if !repo.schema.Updatable(col) {
			return nil, &entity.ValidationError{Field: col, Message: "cannot be updated through this operation"}
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)

	assignments := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+2)
	for _, col := range columns {
		assignments = append(assignments, col+" = ?")
		args = append(args, fields[col])
	}
	assignments = append(assignments, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ? RETURNING %s",
		repo.schema.Table, strings.Join(assignments, ", "), repo.selectCols)

	return repo.queryOne(ctx, "Update", query, args...)
}

// Delete hard-deletes a row and reports whether one was removed.
func (repo *ContentRepo[T, P]) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", repo.schema.Table)
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, wrapError("Delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapError("Delete", err)
	}
	return n > 0, nil
}

// SetPublished toggles visibility, coupling published_at to the flag in one
// statement.
func (repo *ContentRepo[T, P]) SetPublished(ctx context.Context, id int64, published bool) (*T, error) {
	query := fmt.Sprintf(`
UPDATE %s SET
       is_published = ?,
       published_at = CASE WHEN ? THEN ? ELSE NULL END,
       updated_at   = ?
WHERE id = ?
RETURNING %s`, repo.schema.Table, repo.selectCols)

	now := time.Now().UTC()
	return repo.queryOne(ctx, "SetPublished", query, published, published, now, now, id)
}

// IncrementViews bumps the page view counter atomically at the storage
// layer and returns the new value. A missing row yields (0, nil).
func (repo *ContentRepo[T, P]) IncrementViews(ctx context.Context, id int64) (int64, error) {
	return repo.increment(ctx, "IncrementViews", "page_views", id)
}

// IncrementDownloads bumps the download counter for types that carry one.
func (repo *ContentRepo[T, P]) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	if repo.schema.DownloadsColumn == "" {
		return 0, &entity.ValidationError{Field: "downloads", Message: "not tracked for " + repo.schema.Table}
	}
	return repo.increment(ctx, "IncrementDownloads", repo.schema.DownloadsColumn, id)
}

func (repo *ContentRepo[T, P]) increment(ctx context.Context, op, column string, id int64) (int64, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1, updated_at = ? WHERE id = ? RETURNING %s",
		repo.schema.Table, column, column, column)

	var value int64
	err := repo.db.QueryRowContext(ctx, query, time.Now().UTC(), id).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapError(op, err)
	}
	return value, nil
}

// Count returns the number of rows matching the filter; paging fields are
// ignored.
func (repo *ContentRepo[T, P]) Count(ctx context.Context, f repository.ListFilter) (int64, error) {
	where, args, err := repo.queryBuilder.ListWhere(f)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", repo.schema.Table, where)

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapError("Count", err)
	}
	return count, nil
}

// CountPublished counts publicly visible rows.
func (repo *ContentRepo[T, P]) CountPublished(ctx context.Context) (int64, error) {
	published := true
	return repo.Count(ctx, repository.ListFilter{Published: &published})
}

// FindByTags returns rows whose tag arrays overlap the given set in either
// locale, newest first.
func (repo *ContentRepo[T, P]) FindByTags(ctx context.Context, tags []string, publishedOnly bool) ([]*T, error) {
	if len(tags) == 0 {
		return []*T{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY COALESCE(published_at, created_at) DESC",
		repo.selectCols, repo.schema.Table, repo.queryBuilder.TagsWhere(len(tags), publishedOnly))

	// One argument set per json_each subquery.
	args := make([]any, 0, len(tags)*2)
	for _, tag := range tags {
		args = append(args, tag)
	}
	for _, tag := range tags {
		args = append(args, tag)
	}
	return repo.queryMany(ctx, "FindByTags", query, args...)
}

func (repo *ContentRepo[T, P]) queryOne(ctx context.Context, op, query string, args ...any) (*T, error) {
	bound, err := repo.bindArgs(args)
	if err != nil {
		return nil, wrapError(op, err)
	}
	e := new(T)
	err = repo.db.QueryRowContext(ctx, query, bound...).Scan(repo.bindDests(repo.schema.Dest(e))...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(op, err)
	}
	return e, nil
}

func (repo *ContentRepo[T, P]) queryMany(ctx context.Context, op, query string, args ...any) ([]*T, error) {
	bound, err := repo.bindArgs(args)
	if err != nil {
		return nil, wrapError(op, err)
	}
	rows, err := repo.db.QueryContext(ctx, query, bound...)
	if err != nil {
		return nil, wrapError(op, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*T, 0, repository.DefaultLimit)
	for rows.Next() {
		e := new(T)
		if err := rows.Scan(repo.bindDests(repo.schema.Dest(e))...); err != nil {
			return nil, wrapError(op+": Scan", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(op, err)
	}
	return out, nil
}

// bindArgs JSON-encodes string-slice values; SQLite has no array type.
func (repo *ContentRepo[T, P]) bindArgs(args []any) ([]any, error) {
	for i, arg := range args {
		if v, ok := arg.([]string); ok {
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			if v == nil {
				encoded = []byte("[]")
			}
			args[i] = string(encoded)
		}
	}
	return args, nil
}

// bindDests wraps string-slice destinations with a JSON decoder.
func (repo *ContentRepo[T, P]) bindDests(dests []any) []any {
	for i, dest := range dests {
		if v, ok := dest.(*[]string); ok {
			dests[i] = &jsonStrings{target: v}
		}
	}
	return dests
}

// jsonStrings scans a JSON array column into a []string field.
type jsonStrings struct {
	target *[]string
}

// Scan implements sql.Scanner.
func (j *jsonStrings) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j.target = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), j.target)
	case []byte:
		return json.Unmarshal(v, j.target)
	default:
		return fmt.Errorf("jsonStrings: unsupported source type %T", src)
	}
}

var _ repository.ContentRepository[entity.Program] = (*ContentRepo[entity.Program, *entity.Program])(nil)

// wrapError maps storage failures onto the domain taxonomy. modernc.org/sqlite
// reports constraint details only in the message, so conflicts are detected
// by the UNIQUE constraint marker.
func wrapError(op string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint") {
		return fmt.Errorf("%s: %w", op, entity.ErrConflict)
	}
	return &entity.StorageError{Op: op, Err: err}
}
