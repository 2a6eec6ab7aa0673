package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"amal-cms/internal/domain/entity"
	"amal-cms/internal/pkg/search"
	"amal-cms/internal/repository"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations (duplicate slug races included).
const pgUniqueViolation = "23505"

// ContentRepo is the PostgreSQL implementation of the generic content
// repository. One instance per content type, all sharing this code; the
// schema carries everything type-specific.
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

// Create inserts a new row. The repository stamps created_at and updated_at
// and normalizes the publish pair; the database assigns the id.
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

	placeholders := make([]string, len(repo.schema.Columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		repo.schema.Table,
		strings.Join(repo.schema.Columns, ", "),
		strings.Join(placeholders, ", "))

	err := repo.db.QueryRowContext(ctx, query, bindArgs(repo.schema.Values(e))...).Scan(&meta.ID)
	if err != nil {
		return nil, wrapError("Create", err)
	}
	return e, nil
}

// List returns one page of rows matching the filter, ordered as requested.
// It never includes a total; callers pairing a page with a count accept the
// non-atomicity of the two statements under concurrent writes.
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

	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s LIMIT $%d OFFSET $%d",
		repo.selectCols, repo.schema.Table, where, order, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	return repo.queryMany(ctx, "List", query, args...)
}

// Get looks a row up by primary key without publish filtering; admin flows
// need to see unpublished rows. Returns (nil, nil) when the row is absent.
func (repo *ContentRepo[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 LIMIT 1",
		repo.selectCols, repo.schema.Table)
	return repo.queryOne(ctx, "Get", query, id)
}

// GetBySlug resolves either locale's slug in a single OR query, restricted
// to published (and public, where the flag exists) rows.
func (repo *ContentRepo[T, P]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1",
		repo.selectCols, repo.schema.Table, repo.queryBuilder.SlugWhere())
	return repo.queryOne(ctx, "GetBySlug", query, slug)
}

// Search runs multi-keyword substring search ordered by recency. With no
// keywords and no date range there is nothing to match; the result is empty
// without a round trip.
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

// Update applies a partial column set and stamps updated_at in the same
// statement. The publish pair, counters, and timestamps are rejected here:
// SetPublished and the increments own them. Returns (nil, nil) when no row
// matched.
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
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, fields[col])
	}
	assignments = append(assignments, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		repo.schema.Table, strings.Join(assignments, ", "), len(args), repo.selectCols)

	return repo.queryOne(ctx, "Update", query, args...)
}

// Delete hard-deletes a row and reports whether one was removed.
func (repo *ContentRepo[T, P]) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", repo.schema.Table)
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

// SetPublished toggles visibility. The publish flag and its timestamp move
// in one statement so the invariant (published exactly when the timestamp is
// set) holds no matter how calls interleave.
func (repo *ContentRepo[T, P]) SetPublished(ctx context.Context, id int64, published bool) (*T, error) {
	query := fmt.Sprintf(`
UPDATE %s SET
       is_published = $1,
       published_at = CASE WHEN $1 THEN $2 ELSE NULL END,
       updated_at   = $2
WHERE id = $3
RETURNING %s`, repo.schema.Table, repo.selectCols)

	return repo.queryOne(ctx, "SetPublished", query, published, time.Now().UTC(), id)
}

// IncrementViews bumps the page view counter in a single atomic statement
// and returns the new value. A missing row yields (0, nil).
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

// increment executes counter = counter + 1 at the storage layer. Reading the
// counter first and writing it back would lose updates under concurrency.
func (repo *ContentRepo[T, P]) increment(ctx context.Context, op, column string, id int64) (int64, error) {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1, updated_at = $1 WHERE id = $2 RETURNING %s",
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

// Count returns the number of rows matching the filter. Paging fields are
// ignored; the filter vocabulary is shared with List.
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
		repo.selectCols, repo.schema.Table, repo.queryBuilder.TagsWhere(publishedOnly))

	return repo.queryMany(ctx, "FindByTags", query, pq.Array(tags))
}

// queryOne runs a single-row query, translating sql.ErrNoRows into the
// (nil, nil) not-found contract.
func (repo *ContentRepo[T, P]) queryOne(ctx context.Context, op, query string, args ...any) (*T, error) {
	e := new(T)
	err := repo.db.QueryRowContext(ctx, query, bindArgs(args)...).Scan(bindDests(repo.schema.Dest(e))...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(op, err)
	}
	return e, nil
}

func (repo *ContentRepo[T, P]) queryMany(ctx context.Context, op, query string, args ...any) ([]*T, error) {
	rows, err := repo.db.QueryContext(ctx, query, bindArgs(args)...)
	if err != nil {
		return nil, wrapError(op, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*T, 0, repository.DefaultLimit)
	for rows.Next() {
		e := new(T)
		if err := rows.Scan(bindDests(repo.schema.Dest(e))...); err != nil {
			return nil, wrapError(op+": Scan", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(op, err)
	}
	return out, nil
}

// bindArgs wraps string-slice values so the driver sees text[] parameters.
func bindArgs(args []any) []any {
	for i, arg := range args {
		switch v := arg.(type) {
		case []string:
			args[i] = pq.Array(v)
		case *[]string:
			args[i] = pq.Array(v)
		}
	}
	return args
}

// bindDests wraps string-slice destinations for text[] scanning.
func bindDests(dests []any) []any {
	for i, dest := range dests {
		if v, ok := dest.(*[]string); ok {
			dests[i] = pq.Array(v)
		}
	}
	return dests
}

// The generic repo must satisfy the repository contract for every content
// type; one instantiation is enough to keep the compiler honest.
var _ repository.ContentRepository[entity.Program] = (*ContentRepo[entity.Program, *entity.Program])(nil)

// wrapError maps storage failures onto the domain taxonomy: unique
// constraint violations become ErrConflict, everything else a StorageError
// tagged with the operation.
func wrapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, entity.ErrConflict)
	}
	return &entity.StorageError{Op: op, Err: err}
}
