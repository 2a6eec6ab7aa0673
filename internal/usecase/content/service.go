package content

import (
	"context"
	"fmt"
	"strings"

	"amal-cms/internal/common/pagination"
	"amal-cms/internal/domain/entity"
	"amal-cms/internal/observability/metrics"
	"amal-cms/internal/repository"
)

// Record constrains the service to pointer types that expose the shared
// content metadata, domain validation, and the server-owned field reset.
type Record[T any] interface {
	repository.Record[T]
	Validate() error
	ResetServerOwned()
}

// Service provides content management use cases for one content type.
// It owns validation and publish semantics and delegates persistence to the
// repository.
type Service[T any, P Record[T]] struct {
	// Kind names the content type in errors, logs, and metrics
	// (e.g. "program", "publication").
	Kind     string
	Repo     repository.ContentRepository[T]
	Paging   pagination.Config
	Strategy pagination.PaginationStrategy
}

// NewService creates a service for one content type.
func NewService[T any, P Record[T]](kind string, repo repository.ContentRepository[T]) *Service[T, P] {
	return &Service[T, P]{
		Kind:     kind,
		Repo:     repo,
		Paging:   pagination.LoadFromEnv(),
		Strategy: pagination.OffsetStrategy{},
	}
}

// Page is one page of content items with pagination metadata.
type Page[T any] struct {
	Items      []*T
	Pagination pagination.Metadata
}

// Create validates and persists a new item. Identity, the publish pair,
// counters, and timestamps are never taken from the caller; new items start
// unpublished and visibility moves only through Publish.
func (s *Service[T, P]) Create(ctx context.Context, e *T) (*T, error) {
	if err := P(e).Validate(); err != nil {
		return nil, err
	}

	P(e).ResetServerOwned()

	created, err := s.Repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.Kind, err)
	}
	metrics.RecordContentCreated(s.Kind)
	return created, nil
}

// List returns one page of items matching the filter, with limits clamped to
// the pagination configuration.
func (s *Service[T, P]) List(ctx context.Context, f repository.ListFilter) ([]*T, error) {
	f = s.clamp(f)
	items, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Kind, err)
	}
	return items, nil
}

// ListPage returns a page of items together with the total-derived
// pagination metadata. The count and the page are separate statements; the
// metadata can be momentarily stale under concurrent writes.
func (s *Service[T, P]) ListPage(ctx context.Context, params pagination.Params, f repository.ListFilter) (*Page[T], error) {
	params = params.WithDefaults(s.Paging)
	query := s.Strategy.CalculateQuery(params)
	f.Limit = query.Limit
	f.Offset = query.Offset

	total, err := s.Repo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", s.Kind, err)
	}
	items, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Kind, err)
	}

	return &Page[T]{
		Items:      items,
		Pagination: s.Strategy.BuildMetadata(params, total, false),
	}, nil
}

// Get retrieves a single item by its ID.
// Returns ErrInvalidID if the ID is not positive, ErrNotFound if absent.
func (s *Service[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.Kind, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// GetBySlug retrieves a published item by either locale's slug.
func (s *Service[T, P]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, &entity.ValidationError{Field: "slug", Message: "is required"}
	}

	item, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get %s by slug: %w", s.Kind, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Search splits the query into whitespace-separated keywords and runs
// substring search; every keyword must match.
func (s *Service[T, P]) Search(ctx context.Context, query string, f repository.SearchFilter) ([]*T, error) {
	metrics.RecordContentSearch(s.Kind)

	items, err := s.Repo.Search(ctx, strings.Fields(query), f)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.Kind, err)
	}
	return items, nil
}

// Update applies a partial field set to an existing item. JSON-decoded
// values arrive loosely typed; string arrays are normalized before they
// reach the repository.
func (s *Service[T, P]) Update(ctx context.Context, id int64, fields map[string]any) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	normalized, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.Update(ctx, id, normalized)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.Kind, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Publish toggles the publish state and returns the updated item.
func (s *Service[T, P]) Publish(ctx context.Context, id int64, published bool) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	item, err := s.Repo.SetPublished(ctx, id, published)
	if err != nil {
		return nil, fmt.Errorf("publish %s: %w", s.Kind, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	metrics.RecordContentPublished(s.Kind, published)
	return item, nil
}

// Delete removes an item by its ID.
func (s *Service[T, P]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}

	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.Kind, err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// IncrementViews records one page view and returns the new counter value.
func (s *Service[T, P]) IncrementViews(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, ErrInvalidID
	}

	views, err := s.Repo.IncrementViews(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("increment %s views: %w", s.Kind, err)
	}
	if views == 0 {
		// A row that exists always reports at least 1 after the update.
		return 0, ErrNotFound
	}
	metrics.RecordContentViewed(s.Kind)
	return views, nil
}

// IncrementDownloads records one download and returns the new counter value.
func (s *Service[T, P]) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, ErrInvalidID
	}

	downloads, err := s.Repo.IncrementDownloads(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("increment %s downloads: %w", s.Kind, err)
	}
	if downloads == 0 {
		return 0, ErrNotFound
	}
	metrics.RecordContentDownloaded(s.Kind)
	return downloads, nil
}

// Count returns the number of items matching the filter.
func (s *Service[T, P]) Count(ctx context.Context, f repository.ListFilter) (int64, error) {
	count, err := s.Repo.Count(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.Kind, err)
	}
	return count, nil
}

// CountPublished returns the number of published items.
func (s *Service[T, P]) CountPublished(ctx context.Context) (int64, error) {
	count, err := s.Repo.CountPublished(ctx)
	if err != nil {
		return 0, fmt.Errorf("count published %s: %w", s.Kind, err)
	}
	return count, nil
}

// FindByTags returns items whose tags overlap the given set in either
// locale. Blank tags are dropped before the query.
func (s *Service[T, P]) FindByTags(ctx context.Context, tags []string, publishedOnly bool) ([]*T, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	items, err := s.Repo.FindByTags(ctx, cleaned, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("find %s by tags: %w", s.Kind, err)
	}
	return items, nil
}

func (s *Service[T, P]) clamp(f repository.ListFilter) repository.ListFilter {
	if f.Limit <= 0 {
		f.Limit = s.Paging.DefaultLimit
	}
	if f.Limit > s.Paging.MaxLimit {
		f.Limit = s.Paging.MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// normalizeFields coerces JSON-decoded update values: []any becomes
// []string, anything else passes through for the repository's column
// whitelist to judge.
func normalizeFields(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for col, val := range fields {
		items, ok := val.([]any)
		if !ok {
			out[col] = val
			continue
		}
		ss := make([]string, 0, len(items))
		for _, item := range items {
			str, ok := item.(string)
			if !ok {
				return nil, &entity.ValidationError{Field: col, Message: "must be an array of strings"}
			}
			ss = append(ss, str)
		}
		out[col] = ss
	}
	return out, nil
}
