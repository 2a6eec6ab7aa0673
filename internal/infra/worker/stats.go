package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"amal-cms/internal/observability/metrics"
	"amal-cms/internal/repository"
)

// ContentCounter is the slice of the content service the refresher needs:
// row counts per kind, total and published.
type ContentCounter interface {
	Count(ctx context.Context, f repository.ListFilter) (int64, error)
	CountPublished(ctx context.Context) (int64, error)
}

// StatsRefresher recomputes the per-kind content gauges and the SLO windows.
// It runs from the cron schedule in the worker binary.
type StatsRefresher struct {
	counters map[string]ContentCounter
	logger   *slog.Logger
}

// NewStatsRefresher builds a refresher over the given kind-to-service map.
func NewStatsRefresher(counters map[string]ContentCounter, logger *slog.Logger) *StatsRefresher {
	return &StatsRefresher{counters: counters, logger: logger}
}

// RefreshAll updates content_items_total and content_items_published for
// every registered kind. Kinds are visited in a stable order; the first
// failure aborts the run so a broken database shows up as a failed job
// instead of half-updated gauges.
func (s *StatsRefresher) RefreshAll(ctx context.Context) (int, error) {
	kinds := make([]string, 0, len(s.counters))
	for kind := range s.counters {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	refreshed := 0
	for _, kind := range kinds {
		counter := s.counters[kind]

		start := time.Now()
		total, err := counter.Count(ctx, repository.ListFilter{})
		if err != nil {
			return refreshed, fmt.Errorf("count %s: %w", kind, err)
		}
		published, err := counter.CountPublished(ctx)
		if err != nil {
			return refreshed, fmt.Errorf("count published %s: %w", kind, err)
		}

		metrics.UpdateContentTotals(kind, total, published)
		refreshed++

		s.logger.Debug("content totals refreshed",
			slog.String("kind", kind),
			slog.Int64("total", total),
			slog.Int64("published", published),
			slog.Duration("duration", time.Since(start)))
	}

	return refreshed, nil
}
