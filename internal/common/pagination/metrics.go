package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Listing metrics shared by every paginated content route. Pages are
// bucketed because per-page-number labels would blow up cardinality the
// first time a crawler walks the archive.
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amal_pagination_requests_total",
			Help: "Total number of paginated listing requests",
		},
		[]string{"status", "page_range"},
	)

	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "amal_pagination_duration_seconds",
			Help:    "Listing request duration by layer",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "amal_content_total_count",
			Help: "Total content items as of the last COUNT query",
		},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amal_pagination_errors_total",
			Help: "Listing errors by type",
		},
		[]string{"type"},
	)
)

// RecordRequest counts one completed listing request.
func RecordRequest(statusCode int, page int) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRangeBucket(page)).Inc()
}

// RecordDuration observes how long one layer of a listing request took.
// operation is "handler", "service", or "repository".
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount refreshes the content count gauge.
func UpdateTotalCount(count int64) {
	TotalCount.Set(float64(count))
}

// RecordError counts a listing failure. errorType is "validation",
// "database", or "timeout".
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
