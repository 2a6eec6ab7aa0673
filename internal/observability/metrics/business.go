package metrics

import "time"

// RecordContentCreated records a successful content creation.
func RecordContentCreated(kind string) {
	ContentCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordContentPublished records a publish state transition.
func RecordContentPublished(kind string, published bool) {
	action := "publish"
	if !published {
		action = "unpublish"
	}
	ContentPublishEventsTotal.WithLabelValues(kind, action).Inc()
}

// RecordContentViewed records a page view increment.
func RecordContentViewed(kind string) {
	ContentViewsTotal.WithLabelValues(kind).Inc()
}

// RecordContentDownloaded records a download increment.
func RecordContentDownloaded(kind string) {
	ContentDownloadsTotal.WithLabelValues(kind).Inc()
}

// RecordContentSearch records a substring search request.
func RecordContentSearch(kind string) {
	SearchRequestsTotal.WithLabelValues(kind).Inc()
}

// UpdateContentTotals updates the per-kind row count gauges.
// The stats worker refreshes these periodically.
func UpdateContentTotals(kind string, total, published int64) {
	ContentTotal.WithLabelValues(kind).Set(float64(total))
	ContentPublishedTotal.WithLabelValues(kind).Set(float64(published))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_programs", "insert_publication").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
