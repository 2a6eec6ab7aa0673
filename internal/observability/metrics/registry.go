// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track the content repository per content kind
// (program, project, activity, publication, image, story, faq, job)
var (
	// ContentTotal tracks the number of rows per content kind
	ContentTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_items_total",
			Help: "Total number of content items in the database",
		},
		[]string{"kind"},
	)

	// ContentPublishedTotal tracks the number of published rows per content kind
	ContentPublishedTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_items_published",
			Help: "Number of published content items in the database",
		},
		[]string{"kind"},
	)

	// ContentCreatedTotal counts content creations
	ContentCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_created_total",
			Help: "Total number of content items created",
		},
		[]string{"kind"},
	)

	// ContentPublishEventsTotal counts publish state transitions by action
	ContentPublishEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_publish_events_total",
			Help: "Total number of publish and unpublish transitions",
		},
		[]string{"kind", "action"},
	)

	// ContentViewsTotal counts page view increments
	ContentViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_views_total",
			Help: "Total number of recorded page views",
		},
		[]string{"kind"},
	)

	// ContentDownloadsTotal counts download increments
	ContentDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_downloads_total",
			Help: "Total number of recorded downloads",
		},
		[]string{"kind"},
	)

	// SearchRequestsTotal counts substring searches per content kind
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_search_requests_total",
			Help: "Total number of content search requests",
		},
		[]string{"kind"},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
