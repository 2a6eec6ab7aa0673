// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (content counts, publish transitions, views, downloads)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "amal-cms/internal/observability/metrics"
//
//	func publish(kind string) {
//	    // ... toggle publish state ...
//	    metrics.RecordContentPublished(kind, true)
//	}
package metrics
