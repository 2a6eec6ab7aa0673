// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic
// to ensure system resilience in the face of failures.
//
// The package supports:
//   - Circuit breakers for database access
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.NewDBCircuitBreaker(database)
//	rows, err := cb.QueryContext(ctx, query, args...)
//
//	retryConfig := retry.DefaultConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
package resilience
