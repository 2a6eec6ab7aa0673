// Package tracing provides OpenTelemetry tracing integration.
//
// Features:
//   - Automatic HTTP request tracing via Middleware
//   - W3C trace context propagation across services
//   - X-Trace-Id response header for client-side correlation
//
// Example usage:
//
//	import "amal-cms/internal/observability/tracing"
//
//	func main() {
//	    shutdown, err := tracing.InitTracer("amal-cms")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer shutdown(context.Background())
//	}
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
