package pagination

import (
	"log/slog"
	"time"
)

// Log helpers used by the list handlers so every paginated route emits the
// same field set and dashboards can query across content kinds.

func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Info("Paginated content list request",
		"request_id", requestID,
		"page", params.Page,
		"limit", params.Limit)
}

func LogResponse(logger *slog.Logger, requestID string, params Params, returned int, duration time.Duration, status int) {
	logger.Info("Paginated response",
		"request_id", requestID,
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", returned,
		"duration_ms", duration.Milliseconds(),
		"status", status)
}

func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("Pagination error",
		"request_id", requestID,
		"page", params.Page,
		"limit", params.Limit,
		"error", err.Error(),
		"error_type", errorType)
}
