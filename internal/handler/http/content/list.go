package content

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"amal-cms/internal/common/pagination"
	"amal-cms/internal/handler/http/requestid"
	"amal-cms/internal/handler/http/respond"
	"amal-cms/internal/observability/logging"
	"amal-cms/internal/repository"
	contentUC "amal-cms/internal/usecase/content"
)

// ListHandler serves the paginated, filterable collection listing.
// Only published items are returned; drafts stay invisible to the site.
type ListHandler[T any, P contentUC.Record[T]] struct {
	Svc           *contentUC.Service[T, P]
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		logger.Warn("Invalid list filter",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	pagination.LogRequest(logger, reqID, params)

	result, err := h.Svc.ListPage(ctx, params, filter)
	if err != nil {
		code := statusFor(err)
		if code >= 500 {
			pagination.LogError(logger, reqID, params, err, "database")
			pagination.RecordError("database")
		} else {
			pagination.RecordError("validation")
		}
		respond.SafeError(w, code, err)
		return
	}

	response := pagination.NewResponse(result.Items, result.Pagination)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Pagination.Total)

	pagination.LogResponse(logger, reqID, params, len(result.Items), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, response)
}

// parseListFilter extracts the public listing filters from query parameters.
// The published flag is forced on: listing drafts is not a public operation.
func parseListFilter(r *http.Request) (repository.ListFilter, error) {
	published := true
	filter := repository.ListFilter{Published: &published}

	q := r.URL.Query()

	parents := []struct {
		param string
		dest  **int64
	}{
		{"program_id", &filter.ProgramID},
		{"project_id", &filter.ProjectID},
		{"activity_id", &filter.ActivityID},
		{"category_id", &filter.CategoryID},
	}
	for _, p := range parents {
		raw := q.Get(p.param)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, errors.New("invalid " + p.param + ": must be a positive integer")
		}
		*p.dest = &id
	}

	filter.OrderBy = q.Get("order_by")
	filter.Order = q.Get("order")

	return filter, nil
}
