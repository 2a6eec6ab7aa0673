package content

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"amal-cms/internal/handler/http/respond"
	"amal-cms/internal/pkg/search"
	"amal-cms/internal/repository"
	contentUC "amal-cms/internal/usecase/content"
)

// SearchHandler performs multi-keyword substring search over the bilingual
// text columns (AND semantics). Public: only published items match.
type SearchHandler[T any, P contentUC.Record[T]] struct {
	Svc *contentUC.Service[T, P]
}

func (h SearchHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse keyword parameter (required)
	kw := r.URL.Query().Get("keyword")
	if kw == "" {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("keyword query param required"))
		return
	}

	if _, err := search.ParseKeywords(kw, search.DefaultMaxKeywordCount, search.DefaultMaxKeywordLength); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid keyword: %w", err))
		return
	}

	filter := repository.SearchFilter{PublishedOnly: true}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid from: must be RFC 3339 (e.g. 2025-01-01T00:00:00Z)"))
			return
		}
		filter.From = &from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			respond.SafeError(w, http.StatusBadRequest,
				errors.New("invalid to: must be RFC 3339 (e.g. 2025-12-31T23:59:59Z)"))
			return
		}
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("invalid range: to must not be before from"))
		return
	}

	items, err := h.Svc.Search(r.Context(), kw, filter)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, items)
}
