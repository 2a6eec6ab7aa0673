package content

import (
	"encoding/json"
	"errors"
	"net/http"

	"amal-cms/internal/handler/http/pathutil"
	"amal-cms/internal/handler/http/respond"
	contentUC "amal-cms/internal/usecase/content"
)

// UpdateHandler applies a partial update from a JSON object of column
// names to values. Unknown columns and server-owned columns (counters,
// publish pair, timestamps) are rejected by the service.
type UpdateHandler[T any, P contentUC.Record[T]] struct {
	Svc    *contentUC.Service[T, P]
	Prefix string
}

func (h UpdateHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, h.Prefix)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if len(fields) == 0 {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("at least one field is required"))
		return
	}

	updated, err := h.Svc.Update(r.Context(), id, fields)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
