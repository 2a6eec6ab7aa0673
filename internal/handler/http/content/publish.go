package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"amal-cms/internal/handler/http/respond"
	contentUC "amal-cms/internal/usecase/content"
)

// PublishHandler flips an item's publish state. The publish timestamp is
// owned by the storage layer: publishing stamps it, unpublishing clears it.
type PublishHandler[T any, P contentUC.Record[T]] struct {
	Svc *contentUC.Service[T, P]
}

func (h PublishHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid id"))
		return
	}

	var req struct {
		Published *bool `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Published == nil {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("published field is required"))
		return
	}

	updated, err := h.Svc.Publish(r.Context(), id, *req.Published)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
