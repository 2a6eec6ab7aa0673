package content

import (
	"errors"
	"net/http"
	"strconv"

	"amal-cms/internal/handler/http/respond"
	contentUC "amal-cms/internal/usecase/content"
)

// counterResponse is the JSON body returned by the counter endpoints.
type counterResponse struct {
	Count int64 `json:"count"`
}

// ViewsHandler records one page view and returns the new counter value.
// Public: the site calls it for every detail-page render.
type ViewsHandler[T any, P contentUC.Record[T]] struct {
	Svc *contentUC.Service[T, P]
}

func (h ViewsHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid id"))
		return
	}

	views, err := h.Svc.IncrementViews(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, counterResponse{Count: views})
}

// DownloadsHandler records one file download for collections that track
// them (publications). Collections without a download counter answer 400.
type DownloadsHandler[T any, P contentUC.Record[T]] struct {
	Svc *contentUC.Service[T, P]
}

func (h DownloadsHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid id"))
		return
	}

	downloads, err := h.Svc.IncrementDownloads(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, counterResponse{Count: downloads})
}
