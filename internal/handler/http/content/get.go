package content

import (
	"net/http"

	"amal-cms/internal/handler/http/pathutil"
	"amal-cms/internal/handler/http/respond"
	contentUC "amal-cms/internal/usecase/content"
)

// GetHandler returns one item by ID, including drafts. Registered behind
// the admin middleware; the public site reads by slug instead.
type GetHandler[T any, P contentUC.Record[T]] struct {
	Svc    *contentUC.Service[T, P]
	Prefix string
}

func (h GetHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, h.Prefix)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, item)
}
