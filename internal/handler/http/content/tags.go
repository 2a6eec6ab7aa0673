package content

import (
	"errors"
	"net/http"

	"amal-cms/internal/handler/http/respond"
	contentUC "amal-cms/internal/usecase/content"
)

// TagsHandler returns published items that share at least one tag with the
// query, matching against both the English and Arabic tag sets.
type TagsHandler[T any, P contentUC.Record[T]] struct {
	Svc *contentUC.Service[T, P]
}

func (h TagsHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags := r.URL.Query()["tag"]
	if len(tags) == 0 {
		respond.SafeError(w, http.StatusBadRequest,
			errors.New("tag query param required"))
		return
	}

	items, err := h.Svc.FindByTags(r.Context(), tags, true)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, items)
}
