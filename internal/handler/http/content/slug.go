package content

import (
	"errors"
	"net/http"

	"amal-cms/internal/handler/http/respond"
	contentUC "amal-cms/internal/usecase/content"
)

// SlugHandler is the public detail lookup. One slug matches either locale,
// and only published items resolve.
type SlugHandler[T any, P contentUC.Record[T]] struct {
	Svc *contentUC.Service[T, P]
}

func (h SlugHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("slug is required"))
		return
	}

	item, err := h.Svc.GetBySlug(r.Context(), slug)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, item)
}
