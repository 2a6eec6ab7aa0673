package content

import (
	"log/slog"
	"net/http"

	"amal-cms/internal/handler/http/pathutil"
	"amal-cms/internal/handler/http/respond"
	"amal-cms/internal/observability/logging"
	contentUC "amal-cms/internal/usecase/content"
)

// DeleteHandler removes an item permanently. Returns 204 on success and
// 404 when the item never existed or is already gone.
type DeleteHandler[T any, P contentUC.Record[T]] struct {
	Svc    *contentUC.Service[T, P]
	Prefix string
	Logger *slog.Logger
}

func (h DeleteHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, h.Prefix)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	logging.WithRequestID(r.Context(), h.Logger).Info("content deleted",
		slog.Int64("id", id))

	w.WriteHeader(http.StatusNoContent)
}
