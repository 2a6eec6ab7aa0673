package content

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"amal-cms/internal/handler/http/requestid"
	"amal-cms/internal/handler/http/respond"
	"amal-cms/internal/observability/logging"
	contentUC "amal-cms/internal/usecase/content"
)

// CreateHandler creates a new item from a JSON body. The body carries the
// entity fields; identity, counters and the publish pair are server-owned
// and ignored if sent.
type CreateHandler[T any, P contentUC.Record[T]] struct {
	Svc    *contentUC.Service[T, P]
	Logger *slog.Logger
}

func (h CreateHandler[T, P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	var e T
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.Svc.Create(r.Context(), &e)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	meta := P(created).Meta()
	logger.Info("content created",
		slog.Int64("id", meta.ID),
		slog.String("slug_en", meta.SlugEn),
		slog.String("request_id", requestid.FromContext(r.Context())))

	respond.JSON(w, http.StatusCreated, created)
}
