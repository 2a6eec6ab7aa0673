// Package content provides HTTP handlers for the content collections.
// Every collection (programs, projects, publications, ...) exposes the same
// route shape, so the handlers are generic over the entity type and are
// registered once per collection.
package content

import (
	"errors"
	"log/slog"
	"net/http"

	"amal-cms/internal/common/pagination"
	"amal-cms/internal/domain/entity"
	"amal-cms/internal/handler/http/auth"
	contentUC "amal-cms/internal/usecase/content"
)

// Register registers all HTTP handlers for one content collection with the
// given mux. prefix is the collection root without a trailing slash, e.g.
// "/programs".
//
// Read routes serve the public site: list, search, tag and slug lookups only
// expose published items. The by-id read returns drafts too and is therefore
// admin-only, as is everything that writes.
func Register[T any, P contentUC.Record[T]](
	mux *http.ServeMux,
	prefix string,
	svc *contentUC.Service[T, P],
	paginationCfg pagination.Config,
	logger *slog.Logger,
) {
	mux.Handle("GET    "+prefix, ListHandler[T, P]{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET    "+prefix+"/search", SearchHandler[T, P]{Svc: svc})
	mux.Handle("GET    "+prefix+"/tags", TagsHandler[T, P]{Svc: svc})
	mux.Handle("GET    "+prefix+"/slug/{slug}", SlugHandler[T, P]{Svc: svc})
	mux.Handle("GET    "+prefix+"/", auth.Authz(GetHandler[T, P]{Svc: svc, Prefix: prefix + "/"}))

	mux.Handle("POST   "+prefix, auth.Authz(CreateHandler[T, P]{Svc: svc, Logger: logger}))
	mux.Handle("PUT    "+prefix+"/", auth.Authz(UpdateHandler[T, P]{Svc: svc, Prefix: prefix + "/"}))
	mux.Handle("DELETE "+prefix+"/", auth.Authz(DeleteHandler[T, P]{Svc: svc, Prefix: prefix + "/", Logger: logger}))
	mux.Handle("POST   "+prefix+"/{id}/publish", auth.Authz(PublishHandler[T, P]{Svc: svc}))

	// Counter routes are public: the site reports page views and file
	// downloads without authentication.
	mux.Handle("POST   "+prefix+"/{id}/views", ViewsHandler[T, P]{Svc: svc})
	mux.Handle("POST   "+prefix+"/{id}/downloads", DownloadsHandler[T, P]{Svc: svc})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, contentUC.ErrInvalidID),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, contentUC.ErrNotFound),
		errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
