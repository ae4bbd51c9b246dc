package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
)

// MediaHandler serves photo blobs. Approved photos are public; pending and
// rejected ones only reach their owner and moderators. Everything else is a
// plain 404.
type MediaHandler struct {
	PhotoService *service.PhotoService
	Files        http.Handler
}

// ServeHTTP expects the /media/ prefix to be stripped already.
//
//	@Summary		Fetch a photo
//	@Description	Approved photos need no token. Pending and rejected photos are only served to their owner or a moderator.
//	@Tags			Media
//	@Produce		octet-stream
//	@Param			publicId	path		string					true	"Blob key, e.g. photos/{uuid}.png"
//	@Success		200			{file}		file					"Image bytes"
//	@Failure		404			{string}	string					"Not found"
//	@Failure		500			{object}	membersdk.ErrorResponse	"Internal server error"
//	@Router			/media/{publicId} [get].
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer, _ := httpx.PrincipalFromContext(ctx)
	publicID := strings.TrimPrefix(r.URL.Path, "/")

	if err := h.PhotoService.CheckVisible(ctx, viewer, publicID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	h.Files.ServeHTTP(w, r)
}
