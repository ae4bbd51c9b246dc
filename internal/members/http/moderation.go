package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
)

type ModerationHandler struct {
	ModerationService *service.ModerationService
}

// HandlePending returns the moderation queue.
//
//	@Summary		List photos awaiting moderation
//	@Tags			Moderation
//	@Produce		json
//	@Success		200	{array}		membersdk.PhotoForModerationResponse	"Pending photos, oldest first"
//	@Failure		401	{object}	membersdk.ErrorResponse					"Missing or invalid token"
//	@Failure		403	{object}	membersdk.ErrorResponse					"Requires the Admin or Moderator role"
//	@Failure		500	{object}	membersdk.ErrorResponse					"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/photos/pending [get].
func (h *ModerationHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	photos, err := h.ModerationService.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response := make([]membersdk.PhotoForModerationResponse, len(photos))
	for i, p := range photos {
		response[i] = membersdk.PhotoForModerationResponse{
			ID:          p.ID,
			UserID:      p.UserID,
			UserKnownAs: p.UserKnownAs,
			URL:         p.URL,
			Description: p.Description,
			DateAdded:   p.DateAdded,
			IsMain:      p.IsMain,
			State:       string(p.State),
		}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleApprove approves a photo.
//
//	@Summary		Approve a photo
//	@Tags			Moderation
//	@Produce		json
//	@Param			userId	path		int								true	"Owner id"
//	@Param			photoId	path		int								true	"Photo id"
//	@Success		200		{object}	membersdk.ModerationResponse	"Photo is approved"
//	@Failure		401		{object}	membersdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403		{object}	membersdk.ErrorResponse			"Requires the Admin or Moderator role"
//	@Failure		404		{object}	membersdk.ErrorResponse			"Member or photo not found"
//	@Failure		500		{object}	membersdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/photos/{userId}/{photoId}/approve [post].
func (h *ModerationHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ModerationService.Approve)
}

// HandleReject rejects a photo.
//
//	@Summary		Reject a photo
//	@Description	Rejected photos stay stored and hidden until the owner resubmits them or housekeeping purges them.
//	@Tags			Moderation
//	@Produce		json
//	@Param			userId	path		int								true	"Owner id"
//	@Param			photoId	path		int								true	"Photo id"
//	@Success		200		{object}	membersdk.ModerationResponse	"Photo is rejected"
//	@Failure		401		{object}	membersdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403		{object}	membersdk.ErrorResponse			"Requires the Admin or Moderator role"
//	@Failure		404		{object}	membersdk.ErrorResponse			"Member or photo not found"
//	@Failure		409		{object}	membersdk.ErrorResponse			"Approved photos cannot be rejected"
//	@Failure		500		{object}	membersdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/photos/{userId}/{photoId}/reject [post].
func (h *ModerationHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ModerationService.Reject)
}

// HandleDelete deletes a photo and its blob.
//
//	@Summary		Delete a photo
//	@Description	Removes the stored blob and then the record. When the blob store fails the record is kept and the call can be retried.
//	@Tags			Moderation
//	@Produce		json
//	@Param			userId	path		int								true	"Owner id"
//	@Param			photoId	path		int								true	"Photo id"
//	@Success		200		{object}	membersdk.ModerationResponse	"Photo is deleted"
//	@Failure		401		{object}	membersdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403		{object}	membersdk.ErrorResponse			"Requires the Admin or Moderator role"
//	@Failure		404		{object}	membersdk.ErrorResponse			"Member or photo not found"
//	@Failure		500		{object}	membersdk.ErrorResponse			"Blob store or database failure"
//	@Security		BearerAuth
//	@Router			/admin/photos/{userId}/{photoId} [delete].
func (h *ModerationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, userID, photoID, ok := photoTarget(w, r)
	if !ok {
		return
	}

	if err := h.ModerationService.Delete(r.Context(), actor, userID, photoID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, membersdk.ModerationResponse{
		PhotoID: photoID,
		UserID:  userID,
		State:   "deleted",
	})
}

type moderateFunc func(ctx context.Context, actor authz.Principal, userID, photoID int64) (domain.Photo, error)

func (h *ModerationHandler) transition(w http.ResponseWriter, r *http.Request, fn moderateFunc) {
	actor, userID, photoID, ok := photoTarget(w, r)
	if !ok {
		return
	}

	p, err := fn(r.Context(), actor, userID, photoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toModerationResponse(p))
}

// photoTarget reads the principal and the {userId}/{photoId} path values.
func photoTarget(w http.ResponseWriter, r *http.Request) (authz.Principal, int64, int64, bool) {
	actor, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		membersdk.ErrInvalidToken.WriteError(w)
		return authz.Principal{}, 0, 0, false
	}
	userID, ok := pathID(r, "userId")
	if !ok {
		writeBadPath(w, "userId")
		return authz.Principal{}, 0, 0, false
	}
	photoID, ok := pathID(r, "photoId")
	if !ok {
		writeBadPath(w, "photoId")
		return authz.Principal{}, 0, 0, false
	}
	return actor, userID, photoID, true
}
