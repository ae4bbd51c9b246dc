package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 1 << 20

type PhotosHandler struct {
	PhotoService   *service.PhotoService
	MaxUploadBytes int64
}

// HandleUpload stores a new photo for the caller.
//
//	@Summary		Upload a photo
//	@Description	Accepts a jpeg, png, gif or webp image as the "file" form field. The photo starts pending moderation; a member's first photo becomes their main photo.
//	@Tags			Photos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		int								true	"Member id (must be the caller)"
//	@Param			file		formData	file							true	"Image"
//	@Param			description	formData	string							false	"Caption"
//	@Success		201			{object}	membersdk.PhotoResponse			"Stored photo"
//	@Failure		400			{object}	membersdk.ValidationErrorResponse	"Missing file or invalid description"
//	@Failure		401			{object}	membersdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403			{object}	membersdk.ErrorResponse			"Not the account owner"
//	@Failure		404			{object}	membersdk.ErrorResponse			"Member not found"
//	@Failure		413			{object}	membersdk.ErrorResponse			"Upload too large"
//	@Failure		415			{object}	membersdk.ErrorResponse			"Not a supported image"
//	@Failure		500			{object}	membersdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/users/{id}/photos [post].
func (h *PhotosHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	actor, _ := httpx.PrincipalFromContext(r.Context())
	userID, ok := pathID(r, "id")
	if !ok {
		writeBadPath(w, "id")
		return
	}

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			membersdk.NewAPIError(http.StatusRequestEntityTooLarge, membersdk.ErrorCodeInvalidRequest,
				"upload exceeds "+strconv.FormatInt(limit, 10)+" bytes").WriteError(w)
			return
		}
		membersdk.ErrInvalidRequest.WithDescription("body must be multipart/form-data").WriteError(w)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		membersdk.WriteValidationError(w, "file is required", map[string]string{"file": "required"})
		return
	}
	defer file.Close()

	photo, err := h.PhotoService.Upload(r.Context(), actor, userID, r.FormValue("description"), file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPhotoResponse(photo))
}

// HandleResubmit puts a rejected photo back into the moderation queue.
//
//	@Summary		Resubmit a rejected photo
//	@Tags			Photos
//	@Produce		json
//	@Param			id		path		int						true	"Member id (must be the caller)"
//	@Param			photoId	path		int						true	"Photo id"
//	@Success		200		{object}	membersdk.ModerationResponse	"Photo is pending again"
//	@Failure		401		{object}	membersdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403		{object}	membersdk.ErrorResponse			"Not the account owner"
//	@Failure		404		{object}	membersdk.ErrorResponse			"Photo not found"
//	@Failure		409		{object}	membersdk.ErrorResponse			"Approved photos cannot be resubmitted"
//	@Failure		500		{object}	membersdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/users/{id}/photos/{photoId}/resubmit [post].
func (h *PhotosHandler) HandleResubmit(w http.ResponseWriter, r *http.Request) {
	actor, _ := httpx.PrincipalFromContext(r.Context())
	userID, ok := pathID(r, "id")
	if !ok {
		writeBadPath(w, "id")
		return
	}
	photoID, ok := pathID(r, "photoId")
	if !ok {
		writeBadPath(w, "photoId")
		return
	}

	photo, err := h.PhotoService.Resubmit(r.Context(), actor, userID, photoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toModerationResponse(photo))
}
