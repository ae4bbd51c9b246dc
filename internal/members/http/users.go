package http

import (
	"net/http"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleGet returns a member profile.
//
//	@Summary		Get a member
//	@Description	Other members only see approved photos; the owner sees all of their photos with their state.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int						true	"Member id"
//	@Success		200	{object}	membersdk.UserResponse	"Member profile"
//	@Failure		401	{object}	membersdk.ErrorResponse	"Missing or invalid token"
//	@Failure		404	{object}	membersdk.ErrorResponse	"Member not found"
//	@Failure		500	{object}	membersdk.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	viewer, _ := httpx.PrincipalFromContext(r.Context())
	userID, ok := pathID(r, "id")
	if !ok {
		writeBadPath(w, "id")
		return
	}

	profile, err := h.UserService.Get(r.Context(), viewer, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(profile.Identity, profile.Photos))
}

// HandleUpdate changes the caller's display name.
//
//	@Summary		Update own profile
//	@Tags			Users
//	@Accept			json
//	@Param			id		path	int							true	"Member id (must be the caller)"
//	@Param			request	body	membersdk.UpdateUserRequest	true	"New profile fields"
//	@Success		204		"Updated"
//	@Failure		400		{object}	membersdk.ValidationErrorResponse	"Invalid body"
//	@Failure		401		{object}	membersdk.ErrorResponse				"Missing or invalid token"
//	@Failure		403		{object}	membersdk.ErrorResponse				"Not the account owner"
//	@Failure		404		{object}	membersdk.ErrorResponse				"Member not found"
//	@Failure		500		{object}	membersdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := httpx.PrincipalFromContext(r.Context())
	userID, ok := pathID(r, "id")
	if !ok {
		writeBadPath(w, "id")
		return
	}

	var req membersdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if errs := membersdk.Validate(req); errs != nil {
		membersdk.WriteValidationError(w, "validation failed for some fields", errs)
		return
	}

	if err := h.UserService.UpdateKnownAs(r.Context(), actor, userID, req.KnownAs); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
