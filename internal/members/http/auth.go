package http

import (
	"net/http"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

type RegisterHandler struct {
	CredentialService *service.CredentialService
}

// ServeHTTP handles member registration.
//
//	@Summary		Register a member
//	@Description	Creates a member account with no roles. Usernames are case-insensitive and stored lowercase.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.RegisterRequest			true	"Account details"
//	@Success		201		{object}	membersdk.UserResponse				"Created member"
//	@Failure		400		{object}	membersdk.ValidationErrorResponse	"Invalid body, bad field or username taken"
//	@Failure		500		{object}	membersdk.ErrorResponse				"Internal server error"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req membersdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	req.Username = service.NormalizeUsername(req.Username)
	if errs := membersdk.Validate(req); errs != nil {
		membersdk.WriteValidationError(w, "validation failed for some fields", errs)
		return
	}

	ident, err := h.CredentialService.RegisterProfile(r.Context(), req.Username, req.KnownAs, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("member registered", "user_id", ident.ID)
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(ident, nil))
}

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP exchanges credentials for an access token.
//
//	@Summary		Log in
//	@Description	Verifies the credentials and issues a 24 hour access token carrying the member's current roles.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.LoginRequest				true	"Credentials"
//	@Success		200		{object}	membersdk.LoginResponse				"Access token and profile"
//	@Failure		400		{object}	membersdk.ValidationErrorResponse	"Invalid body"
//	@Failure		401		{object}	membersdk.ErrorResponse				"Invalid username or password"
//	@Failure		500		{object}	membersdk.ErrorResponse				"Internal server error"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req membersdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if errs := membersdk.Validate(req); errs != nil {
		membersdk.WriteValidationError(w, "validation failed for some fields", errs)
		return
	}

	tok, ident, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, membersdk.LoginResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		User:      toUserResponse(ident, nil),
	})
}
