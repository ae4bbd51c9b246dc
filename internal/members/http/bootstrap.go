package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the first administrator
//	@Description	Creates the first member and grants them the Admin role. Only available while a bootstrap token is configured and no member exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string								true	"Bootstrap token for authorization"
//	@Param			request				body		membersdk.BootstrapRequest			true	"Administrator account"
//	@Success		201					{object}	membersdk.BootstrapResponse			"Administrator created"
//	@Failure		400					{object}	membersdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	membersdk.ErrorResponse				"Missing or invalid bootstrap token"
//	@Failure		404					{object}	membersdk.ErrorResponse				"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	membersdk.ErrorResponse				"System already bootstrapped"
//	@Failure		500					{object}	membersdk.ErrorResponse				"Failed to create the administrator"
//	@Router			/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		membersdk.ErrNotFound.WithDescription("Bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		membersdk.ErrInvalidToken.WithDescription("Bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	// 3. Parse request body and validate
	var req membersdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	req.AdminUsername = service.NormalizeUsername(req.AdminUsername)
	if errs := membersdk.Validate(req); errs != nil {
		membersdk.WriteValidationError(w, "validation failed for some fields", errs)
		return
	}

	// 4. Perform bootstrap
	admin, err := h.BootstrapService.Bootstrap(
		r.Context(),
		token,
		req.AdminUsername,
		strings.TrimSpace(req.AdminKnownAs),
		req.AdminPassword,
	)
	switch {
	case errors.Is(err, service.ErrBootstrapAlready):
		membersdk.ErrConflict.WithDescription("System has already been bootstrapped").WriteError(w)
		return
	case errors.Is(err, service.ErrBootstrapDenied):
		membersdk.ErrInvalidToken.WithDescription("Invalid bootstrap token").WriteError(w)
		return
	case err != nil:
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, membersdk.BootstrapResponse{
		AdminUserID: admin.ID,
		Username:    admin.Username,
	})
}
