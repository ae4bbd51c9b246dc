package http

import (
	"net/http"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

type RolesHandler struct {
	RoleService *service.RoleService
}

// HandleEdit replaces a member's role set.
//
//	@Summary		Set a member's roles
//	@Description	Reconciles the member's roles to exactly the given set. Names match existing roles case-insensitively. Tokens issued before the change keep their old roles until they expire.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			username	path		string								true	"Username"
//	@Param			request		body		membersdk.EditRolesRequest			true	"Desired roles"
//	@Success		200			{object}	membersdk.RolesResponse				"Resulting roles"
//	@Failure		400			{object}	membersdk.ValidationErrorResponse	"Unknown role or invalid body"
//	@Failure		401			{object}	membersdk.ErrorResponse				"Missing or invalid token"
//	@Failure		403			{object}	membersdk.ErrorResponse				"Requires the Admin role"
//	@Failure		404			{object}	membersdk.ErrorResponse				"Member not found"
//	@Failure		409			{object}	membersdk.ErrorResponse				"Partially applied; retry"
//	@Failure		500			{object}	membersdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/roles/{username} [post].
func (h *RolesHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var req membersdk.EditRolesRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if errs := membersdk.Validate(req); errs != nil {
		membersdk.WriteValidationError(w, "validation failed for some fields", errs)
		return
	}

	username := r.PathValue("username")
	roles, err := h.RoleService.ReconcileByUsername(r.Context(), username, req.RoleNames)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("roles updated", "username", username, "roles", roles)
	httpx.WriteJSON(w, http.StatusOK, membersdk.RolesResponse{Roles: roles})
}

// HandleList lists the role vocabulary.
//
//	@Summary		List all roles
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	membersdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	membersdk.ErrorResponse		"Missing or invalid token"
//	@Failure		403	{object}	membersdk.ErrorResponse		"Requires the Admin role"
//	@Failure		500	{object}	membersdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RoleService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response := membersdk.ListRolesResponse{
		Roles: make([]membersdk.RoleResponse, len(roles)),
	}
	for i, role := range roles {
		response.Roles[i] = membersdk.RoleResponse{
			ID:      role.ID,
			Name:    role.Name,
			Builtin: role.Builtin,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleCreate adds a role to the vocabulary.
//
//	@Summary		Create a role
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		membersdk.CreateRoleRequest			true	"Role name"
//	@Success		201		{object}	membersdk.RoleResponse				"Created role"
//	@Failure		400		{object}	membersdk.ValidationErrorResponse	"Invalid name"
//	@Failure		401		{object}	membersdk.ErrorResponse				"Missing or invalid token"
//	@Failure		403		{object}	membersdk.ErrorResponse				"Requires the Admin role"
//	@Failure		409		{object}	membersdk.ErrorResponse				"Role already exists"
//	@Failure		500		{object}	membersdk.ErrorResponse				"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req membersdk.CreateRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if errs := membersdk.Validate(req); errs != nil {
		membersdk.WriteValidationError(w, "validation failed for some fields", errs)
		return
	}

	role, err := h.RoleService.CreateRole(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, membersdk.RoleResponse{
		ID:      role.ID,
		Name:    role.Name,
		Builtin: role.Builtin,
	})
}
