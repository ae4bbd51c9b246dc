package http

import (
	"net/http"

	"github.com/aussiebroadwan/rendezvous/internal/members/service"
	"github.com/aussiebroadwan/rendezvous/pkg/httpx"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
)

type AdminUsersHandler struct {
	UserService *service.UserService
}

// ServeHTTP lists every member with their roles.
//
//	@Summary		List members with roles
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{array}		membersdk.UserWithRolesResponse	"Members ordered by username"
//	@Failure		401	{object}	membersdk.ErrorResponse			"Missing or invalid token"
//	@Failure		403	{object}	membersdk.ErrorResponse			"Requires the Admin role"
//	@Failure		500	{object}	membersdk.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/users [get].
func (h *AdminUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListWithRoles(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response := make([]membersdk.UserWithRolesResponse, len(users))
	for i, u := range users {
		roles := u.Roles
		if roles == nil {
			roles = []string{}
		}
		response[i] = membersdk.UserWithRolesResponse{ID: u.ID, Username: u.Username, Roles: roles}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
