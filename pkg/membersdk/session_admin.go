package membersdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// EditRoles sets username's complete role set and returns the result.
// Requires: Admin
func (s *Session) EditRoles(ctx context.Context, username string, roles []string) (*RolesResponse, error) {
	if roles == nil {
		roles = []string{}
	}
	body, headers, err := jsonBody(EditRolesRequest{RoleNames: roles})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/admin/roles/"+url.PathEscape(username), body, headers)
	if err != nil {
		return nil, err
	}

	var out RolesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRoles returns the role vocabulary.
// Requires: Admin
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/roles", nil, nil)
	if err != nil {
		return nil, err
	}

	var out ListRolesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRole adds a role to the vocabulary.
// Requires: Admin
func (s *Session) CreateRole(ctx context.Context, name string) (*RoleResponse, error) {
	body, headers, err := jsonBody(CreateRoleRequest{Name: name})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/admin/roles", body, headers)
	if err != nil {
		return nil, err
	}

	var out RoleResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsersWithRoles returns every member with their roles.
// Requires: Admin
func (s *Session) ListUsersWithRoles(ctx context.Context) ([]UserWithRolesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []UserWithRolesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingPhotos returns the moderation queue.
// Requires: Admin or Moderator
func (s *Session) PendingPhotos(ctx context.Context) ([]PhotoForModerationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/admin/photos/pending", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []PhotoForModerationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ApprovePhoto makes a photo publicly visible.
// Requires: Admin or Moderator
func (s *Session) ApprovePhoto(ctx context.Context, userID, photoID int64) (*ModerationResponse, error) {
	return s.moderate(ctx, http.MethodPost, fmt.Sprintf("/admin/photos/%d/%d/approve", userID, photoID))
}

// RejectPhoto marks a photo as rejected; the owner may resubmit it.
// Requires: Admin or Moderator
func (s *Session) RejectPhoto(ctx context.Context, userID, photoID int64) (*ModerationResponse, error) {
	return s.moderate(ctx, http.MethodPost, fmt.Sprintf("/admin/photos/%d/%d/reject", userID, photoID))
}

// DeletePhoto removes the stored image and the photo record.
// Requires: Admin or Moderator
func (s *Session) DeletePhoto(ctx context.Context, userID, photoID int64) (*ModerationResponse, error) {
	return s.moderate(ctx, http.MethodDelete, fmt.Sprintf("/admin/photos/%d/%d", userID, photoID))
}

func (s *Session) moderate(ctx context.Context, method, path string) (*ModerationResponse, error) {
	resp, err := s.doAuthRequest(ctx, method, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out ModerationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
