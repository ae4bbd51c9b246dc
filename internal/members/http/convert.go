package http

import (
	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/pkg/membersdk"
)

func toUserResponse(ident domain.Identity, photos []domain.Photo) membersdk.UserResponse {
	roles := ident.Roles
	if roles == nil {
		roles = []string{}
	}
	resp := membersdk.UserResponse{
		ID:        ident.ID,
		Username:  ident.Username,
		KnownAs:   ident.KnownAs,
		Roles:     roles,
		CreatedAt: ident.CreatedAt,
	}
	if !ident.LastActive.IsZero() {
		at := ident.LastActive
		resp.LastActive = &at
	}
	for _, p := range photos {
		resp.Photos = append(resp.Photos, toPhotoResponse(p))
	}
	return resp
}

func toPhotoResponse(p domain.Photo) membersdk.PhotoResponse {
	return membersdk.PhotoResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		URL:         p.URL,
		Description: p.Description,
		IsMain:      p.IsMain,
		IsApproved:  p.IsApproved(),
		State:       string(p.State),
		CreatedAt:   p.CreatedAt,
	}
}

func toModerationResponse(p domain.Photo) membersdk.ModerationResponse {
	return membersdk.ModerationResponse{
		PhotoID: p.ID,
		UserID:  p.UserID,
		State:   string(p.State),
	}
}
