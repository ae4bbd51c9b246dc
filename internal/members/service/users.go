package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
)

type UserService struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

// Profile is a member as seen by viewer.
type Profile struct {
	Identity domain.Identity
	Photos   []domain.Photo
}

// Get returns userID's profile. Other members only see approved photos.
func (s *UserService) Get(ctx context.Context, viewer authz.Principal, userID int64) (Profile, error) {
	ident, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return Profile{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("%w: lookup user: %w", ErrPersistence, err)
	}

	if ident.Roles, err = s.Store.Roles().ListUserRoles(ctx, userID); err != nil {
		return Profile{}, fmt.Errorf("%w: list user roles: %w", ErrPersistence, err)
	}

	photos, err := s.Store.Photos().ListByUser(ctx, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: list photos: %w", ErrPersistence, err)
	}

	owner := authz.EvaluateOwner(viewer, userID) == authz.Allow
	visible := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		if owner || p.IsApproved() {
			visible = append(visible, p)
		}
	}

	return Profile{Identity: ident, Photos: visible}, nil
}

// UpdateKnownAs changes the display name. Only the owner may do this.
func (s *UserService) UpdateKnownAs(ctx context.Context, actor authz.Principal, userID int64, knownAs string) error {
	if authz.EvaluateOwner(actor, userID) == authz.Deny {
		return fmt.Errorf("%w: only the owner may update a profile", ErrAuthorizationDenied)
	}

	knownAs = strings.TrimSpace(knownAs)
	if knownAs == "" {
		return invalid("known_as", "required")
	}
	if utf8.RuneCountInString(knownAs) > maxKnownAsLen {
		return invalid("known_as", fmt.Sprintf("too long (max %d)", maxKnownAsLen))
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().UpdateKnownAs(ctx, userID, knownAs)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	case err != nil:
		return fmt.Errorf("%w: update user: %w", ErrPersistence, err)
	}
	return nil
}

// ListWithRoles returns every member with their roles, ordered by username.
func (s *UserService) ListWithRoles(ctx context.Context) ([]domain.UserWithRoles, error) {
	users, err := s.Store.Users().ListWithRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", ErrPersistence, err)
	}
	return users, nil
}

// RecordActivity stamps userID as active now. A user removed while the
// request ran is ignored.
func (s *UserService) RecordActivity(ctx context.Context, userID int64) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	err := s.Store.Users().TouchLastActive(ctx, userID, now())
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: record activity: %w", ErrPersistence, err)
	}
	return nil
}
