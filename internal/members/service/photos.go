package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/media"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

const maxDescriptionLen = 512

// PhotoService handles a member's own photos.
type PhotoService struct {
	Store store.Store
	Blobs media.BlobStore
}

// Upload stores an image for userID as a pending photo. The member's first
// photo becomes their main photo. Only the owner may upload.
func (s *PhotoService) Upload(
	ctx context.Context,
	actor authz.Principal,
	userID int64,
	description string,
	body io.Reader,
) (domain.Photo, error) {
	l := slogx.FromContext(ctx)

	if authz.EvaluateOwner(actor, userID) == authz.Deny {
		return domain.Photo{}, fmt.Errorf("%w: only the owner may upload", ErrAuthorizationDenied)
	}

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return domain.Photo{}, invalid("description", fmt.Sprintf("too long (max %d)", maxDescriptionLen))
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Photo{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return domain.Photo{}, fmt.Errorf("%w: lookup user: %w", ErrPersistence, err)
	}

	ext, image, err := media.SniffImage(body)
	if errors.Is(err, media.ErrUnsupportedType) {
		return domain.Photo{}, ErrUnsupportedMedia
	}
	if err != nil {
		return domain.Photo{}, invalid("file", "could not be read")
	}

	publicID := media.NewPublicID(ext)
	size, err := s.Blobs.Put(ctx, publicID, image)
	if err != nil {
		l.Error("failed to store photo blob", slog.String("public_id", publicID), slog.Any("error", err))
		return domain.Photo{}, fmt.Errorf("%w: %w", ErrBlobStore, err)
	}

	var photo domain.Photo
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Photos().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		photo, err = tx.Photos().CreatePhoto(ctx, domain.Photo{
			UserID:      userID,
			URL:         s.Blobs.URL(publicID),
			Description: description,
			PublicID:    &publicID,
			IsMain:      len(existing) == 0,
			State:       domain.PhotoPending,
		})
		return err
	})
	if err != nil {
		l.Error("failed to record photo, removing blob", slog.String("public_id", publicID), slog.Any("error", err))
		s.discardBlob(ctx, publicID)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Photo{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return domain.Photo{}, fmt.Errorf("%w: create photo: %w", ErrPersistence, err)
	}

	syncPending(ctx, s.Store)
	l.Info("photo uploaded",
		slog.Int64("user_id", userID),
		slog.Int64("photo_id", photo.ID),
		slog.Int64("bytes", size),
	)
	return photo, nil
}

// Resubmit moves one of the owner's rejected photos back to pending.
func (s *PhotoService) Resubmit(ctx context.Context, actor authz.Principal, userID, photoID int64) (domain.Photo, error) {
	if authz.EvaluateOwner(actor, userID) == authz.Deny {
		return domain.Photo{}, fmt.Errorf("%w: only the owner may resubmit", ErrAuthorizationDenied)
	}

	p, err := moveState(ctx, s.Store, userID, photoID, domain.PhotoPending)
	if err != nil {
		return domain.Photo{}, err
	}

	slogx.FromContext(ctx).Info("photo resubmitted", slog.Int64("user_id", userID), slog.Int64("photo_id", photoID))
	return p, nil
}

// CheckVisible reports whether viewer may fetch the blob stored under
// publicID. Approved photos are public; anything else is visible to its
// owner and to moderators only. A zero viewer is anonymous. Every refusal
// is ErrNotFound so unapproved photos cannot be discovered.
func (s *PhotoService) CheckVisible(ctx context.Context, viewer authz.Principal, publicID string) error {
	if media.ValidatePublicID(publicID) != nil {
		return fmt.Errorf("%w: blob %q", ErrNotFound, publicID)
	}

	p, err := s.Store.Photos().GetPhotoByPublicID(ctx, publicID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: blob %q", ErrNotFound, publicID)
	}
	if err != nil {
		return fmt.Errorf("%w: lookup photo: %w", ErrPersistence, err)
	}

	if p.IsApproved() ||
		authz.EvaluateOwner(viewer, p.UserID) == authz.Allow ||
		authz.Evaluate(viewer, authz.ModeratePhotoRole) == authz.Allow {
		return nil
	}
	return fmt.Errorf("%w: blob %q", ErrNotFound, publicID)
}

// discardBlob removes a blob whose record was never written. It outlives a
// cancelled request so the blob isn't orphaned.
func (s *PhotoService) discardBlob(ctx context.Context, publicID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultBlobTimeout)
	defer cancel()

	if _, err := s.Blobs.Delete(ctx, publicID); err != nil {
		slogx.FromContext(ctx).Error("failed to remove orphaned blob",
			slog.String("public_id", publicID), slog.Any("error", err))
	}
}
