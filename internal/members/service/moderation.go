package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/media"
	"github.com/aussiebroadwan/rendezvous/internal/members/metrics"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

// DefaultBlobTimeout bounds a single blob delete call.
const DefaultBlobTimeout = 10 * time.Second

// stateAttempts is how often a state change is retried after losing a race
// with another writer.
const stateAttempts = 3

// ModerationService moves photos through pending, approved and rejected,
// and deletes them. A photo's blob is removed before its record; a failed
// blob delete leaves the record in place.
type ModerationService struct {
	Store store.Store
	Blobs media.BlobStore

	// BlobTimeout defaults to DefaultBlobTimeout.
	BlobTimeout time.Duration
}

// ListPending returns the moderation queue, oldest first.
func (s *ModerationService) ListPending(ctx context.Context) ([]domain.PhotoForModeration, error) {
	photos, err := s.Store.Photos().ListForModeration(ctx, domain.PhotoPending)
	if err != nil {
		return nil, fmt.Errorf("%w: list pending photos: %w", ErrPersistence, err)
	}
	metrics.PendingPhotos.Set(float64(len(photos)))
	return photos, nil
}

// Approve makes photoID of userID publicly visible. Approving an approved
// photo is a no-op.
func (s *ModerationService) Approve(ctx context.Context, actor authz.Principal, userID, photoID int64) (domain.Photo, error) {
	return s.moderate(ctx, actor, "approve", userID, photoID, domain.PhotoApproved)
}

// Reject marks photoID of userID as rejected. The owner may resubmit it.
func (s *ModerationService) Reject(ctx context.Context, actor authz.Principal, userID, photoID int64) (domain.Photo, error) {
	return s.moderate(ctx, actor, "reject", userID, photoID, domain.PhotoRejected)
}

// Delete removes photoID of userID: the blob first, then the record. When
// the blob delete fails or times out the record is kept and ErrBlobStore is
// returned; the whole call can simply be retried. A photo already gone
// counts as deleted.
func (s *ModerationService) Delete(ctx context.Context, actor authz.Principal, userID, photoID int64) error {
	if err := requireModerator(actor); err != nil {
		metrics.PhotoModerationTotal.WithLabelValues("delete", "denied").Inc()
		return err
	}

	if _, err := ownedPhoto(ctx, s.Store, userID, photoID); err != nil {
		metrics.PhotoModerationTotal.WithLabelValues("delete", outcome(err)).Inc()
		return err
	}

	err := s.remove(ctx, userID, photoID, "")
	metrics.PhotoModerationTotal.WithLabelValues("delete", outcome(err)).Inc()
	if err == nil {
		slogx.FromContext(ctx).Info("photo deleted",
			slog.Int64("moderator_id", actor.ID),
			slog.Int64("user_id", userID),
			slog.Int64("photo_id", photoID),
		)
	}
	return err
}

// errStateChanged is returned by purge when the photo left the state it was
// listed in.
var errStateChanged = errors.New("photo state changed")

// purge deletes a photo without an actor, for housekeeping. It only deletes
// while the photo is still in the state it was listed in.
func (s *ModerationService) purge(ctx context.Context, p domain.Photo) error {
	err := s.remove(ctx, p.UserID, p.ID, p.State)
	if errors.Is(err, errStateChanged) {
		return err
	}
	metrics.PhotoModerationTotal.WithLabelValues("purge", outcome(err)).Inc()
	return err
}

func (s *ModerationService) moderate(
	ctx context.Context,
	actor authz.Principal,
	action string,
	userID, photoID int64,
	to domain.PhotoState,
) (domain.Photo, error) {
	if err := requireModerator(actor); err != nil {
		metrics.PhotoModerationTotal.WithLabelValues(action, "denied").Inc()
		return domain.Photo{}, err
	}

	p, err := moveState(ctx, s.Store, userID, photoID, to)
	metrics.PhotoModerationTotal.WithLabelValues(action, outcome(err)).Inc()
	if err != nil {
		return domain.Photo{}, err
	}

	slogx.FromContext(ctx).Info("photo moderated",
		slog.String("action", action),
		slog.Int64("moderator_id", actor.ID),
		slog.Int64("user_id", userID),
		slog.Int64("photo_id", photoID),
	)
	return p, nil
}

// remove runs the blob-then-record delete. A non-empty onlyIn refuses to
// touch a photo in any other state.
func (s *ModerationService) remove(ctx context.Context, userID, photoID int64, onlyIn domain.PhotoState) error {
	l := slogx.FromContext(ctx).With(slog.Int64("user_id", userID), slog.Int64("photo_id", photoID))

	// Re-read right before touching the blob; a concurrent delete may have
	// finished since the caller looked.
	p, err := s.Store.Photos().GetPhoto(ctx, photoID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && p.UserID != userID) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read photo: %w", ErrPersistence, err)
	}
	if onlyIn != "" && p.State != onlyIn {
		return errStateChanged
	}

	if p.PublicID != nil {
		res, err := s.deleteBlob(ctx, *p.PublicID)
		if err != nil {
			l.Error("blob delete failed, keeping photo record",
				slog.String("public_id", *p.PublicID), slog.Any("error", err))
			return fmt.Errorf("%w: %w", ErrBlobStore, err)
		}
		l.Debug("blob deleted", slog.String("public_id", *p.PublicID), slog.String("result", res.String()))
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Zero rows means another request got here first.
		_, err := tx.Photos().DeletePhoto(ctx, userID, photoID)
		return err
	})
	if err != nil {
		l.Error("photo record delete failed", slog.Any("error", err))
		return fmt.Errorf("%w: delete photo: %w", ErrPersistence, err)
	}
	syncPending(ctx, s.Store)
	return nil
}

// deleteBlob calls the blob store under BlobTimeout. The call is abandoned
// at the deadline even if the store ignores ctx.
func (s *ModerationService) deleteBlob(ctx context.Context, publicID string) (media.DeleteResult, error) {
	timeout := s.BlobTimeout
	if timeout <= 0 {
		timeout = DefaultBlobTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		res media.DeleteResult
		err error
	}
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		res, err := s.Blobs.Delete(ctx, publicID)
		done <- result{res, err}
	}()

	select {
	case <-ctx.Done():
		metrics.ObserveBlobDelete(start, "timeout")
		return 0, fmt.Errorf("delete %s: %w", publicID, ctx.Err())
	case r := <-done:
		switch {
		case r.err != nil && errors.Is(r.err, context.DeadlineExceeded):
			metrics.ObserveBlobDelete(start, "timeout")
		case r.err != nil:
			metrics.ObserveBlobDelete(start, "error")
		default:
			metrics.ObserveBlobDelete(start, r.res.String())
		}
		return r.res, r.err
	}
}

func requireModerator(actor authz.Principal) error {
	if authz.Evaluate(actor, authz.ModeratePhotoRole) == authz.Deny {
		return fmt.Errorf("%w: requires %s", ErrAuthorizationDenied, authz.ModeratePhotoRole)
	}
	return nil
}

// ownedPhoto finds photoID among userID's photos. A missing user and a
// photo belonging to someone else are both ErrNotFound.
func ownedPhoto(ctx context.Context, st store.Store, userID, photoID int64) (domain.Photo, error) {
	if _, err := st.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Photo{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return domain.Photo{}, fmt.Errorf("%w: lookup user: %w", ErrPersistence, err)
	}

	photos, err := st.Photos().ListByUser(ctx, userID)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("%w: list photos: %w", ErrPersistence, err)
	}
	for _, p := range photos {
		if p.ID == photoID {
			return p, nil
		}
	}
	return domain.Photo{}, fmt.Errorf("%w: photo %d of user %d", ErrNotFound, photoID, userID)
}

// moveState moves an owned photo to state to. The update is guarded on the
// state it was read in; on a lost race the photo is re-read and the move
// retried.
func moveState(ctx context.Context, st store.Store, userID, photoID int64, to domain.PhotoState) (domain.Photo, error) {
	p, err := ownedPhoto(ctx, st, userID, photoID)
	if err != nil {
		return domain.Photo{}, err
	}

	for range stateAttempts {
		if p.State == to {
			return p, nil
		}
		if !p.State.CanTransition(to) {
			return domain.Photo{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, p.State, to)
		}

		from := p.State
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Photos().UpdateState(ctx, userID, photoID, from, to)
		})
		if err == nil {
			p.State = to
			syncPending(ctx, st)
			return p, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return domain.Photo{}, fmt.Errorf("%w: update photo state: %w", ErrPersistence, err)
		}

		p, err = st.Photos().GetPhoto(ctx, photoID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && p.UserID != userID) {
			return domain.Photo{}, fmt.Errorf("%w: photo %d of user %d", ErrNotFound, photoID, userID)
		}
		if err != nil {
			return domain.Photo{}, fmt.Errorf("%w: read photo: %w", ErrPersistence, err)
		}
	}
	return domain.Photo{}, fmt.Errorf("%w: photo %d kept changing state", ErrPersistence, photoID)
}

// syncPending recounts the moderation queue for the PendingPhotos gauge.
func syncPending(ctx context.Context, st store.Store) {
	n, err := st.Photos().CountInState(ctx, domain.PhotoPending)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to count pending photos", slog.Any("error", err))
		return
	}
	metrics.PendingPhotos.Set(float64(n))
}

// outcome is the metrics label for a moderation result.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAuthorizationDenied):
		return "denied"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrBlobStore):
		return "blob_error"
	default:
		return "error"
	}
}
