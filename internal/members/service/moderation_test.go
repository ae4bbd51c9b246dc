package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/metrics"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
)

type moderationFixture struct {
	st    store.Store
	blobs *fakeBlobs
	mod   *ModerationService
	alice domain.Identity
	bob   domain.Identity
	actor int64
}

func newModerationFixture(t *testing.T) moderationFixture {
	t.Helper()

	st := newTestStore(t)
	blobs := newFakeBlobs()
	modUser := mustRegister(t, st, "mod")
	mustSetRoles(t, st, modUser.ID, "Moderator")

	return moderationFixture{
		st:    st,
		blobs: blobs,
		mod:   &ModerationService{Store: st, Blobs: blobs, BlobTimeout: 50 * time.Millisecond},
		alice: mustRegister(t, st, "alice"),
		bob:   mustRegister(t, st, "bob"),
		actor: modUser.ID,
	}
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

	got, err := f.mod.Approve(ctx, moderator(f.actor), f.alice.ID, p.ID)
	require.NoError(t, err)
	require.True(t, got.IsApproved())

	state, _ := photoState(t, f.st, p.ID)
	require.Equal(t, domain.PhotoApproved, state)

	t.Run("idempotent", func(t *testing.T) {
		got, err := f.mod.Approve(ctx, moderator(f.actor), f.alice.ID, p.ID)
		require.NoError(t, err)
		require.True(t, got.IsApproved())
	})

	t.Run("cannot go back to pending or rejected", func(t *testing.T) {
		_, err := f.mod.Reject(ctx, moderator(f.actor), f.alice.ID, p.ID)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestApproveRequiresModerator(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

	_, err := f.mod.Approve(ctx, member(f.alice.ID), f.alice.ID, p.ID)
	require.ErrorIs(t, err, ErrAuthorizationDenied)

	state, _ := photoState(t, f.st, p.ID)
	require.Equal(t, domain.PhotoPending, state)
}

func TestApproveNotOwnedPhoto(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

	_, err := f.mod.Approve(ctx, moderator(f.actor), f.bob.ID, p.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.mod.Approve(ctx, moderator(f.actor), 9999, p.ID)
	require.ErrorIs(t, err, ErrNotFound)

	state, _ := photoState(t, f.st, p.ID)
	require.Equal(t, domain.PhotoPending, state)
}

func TestRejectThenApprove(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

	got, err := f.mod.Reject(ctx, moderator(f.actor), f.alice.ID, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PhotoRejected, got.State)

	pending, err := f.mod.ListPending(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	got, err = f.mod.Approve(ctx, moderator(f.actor), f.alice.ID, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PhotoApproved, got.State)
}

func TestListPending(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)

	pending, err := f.mod.ListPending(ctx)
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.Empty(t, pending)

	p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")
	addPhoto(t, f.st, f.blobs, f.bob.ID, domain.PhotoApproved, "photos/b.png")

	pending, err = f.mod.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, p.ID, pending[0].ID)
	require.Equal(t, "alice", pending[0].UserKnownAs)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("blob ok removes record", func(t *testing.T) {
		f := newModerationFixture(t)
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoApproved, "photos/a.png")

		require.NoError(t, f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID))

		_, exists := photoState(t, f.st, p.ID)
		require.False(t, exists)
		require.False(t, f.blobs.has("photos/a.png"))
	})

	t.Run("blob not found removes record", func(t *testing.T) {
		f := newModerationFixture(t)
		p := addPhoto(t, f.st, nil, f.alice.ID, domain.PhotoPending, "photos/missing.png")

		require.NoError(t, f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID))

		_, exists := photoState(t, f.st, p.ID)
		require.False(t, exists)
	})

	t.Run("blob error keeps record", func(t *testing.T) {
		f := newModerationFixture(t)
		f.blobs.deleteErr = errBoom
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

		err := f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID)
		require.ErrorIs(t, err, ErrBlobStore)

		state, exists := photoState(t, f.st, p.ID)
		require.True(t, exists)
		require.Equal(t, domain.PhotoPending, state)
	})

	t.Run("blob timeout keeps record", func(t *testing.T) {
		f := newModerationFixture(t)
		f.blobs.hang = true
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

		err := f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID)
		require.ErrorIs(t, err, ErrBlobStore)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		_, exists := photoState(t, f.st, p.ID)
		require.True(t, exists)
	})

	t.Run("no blob skips blob store", func(t *testing.T) {
		f := newModerationFixture(t)
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "")

		require.NoError(t, f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID))
		require.Empty(t, f.blobs.deletes)
	})

	t.Run("not owned", func(t *testing.T) {
		f := newModerationFixture(t)
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

		err := f.mod.Delete(ctx, moderator(f.actor), f.bob.ID, p.ID)
		require.ErrorIs(t, err, ErrNotFound)
		require.True(t, f.blobs.has("photos/a.png"))
	})

	t.Run("requires moderator", func(t *testing.T) {
		f := newModerationFixture(t)
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

		err := f.mod.Delete(ctx, member(f.alice.ID), f.alice.ID, p.ID)
		require.ErrorIs(t, err, ErrAuthorizationDenied)
		require.Empty(t, f.blobs.deletes)
	})

	t.Run("commit failure is a persistence error and can be retried", func(t *testing.T) {
		f := newModerationFixture(t)
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

		failing := &ModerationService{
			Store: &failingStore{Store: f.st, failOn: map[int]error{1: errBoom}},
			Blobs: f.blobs,
		}
		err := failing.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID)
		require.ErrorIs(t, err, ErrPersistence)

		_, exists := photoState(t, f.st, p.ID)
		require.True(t, exists)

		require.NoError(t, f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID))
		_, exists = photoState(t, f.st, p.ID)
		require.False(t, exists)
	})

	t.Run("already gone is success", func(t *testing.T) {
		f := newModerationFixture(t)
		require.NoError(t, f.mod.remove(ctx, f.alice.ID, 12345, ""))
	})
}

func TestConcurrentApprove(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/a.png")

	errs := make([]error, 16)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.mod.Approve(ctx, moderator(f.actor), f.alice.ID, p.ID)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "approve %d", i)
	}
	state, exists := photoState(t, f.st, p.ID)
	require.True(t, exists)
	require.Equal(t, domain.PhotoApproved, state)
}

func TestConcurrentDeleteAndApprove(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)

	for i := range 10 {
		publicID := fmt.Sprintf("photos/race-%d.png", i)
		p := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, publicID)

		var (
			wg                    sync.WaitGroup
			deleteErr, approveErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			deleteErr = f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, p.ID)
		}()
		go func() {
			defer wg.Done()
			_, approveErr = f.mod.Approve(ctx, moderator(f.actor), f.alice.ID, p.ID)
		}()
		wg.Wait()

		require.NoError(t, deleteErr)
		if approveErr != nil {
			require.ErrorIs(t, approveErr, ErrNotFound)
		}

		_, exists := photoState(t, f.st, p.ID)
		require.False(t, exists, publicID)
		require.False(t, f.blobs.has(publicID), publicID)
	}
}

func pendingGauge(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.PendingPhotos.Write(&m))
	return m.GetGauge().GetValue()
}

func TestPendingGaugeFollowsChanges(t *testing.T) {
	ctx := context.Background()
	f := newModerationFixture(t)
	photos := &PhotoService{Store: f.st, Blobs: f.blobs}
	owner := member(f.alice.ID)

	first, err := photos.Upload(ctx, owner, f.alice.ID, "", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	second, err := photos.Upload(ctx, owner, f.alice.ID, "", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.Equal(t, 2.0, pendingGauge(t))

	_, err = f.mod.Approve(ctx, moderator(f.actor), f.alice.ID, first.ID)
	require.NoError(t, err)
	require.Equal(t, 1.0, pendingGauge(t))

	_, err = f.mod.Reject(ctx, moderator(f.actor), f.alice.ID, second.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, pendingGauge(t))

	_, err = photos.Resubmit(ctx, owner, f.alice.ID, second.ID)
	require.NoError(t, err)
	require.Equal(t, 1.0, pendingGauge(t))

	require.NoError(t, f.mod.Delete(ctx, moderator(f.actor), f.alice.ID, second.ID))
	require.Equal(t, 0.0, pendingGauge(t))

	// A purge recounts too, even though rejected photos are not pending.
	stale := addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/p.png")
	_, err = f.mod.Reject(ctx, moderator(f.actor), f.alice.ID, stale.ID)
	require.NoError(t, err)
	addPhoto(t, f.st, f.blobs, f.alice.ID, domain.PhotoPending, "photos/q.png")
	require.Equal(t, 0.0, pendingGauge(t))

	p, err := f.st.Photos().GetPhoto(ctx, stale.ID)
	require.NoError(t, err)
	require.NoError(t, f.mod.purge(ctx, p))
	require.Equal(t, 1.0, pendingGauge(t))
}
