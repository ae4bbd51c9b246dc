package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/media"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/internal/members/store/drivers/sqlite"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/cryptox"
)

const testPassword = "correct-horse-battery"

var (
	testHasher = cryptox.NewPasswordHasher([]byte("test-pepper"))
	errBoom    = errors.New("boom")

	// A PNG signature is enough for type detection.
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "members.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func mustRegister(t *testing.T, st store.Store, username string) domain.Identity {
	t.Helper()
	creds := &CredentialService{Store: st, Hasher: testHasher}
	ident, err := creds.Register(context.Background(), username, testPassword)
	require.NoError(t, err)
	return ident
}

func mustSetRoles(t *testing.T, st store.Store, userID int64, roles ...string) {
	t.Helper()
	_, err := (&RoleService{Store: st}).Reconcile(context.Background(), userID, roles)
	require.NoError(t, err)
}

// addPhoto inserts a photo in state, with a blob when publicID is set.
func addPhoto(t *testing.T, st store.Store, blobs *fakeBlobs, userID int64, state domain.PhotoState, publicID string) domain.Photo {
	t.Helper()

	p := domain.Photo{UserID: userID, URL: "http://blobs.test/x", State: state}
	if publicID != "" {
		p.PublicID = &publicID
		if blobs != nil {
			blobs.put(publicID, pngBytes)
		}
	}
	created, err := st.Photos().CreatePhoto(context.Background(), p)
	require.NoError(t, err)
	return created
}

func photoState(t *testing.T, st store.Store, photoID int64) (domain.PhotoState, bool) {
	t.Helper()
	p, err := st.Photos().GetPhoto(context.Background(), photoID)
	if errors.Is(err, store.ErrNotFound) {
		return "", false
	}
	require.NoError(t, err)
	return p.State, true
}

func moderator(id int64) authz.Principal {
	return authz.Principal{ID: id, Name: "mod", Roles: []string{authz.RoleModerator}}
}

func member(id int64) authz.Principal {
	return authz.Principal{ID: id, Name: "member", Roles: []string{}}
}

// failingStore makes chosen WithTx calls fail after fn ran, which rolls the
// transaction back like a failed commit would.
type failingStore struct {
	store.Store

	mu     sync.Mutex
	calls  int
	failOn map[int]error // 1-based WithTx call number
}

func (f *failingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	f.mu.Lock()
	f.calls++
	injected := f.failOn[f.calls]
	f.mu.Unlock()

	return f.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		return injected
	})
}

// fakeBlobs is an in-memory media.BlobStore.
type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes []string

	deleteErr error
	// hang blocks Delete until its context ends.
	hang bool
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (f *fakeBlobs) put(id string, b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[id] = b
}

func (f *fakeBlobs) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[id]
	return ok
}

func (f *fakeBlobs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func (f *fakeBlobs) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deletes)
}

func (f *fakeBlobs) Put(ctx context.Context, id string, r io.Reader) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	f.put(id, b)
	return int64(len(b)), nil
}

func (f *fakeBlobs) Exists(ctx context.Context, id string) (bool, error) {
	return f.has(id), nil
}

func (f *fakeBlobs) Delete(ctx context.Context, id string) (media.DeleteResult, error) {
	f.mu.Lock()
	f.deletes = append(f.deletes, id)
	hang, deleteErr := f.hang, f.deleteErr
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if deleteErr != nil {
		return 0, deleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[id]; !ok {
		return media.DeleteNotFound, nil
	}
	delete(f.objects, id)
	return media.DeleteOK, nil
}

func (f *fakeBlobs) URL(id string) string {
	return "http://blobs.test/" + id
}

var _ media.BlobStore = (*fakeBlobs)(nil)
