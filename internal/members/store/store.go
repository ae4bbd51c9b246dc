package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories; a Tx exposes the same repositories bound to one
// transaction and refuses to nest.
type Store interface {
	Users() Users
	Roles() Roles
	Photos() Photos

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. A failed commit is returned as is.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.Identity, error)

	// GetUserByUsername matches case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.Identity, error)

	// CreateUser inserts u and returns the assigned id. A username clash is
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.Identity) (int64, error)

	UpdateKnownAs(ctx context.Context, id int64, knownAs string) error

	// ListWithRoles returns every user ordered by username.
	ListWithRoles(ctx context.Context) ([]domain.UserWithRoles, error)

	IsEmpty(ctx context.Context) (bool, error)

	// TouchLastActive records at as the user's last authenticated request.
	TouchLastActive(ctx context.Context, id int64, at time.Time) error
}

type Roles interface {
	// ListAll returns every role ordered by name.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// GetRoleByName matches case-insensitively.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	CreateRole(ctx context.Context, name string) (domain.Role, error)

	// ListUserRoles returns the role names held by userID, sorted.
	ListUserRoles(ctx context.Context, userID int64) ([]string, error)

	// AddUserRoles links userID to each named role. Existing links are kept.
	// A missing user or role is ErrNotFound.
	AddUserRoles(ctx context.Context, userID int64, names []string) error

	// RemoveUserRoles unlinks userID from each named role. Missing links are
	// ignored.
	RemoveUserRoles(ctx context.Context, userID int64, names []string) error
}

type Photos interface {
	// CreatePhoto inserts p and returns it with id and timestamps filled in.
	CreatePhoto(ctx context.Context, p domain.Photo) (domain.Photo, error)

	GetPhoto(ctx context.Context, id int64) (domain.Photo, error)

	// GetPhotoByPublicID resolves a blob key back to its photo.
	GetPhotoByPublicID(ctx context.Context, publicID string) (domain.Photo, error)

	// ListByUser returns userID's photos, oldest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.Photo, error)

	// ListForModeration returns photos in state joined with their owner,
	// oldest first.
	ListForModeration(ctx context.Context, state domain.PhotoState) ([]domain.PhotoForModeration, error)

	// UpdateState moves photoID of userID from one state to another. It is
	// ErrNotFound when no row matches all three, which covers a photo that
	// was deleted or changed state concurrently.
	UpdateState(ctx context.Context, userID, photoID int64, from, to domain.PhotoState) error

	// DeletePhoto removes photoID of userID and reports whether a row was
	// removed.
	DeletePhoto(ctx context.Context, userID, photoID int64) (bool, error)

	// ListStaleInState returns up to limit photos in state last updated
	// before cutoff.
	ListStaleInState(ctx context.Context, state domain.PhotoState, cutoff time.Time, limit int) ([]domain.Photo, error)

	CountInState(ctx context.Context, state domain.PhotoState) (int, error)
}
