package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/store"
)

type txStore struct {
	tx  *sql.Tx
	now func() time.Time
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the owning Store keeps the pool.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error { return sql.ErrTxDone }

func (t *txStore) Users() store.Users   { return &usersRepo{db: t.tx, now: t.now} }
func (t *txStore) Roles() store.Roles   { return &rolesRepo{db: t.tx, now: t.now} }
func (t *txStore) Photos() store.Photos { return &photosRepo{db: t.tx, now: t.now} }

// ApplyMigrations is a no-op; migrations run on the Store before serving.
func (t *txStore) ApplyMigrations() error { return nil }
