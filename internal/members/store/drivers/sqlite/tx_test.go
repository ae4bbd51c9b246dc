package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/stretchr/testify/require"
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newStore(db), mock
}

func TestWithTx_CommitFailure(t *testing.T) {
	st, mock := setupMockStore(t)
	commitErr := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE photos SET state`).
		WithArgs("approved", sqlmock.AnyArg(), int64(3), int64(1), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(commitErr)

	err := st.WithTx(context.Background(), func(tx store.Tx) error {
		return tx.Photos().UpdateState(context.Background(), 1, 3, domain.PhotoPending, domain.PhotoApproved)
	})
	require.ErrorIs(t, err, commitErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginFailure(t *testing.T) {
	st, mock := setupMockStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err := st.WithTx(context.Background(), func(store.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	st, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM photos`).
		WithArgs(int64(3), int64(1)).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := st.WithTx(context.Background(), func(tx store.Tx) error {
		_, err := tx.Photos().DeletePhoto(context.Background(), 1, 3)
		return err
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapNotFound(t *testing.T) {
	st, mock := setupMockStore(t)

	mock.ExpectQuery(`SELECT id, username`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "known_as", "password_hash", "created_at", "updated_at", "last_active"}))

	_, err := st.Users().GetUserByID(context.Background(), 42)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
