package media

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Smallest valid PNG header followed by filler.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "blobs"), "http://localhost:8080/media/")
	require.NoError(t, err)
	return s
}

func TestLocalStore_PutExistsDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := NewPublicID(".png")

	n, err := s.Put(ctx, id, bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.EqualValues(t, len(pngBytes), n)

	ok, err := s.Exists(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)

	res, err := s.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, DeleteOK, res)

	res, err = s.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, DeleteNotFound, res)

	ok, err = s.Exists(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLocalStore_PutLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "photos/cancelled.png", bytes.NewReader(pngBytes))
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(filepath.Join(s.basePath, "photos"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLocalStore_DeleteHonoursContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The remove goroutine may still win the select.
	res, err := s.Delete(ctx, "photos/missing.png")
	if err != nil {
		require.ErrorIs(t, err, context.Canceled)
	} else {
		require.Equal(t, DeleteNotFound, res)
	}
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"", "../escape", "photos/../../x", "/etc/passwd", `photos\x`, "photos//x", "./x"} {
		_, err := s.Put(ctx, id, strings.NewReader("x"))
		require.ErrorIs(t, err, ErrInvalidPublicID, id)
		_, err = s.Delete(ctx, id)
		require.ErrorIs(t, err, ErrInvalidPublicID, id)
	}
}

func TestLocalStore_URLAndHandler(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.Equal(t, "http://localhost:8080/media/photos/a.png", s.URL("photos/a.png"))

	_, err := s.Put(ctx, "photos/a.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	http.StripPrefix("/media", s.Handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/photos/a.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, pngBytes, rec.Body.Bytes())

	for _, path := range []string{"/media/", "/media/photos", "/media/photos/"} {
		rec := httptest.NewRecorder()
		http.StripPrefix("/media", s.Handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		require.NotContains(t, rec.Body.String(), "a.png", path)
	}
}

func TestSniffImage(t *testing.T) {
	ext, body, err := SniffImage(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.Equal(t, ".png", ext)

	replayed, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, pngBytes, replayed)

	_, _, err = SniffImage(strings.NewReader("#!/bin/sh\necho hi\n"))
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, _, err = SniffImage(strings.NewReader(""))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestNewPublicID(t *testing.T) {
	a := NewPublicID("jpg")
	b := NewPublicID(".jpg")

	require.True(t, strings.HasPrefix(a, "photos/"))
	require.True(t, strings.HasSuffix(a, ".jpg"))
	require.NotEqual(t, a, b)
	require.NoError(t, ValidatePublicID(a))
}

func TestDeleteResultString(t *testing.T) {
	require.Equal(t, "ok", DeleteOK.String())
	require.Equal(t, "not_found", DeleteNotFound.String())
}
