package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps blobs on the local filesystem under a base directory.
type LocalStore struct {
	basePath string
	baseURL  string
}

func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, fmt.Errorf("media: create base dir: %w", err)
	}
	return &LocalStore{
		basePath: filepath.Clean(basePath),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStore) generatePath(publicID string) (string, error) {
	if err := ValidatePublicID(publicID); err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(publicID)), nil
}

// Put writes r to publicID atomically: readers never see a partial blob.
func (s *LocalStore) Put(ctx context.Context, publicID string, r io.Reader) (int64, error) {
	p, err := s.generatePath(publicID)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, ctxReader{ctx: ctx, r: r})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("media: write %s: %w", publicID, err)
	}

	if err := os.Rename(tmp.Name(), p); err != nil {
		return 0, fmt.Errorf("media: commit %s: %w", publicID, err)
	}
	return n, nil
}

func (s *LocalStore) Exists(ctx context.Context, publicID string) (bool, error) {
	p, err := s.generatePath(publicID)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Delete removes the blob, giving up when ctx ends first. A removal still
// in flight when ctx ends may complete afterwards; callers treat that as
// an unknown outcome and retry.
func (s *LocalStore) Delete(ctx context.Context, publicID string) (DeleteResult, error) {
	p, err := s.generatePath(publicID)
	if err != nil {
		return 0, err
	}

	done := make(chan error, 1)
	go func() { done <- os.Remove(p) }()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case err := <-done:
		switch {
		case err == nil:
			return DeleteOK, nil
		case errors.Is(err, os.ErrNotExist):
			return DeleteNotFound, nil
		default:
			return 0, fmt.Errorf("media: delete %s: %w", publicID, err)
		}
	}
}

// URL is the public address clients fetch the blob from.
func (s *LocalStore) URL(publicID string) string {
	return s.baseURL + "/" + publicID
}

// Handler serves stored blobs read-only. Directories are reported as
// missing, so nothing can be listed.
func (s *LocalStore) Handler() http.Handler {
	return http.FileServer(blobsOnly{http.Dir(s.basePath)})
}

type blobsOnly struct {
	root http.FileSystem
}

func (b blobsOnly) Open(name string) (http.File, error) {
	f, err := b.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
