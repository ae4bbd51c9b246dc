// Package media stores photo blobs addressed by public id.
package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DeleteResult is the outcome of a successful delete call.
type DeleteResult int

const (
	// DeleteOK means the blob existed and is gone.
	DeleteOK DeleteResult = iota + 1
	// DeleteNotFound means there was nothing to delete.
	DeleteNotFound
)

func (r DeleteResult) String() string {
	switch r {
	case DeleteOK:
		return "ok"
	case DeleteNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidPublicID = errors.New("media: invalid public id")
	ErrUnsupportedType = errors.New("media: unsupported content type")
)

// BlobStore is an object store for photo bytes. Delete reports an absent
// blob as DeleteNotFound rather than an error.
type BlobStore interface {
	Put(ctx context.Context, publicID string, r io.Reader) (int64, error)
	Exists(ctx context.Context, publicID string) (bool, error)
	Delete(ctx context.Context, publicID string) (DeleteResult, error)
	URL(publicID string) string
}

// allowed maps accepted image types to their stored extension.
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const sniffLen = 3072

// SniffImage detects the type of r from its leading bytes. It returns the
// extension to store under and a reader that replays the whole stream.
func SniffImage(r io.Reader) (ext string, body io.Reader, err error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowed[m.String()]; ok {
			return ext, io.MultiReader(bytes.NewReader(head), r), nil
		}
	}
	return "", nil, ErrUnsupportedType
}

// NewPublicID returns a fresh photo key such as photos/<uuid>.jpg.
func NewPublicID(ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return "photos/" + uuid.NewString() + ext
}

// ValidatePublicID rejects keys that could escape the store root.
func ValidatePublicID(id string) error {
	if id == "" || strings.HasPrefix(id, "/") || strings.Contains(id, `\`) {
		return ErrInvalidPublicID
	}
	if path.Clean(id) != id {
		return ErrInvalidPublicID
	}
	for _, seg := range strings.Split(id, "/") {
		if seg == ".." || seg == "." || seg == "" {
			return ErrInvalidPublicID
		}
	}
	return nil
}
