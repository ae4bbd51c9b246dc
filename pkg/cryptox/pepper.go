package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const pepperBytes = 32

// LoadOrCreatePepper returns the pepper stored at path, generating and
// persisting a new one on first boot. Losing this file invalidates every
// stored password hash.
func LoadOrCreatePepper(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("cryptox: pepper path is empty")
	}
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		pepper := strings.TrimSpace(string(raw))
		if pepper == "" {
			return nil, fmt.Errorf("cryptox: pepper file %s is empty", path)
		}
		return []byte(pepper), nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("cryptox: read pepper: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	buf := make([]byte, pepperBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	pepper := base64.RawURLEncoding.EncodeToString(buf)

	// O_EXCL so two processes racing on first boot don't clobber each other.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return LoadOrCreatePepper(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cryptox: create pepper: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(pepper); err != nil {
		return nil, fmt.Errorf("cryptox: write pepper: %w", err)
	}
	return []byte(pepper), nil
}
