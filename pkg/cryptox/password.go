package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for newly created hashes. Existing hashes carry their
// own parameters in the PHC string.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	ErrMismatch    = errors.New("cryptox: password does not match")
	ErrInvalidHash = errors.New("cryptox: invalid hash format")
)

// PasswordHasher hashes and verifies passwords with argon2id and a
// process-wide pepper.
type PasswordHasher struct {
	pepper []byte

	dummyOnce sync.Once
	dummy     string
}

func NewPasswordHasher(pepper []byte) *PasswordHasher {
	return &PasswordHasher{pepper: append([]byte(nil), pepper...)}
}

// Hash returns a PHC-format argon2id string with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	sum := argon2.IDKey(h.peppered(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify returns nil when password matches encoded, ErrMismatch when it
// doesn't and ErrInvalidHash when encoded can't be parsed.
func (h *PasswordHasher) Verify(password, encoded string) error {
	p, err := parsePHC(encoded)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(h.peppered(password), p.salt, p.iterations, p.memory, p.parallelism, uint32(len(p.hash))) // #nosec G115

	if subtle.ConstantTimeCompare(computed, p.hash) == 1 {
		return nil
	}
	return ErrMismatch
}

// VerifyDummy burns the same work as Verify against a throwaway hash, so
// callers can keep the unknown-user path as slow as the wrong-password path.
func (h *PasswordHasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = h.Hash("dummy-password-for-timing")
	})
	_ = h.Verify(password, h.dummy)
}

func (h *PasswordHasher) peppered(password string) []byte {
	out := make([]byte, 0, len(password)+len(h.pepper))
	out = append(out, password...)
	return append(out, h.pepper...)
}

type phc struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

// parsePHC splits $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func parsePHC(encoded string) (phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return phc{}, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return phc{}, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return phc{}, fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	var p phc
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return phc{}, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}
	// argon2 panics on zero rounds or threads.
	if p.iterations < 1 || p.parallelism < 1 {
		return phc{}, fmt.Errorf("%w: t and p must be at least 1", ErrInvalidHash)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return phc{}, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.hash) == 0 {
		return phc{}, fmt.Errorf("%w: hash", ErrInvalidHash)
	}
	return p, nil
}
