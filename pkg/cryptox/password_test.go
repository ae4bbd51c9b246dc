package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	pepper, err := LoadOrCreatePepper(filepath.Join(t.TempDir(), "pepper"))
	require.NoError(t, err)
	return NewPasswordHasher(pepper)
}

func TestHash_PHCFormat(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4])
			require.NotEmpty(t, parts[5])

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, h.Verify("samepassword", a))
	require.NoError(t, h.Verify("samepassword", b))
}

func TestVerify_WrongPassword(t *testing.T) {
	h := newTestHasher(t)
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"wrong-password", "Correct-Password", "correct-password ", "", strings.Repeat("x", 10000)} {
		require.ErrorIs(t, h.Verify(wrong, hash), ErrMismatch)
	}
}

func TestVerify_InvalidHashFormat(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"zero iterations", "$argon2id$v=19$m=19456,t=0,p=1$c2FsdA$aGFzaA"},
		{"zero parallelism", "$argon2id$v=19$m=19456,t=2,p=0$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("test-password", tt.hash), ErrInvalidHash)
		})
	}
}

func TestVerify_PepperMatters(t *testing.T) {
	h1 := NewPasswordHasher([]byte("pepper-one"))
	h2 := NewPasswordHasher([]byte("pepper-two"))

	hash, err := h1.Hash("password123")
	require.NoError(t, err)

	require.NoError(t, h1.Verify("password123", hash))
	require.ErrorIs(t, h2.Verify("password123", hash), ErrMismatch)
}

func TestVerifyDummy(t *testing.T) {
	h := newTestHasher(t)
	h.VerifyDummy("anything")
	require.NotEmpty(t, h.dummy)
}

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = LoadOrCreatePepper("")
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	_, err = LoadOrCreatePepper(empty)
	require.Error(t, err)
}
