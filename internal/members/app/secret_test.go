package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadSigningSecret(t *testing.T) {
	long := strings.Repeat("x", jwtx.MinSecretBytes)

	t.Run("from env", func(t *testing.T) {
		secret, err := LoadSigningSecret(Config{TokenSecret: long, Env: "prod"}, discard)
		require.NoError(t, err)
		require.Equal(t, []byte(long), secret)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "secret")
		require.NoError(t, os.WriteFile(path, []byte(long+"\n"), 0o600))

		secret, err := LoadSigningSecret(Config{TokenSecretFile: path, Env: "prod"}, discard)
		require.NoError(t, err)
		require.Equal(t, []byte(long), secret)
	})

	t.Run("env wins over file", func(t *testing.T) {
		other := strings.Repeat("y", jwtx.MinSecretBytes)
		secret, err := LoadSigningSecret(Config{TokenSecret: other, TokenSecretFile: "/does/not/exist"}, discard)
		require.NoError(t, err)
		require.Equal(t, []byte(other), secret)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := LoadSigningSecret(Config{TokenSecret: "short"}, discard)
		require.ErrorIs(t, err, jwtx.ErrWeakSecret)
	})

	t.Run("ephemeral in dev", func(t *testing.T) {
		a, err := LoadSigningSecret(Config{Env: "dev"}, discard)
		require.NoError(t, err)
		b, err := LoadSigningSecret(Config{Env: "dev"}, discard)
		require.NoError(t, err)
		require.Len(t, a, jwtx.MinSecretBytes)
		require.NotEqual(t, a, b)
	})

	t.Run("missing outside dev", func(t *testing.T) {
		_, err := LoadSigningSecret(Config{Env: "prod"}, discard)
		require.ErrorIs(t, err, ErrNoSigningSecret)
	})
}
