package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/rendezvous/pkg/cryptox"
	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
)

var ErrNoSigningSecret = errors.New("no token signing secret configured")

// LoadSigningSecret returns the HS512 secret from MEMBERS_TOKEN_SECRET, then
// MEMBERS_TOKEN_SECRET_FILE. In dev with neither set it generates a random
// secret, so tokens stop working on restart. Changing the secret invalidates
// every issued token.
func LoadSigningSecret(cfg Config, logger *slog.Logger) ([]byte, error) {
	var secret []byte
	switch {
	case cfg.TokenSecret != "":
		secret = []byte(cfg.TokenSecret)
	case cfg.TokenSecretFile != "":
		raw, err := os.ReadFile(filepath.Clean(cfg.TokenSecretFile))
		if err != nil {
			return nil, fmt.Errorf("read token secret: %w", err)
		}
		secret = []byte(strings.TrimSpace(string(raw)))
	case cfg.Env == "dev":
		b, err := cryptox.RandomBytes(jwtx.MinSecretBytes)
		if err != nil {
			return nil, err
		}
		logger.Warn("using an ephemeral token secret; tokens will not survive a restart")
		return b, nil
	default:
		return nil, ErrNoSigningSecret
	}

	if len(secret) < jwtx.MinSecretBytes {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", jwtx.ErrWeakSecret, len(secret), jwtx.MinSecretBytes)
	}
	return secret, nil
}
