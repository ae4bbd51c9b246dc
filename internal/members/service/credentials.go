package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/cryptox"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

var reUsername = regexp.MustCompile(`^[a-z0-9_.-]{3,32}$`)

const (
	minPasswordLen = 8
	maxPasswordLen = 128
	maxKnownAsLen  = 64
)

// CredentialService owns member identities and their password hashes.
type CredentialService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
}

// NormalizeUsername folds a username to its stored form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Exists reports whether username is taken, ignoring case.
func (s *CredentialService) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.Store.Users().GetUserByUsername(ctx, NormalizeUsername(username))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: lookup user: %w", ErrPersistence, err)
	}
}

// Register creates a member with no roles. The display name defaults to the
// username.
func (s *CredentialService) Register(ctx context.Context, username, rawPassword string) (domain.Identity, error) {
	return s.RegisterProfile(ctx, username, "", rawPassword)
}

// RegisterProfile is Register with an explicit display name.
func (s *CredentialService) RegisterProfile(ctx context.Context, username, knownAs, rawPassword string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	ident, err := s.newIdentity(username, knownAs, rawPassword)
	if err != nil {
		return domain.Identity{}, err
	}

	exists, err := s.Exists(ctx, ident.Username)
	if err != nil {
		return domain.Identity{}, err
	}
	if exists {
		return domain.Identity{}, invalid("username", "already taken")
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().CreateUser(ctx, ident)
		if err != nil {
			return err
		}
		ident.ID = id
		return nil
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		// Lost a race with a concurrent registration.
		return domain.Identity{}, invalid("username", "already taken")
	case err != nil:
		l.Error("failed to create user", slog.String("username", ident.Username), slog.Any("error", err))
		return domain.Identity{}, fmt.Errorf("%w: create user: %w", ErrPersistence, err)
	}

	ident.Roles = []string{}
	l.Info("user registered", slog.Int64("user_id", ident.ID), slog.String("username", ident.Username))
	return ident, nil
}

// Verify checks a username and password. A wrong password and an unknown
// user both return false with no error, after the same amount of hashing
// work. Only storage failures are errors.
func (s *CredentialService) Verify(ctx context.Context, username, rawPassword string) (domain.Identity, bool, error) {
	ident, err := s.Store.Users().GetUserByUsername(ctx, NormalizeUsername(username))
	if errors.Is(err, store.ErrNotFound) {
		s.Hasher.VerifyDummy(rawPassword)
		return domain.Identity{}, false, nil
	}
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("%w: lookup user: %w", ErrPersistence, err)
	}

	switch err := s.Hasher.Verify(rawPassword, ident.PasswordHash); {
	case err == nil:
		return ident, true, nil
	case errors.Is(err, cryptox.ErrMismatch):
		return domain.Identity{}, false, nil
	default:
		slogx.FromContext(ctx).Error("stored password hash is unusable",
			slog.Int64("user_id", ident.ID), slog.Any("error", err))
		return domain.Identity{}, false, nil
	}
}

// newIdentity validates registration input and hashes the password.
func (s *CredentialService) newIdentity(username, knownAs, rawPassword string) (domain.Identity, error) {
	username = NormalizeUsername(username)
	if !reUsername.MatchString(username) {
		return domain.Identity{}, invalid("username", "must be 3-32 characters of a-z, 0-9, _, . or -")
	}

	if n := utf8.RuneCountInString(rawPassword); n < minPasswordLen || n > maxPasswordLen {
		return domain.Identity{}, invalid("password", fmt.Sprintf("must be %d-%d characters", minPasswordLen, maxPasswordLen))
	}

	knownAs = strings.TrimSpace(knownAs)
	if knownAs == "" {
		knownAs = username
	}
	if utf8.RuneCountInString(knownAs) > maxKnownAsLen {
		return domain.Identity{}, invalid("known_as", fmt.Sprintf("too long (max %d)", maxKnownAsLen))
	}

	hash, err := s.Hasher.Hash(rawPassword)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	return domain.Identity{
		Username:     username,
		KnownAs:      knownAs,
		PasswordHash: hash,
	}, nil
}
