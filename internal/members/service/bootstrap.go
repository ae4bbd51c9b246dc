package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/cryptox"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

// BootstrapService creates the first administrator of an empty system.
type BootstrapService struct {
	Store       store.Store
	Credentials *CredentialService
	Token       string // pre-configured bootstrap token; empty disables bootstrap
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: count users: %w", ErrPersistence, err)
	}
	return !empty, nil
}

// Bootstrap creates an administrator holding the Admin role. It only works
// while there are no users and token matches the configured one.
func (s *BootstrapService) Bootstrap(ctx context.Context, token, username, knownAs, password string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	// 1. Check if already bootstrapped
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Identity{}, ErrBootstrapAlready
	}

	// 2. Validate provided token
	if !cryptox.EqualTokens(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.Identity{}, ErrBootstrapDenied
	}

	// 3. Validate input and hash password
	ident, err := s.Credentials.newIdentity(username, knownAs, password)
	if err != nil {
		return domain.Identity{}, err
	}

	// 4. Create the admin in one transaction, re-checking emptiness inside it
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}

		if ident.ID, err = tx.Users().CreateUser(ctx, ident); err != nil {
			return err
		}
		return tx.Roles().AddUserRoles(ctx, ident.ID, []string{authz.RoleAdmin})
	})
	switch {
	case errors.Is(err, ErrBootstrapAlready):
		return domain.Identity{}, err
	case err != nil:
		l.Error("failed to create admin user", slog.Any("error", err))
		return domain.Identity{}, fmt.Errorf("%w: create admin: %w", ErrPersistence, err)
	}

	ident.Roles = []string{authz.RoleAdmin}
	l.Info("successfully bootstrapped system",
		slog.Int64("admin_user_id", ident.ID),
		slog.String("username", ident.Username),
	)
	return ident, nil
}
