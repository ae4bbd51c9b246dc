package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/metrics"
	"github.com/aussiebroadwan/rendezvous/pkg/slogx"
)

// AuthService turns credentials into an access token.
type AuthService struct {
	Credentials *CredentialService
	Roles       *RoleService
	Tokens      *TokenService
}

// Login verifies username and password and issues a token carrying the
// member's current roles. A bad username and a bad password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.AccessToken, domain.Identity, error) {
	l := slogx.FromContext(ctx)

	ident, ok, err := s.Credentials.Verify(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return domain.AccessToken{}, domain.Identity{}, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		l.Info("login failed", slog.String("username", NormalizeUsername(username)))
		return domain.AccessToken{}, domain.Identity{}, ErrInvalidCredentials
	}

	roles, err := s.Roles.CurrentRoles(ctx, ident.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return domain.AccessToken{}, domain.Identity{}, err
	}
	ident.Roles = roles

	tok, err := s.Tokens.Issue(ident, roles)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return domain.AccessToken{}, domain.Identity{}, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	l.Info("login succeeded", slog.Int64("user_id", ident.ID), slog.Any("roles", roles))
	return tok, ident, nil
}
