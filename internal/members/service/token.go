package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
)

// TokenService issues access tokens. Tokens carry the role set at issue
// time and are checked by signature, issuer and expiry alone, so a role
// change reaches a member only with the next token.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string

	// TTL defaults to jwtx.AccessTokenTTL.
	TTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Issue signs a token for identity holding roles, valid from now.
func (s *TokenService) Issue(identity domain.Identity, roles []string) (domain.AccessToken, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.IssueAt(identity, roles, now())
}

// IssueAt signs a token as of now. Equal inputs give equal tokens.
func (s *TokenService) IssueAt(identity domain.Identity, roles []string, now time.Time) (domain.AccessToken, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.AccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(identity.ID, identity.Username, roles, s.Issuer, ttl, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	return domain.AccessToken{
		Token:     token,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
