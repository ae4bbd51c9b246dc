package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
	"github.com/aussiebroadwan/rendezvous/internal/members/store"
	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
)

const testIssuer = "https://members.test"

func newTestSigner(t *testing.T) *jwtx.HS512 {
	t.Helper()
	h, err := jwtx.NewHS512(bytes.Repeat([]byte("k"), jwtx.MinSecretBytes), testIssuer)
	require.NoError(t, err)
	return h
}

func newAuthService(t *testing.T, st store.Store, signer *jwtx.HS512) *AuthService {
	t.Helper()
	return &AuthService{
		Credentials: &CredentialService{Store: st, Hasher: testHasher},
		Roles:       &RoleService{Store: st},
		Tokens:      &TokenService{Signer: signer, Issuer: testIssuer},
	}
}

func TestIssueAtIsDeterministic(t *testing.T) {
	tokens := &TokenService{Signer: newTestSigner(t), Issuer: testIssuer}
	ident := domain.Identity{ID: 7, Username: "alice"}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	a, err := tokens.IssueAt(ident, []string{"VIP", "Admin"}, now)
	require.NoError(t, err)
	b, err := tokens.IssueAt(ident, []string{"Admin", "VIP"}, now)
	require.NoError(t, err)

	require.Equal(t, a.Token, b.Token)
	require.True(t, now.Equal(a.IssuedAt))
	require.True(t, now.Add(24*time.Hour).Equal(a.ExpiresAt))
}

func TestIssuedTokenCarriesClaims(t *testing.T) {
	signer := newTestSigner(t)
	tokens := &TokenService{Signer: signer, Issuer: testIssuer}

	tok, err := tokens.Issue(domain.Identity{ID: 42, Username: "alice"}, []string{"Moderator"})
	require.NoError(t, err)

	claims, err := signer.Verify(tok.Token)
	require.NoError(t, err)
	id, err := claims.SubjectID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.Equal(t, "alice", claims.Name)
	require.Equal(t, []string{"Moderator"}, claims.Roles)
	require.Equal(t, testIssuer, claims.Issuer)
}

func TestExpiredTokenIsDenied(t *testing.T) {
	signer := newTestSigner(t)
	tokens := &TokenService{
		Signer: signer,
		Issuer: testIssuer,
		Now:    func() time.Time { return time.Now().Add(-25 * time.Hour) },
	}

	tok, err := tokens.Issue(domain.Identity{ID: 1, Username: "root"}, []string{authz.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, authz.Deny, authz.New(signer).Check(tok.Token, authz.RequireAdminRole))
}

func TestLoginReflectsRoleChangesOnReissue(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	signer := newTestSigner(t)
	auth := newAuthService(t, st, signer)
	authorizer := authz.New(signer)

	alice := mustRegister(t, st, "alice")

	tok, ident, err := auth.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	require.Equal(t, alice.ID, ident.ID)
	require.Empty(t, ident.Roles)
	require.Equal(t, authz.Deny, authorizer.Check(tok.Token, authz.RequireAdminRole))
	require.Equal(t, authz.Allow, authorizer.Check(tok.Token, authz.Authenticated))

	mustSetRoles(t, st, alice.ID, authz.RoleAdmin)

	// The old token is unaffected until reissued.
	require.Equal(t, authz.Deny, authorizer.Check(tok.Token, authz.RequireAdminRole))

	tok, _, err = auth.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	require.Equal(t, authz.Allow, authorizer.Check(tok.Token, authz.RequireAdminRole))
	require.Equal(t, authz.Allow, authorizer.Check(tok.Token, authz.ModeratePhotoRole))
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := newAuthService(t, st, newTestSigner(t))
	mustRegister(t, st, "alice")

	_, _, err := auth.Login(ctx, "alice", "not-the-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
