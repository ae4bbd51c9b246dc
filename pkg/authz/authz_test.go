package authz_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/aussiebroadwan/rendezvous/pkg/authz"
	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newAuthorizer(t *testing.T) (*authz.Authorizer, *jwtx.HS512) {
	t.Helper()
	h, err := jwtx.NewHS512(bytes.Repeat([]byte("s"), jwtx.MinSecretBytes), "members")
	require.NoError(t, err)
	return authz.New(h), h
}

func sign(t *testing.T, h *jwtx.HS512, id int64, roles ...string) string {
	t.Helper()
	tok, err := h.Sign(jwtx.NewAccessClaims(id, "user", roles, "members", time.Hour, time.Now()))
	require.NoError(t, err)
	return tok
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		roles  []string
		policy authz.Policy
		want   authz.Decision
	}{
		{"admin passes admin", []string{"Admin"}, authz.RequireAdminRole, authz.Allow},
		{"moderator fails admin", []string{"Moderator"}, authz.RequireAdminRole, authz.Deny},
		{"no roles fails admin", nil, authz.RequireAdminRole, authz.Deny},
		{"admin moderates", []string{"Admin"}, authz.ModeratePhotoRole, authz.Allow},
		{"moderator moderates", []string{"Moderator"}, authz.ModeratePhotoRole, authz.Allow},
		{"lowercase role still matches", []string{"moderator"}, authz.ModeratePhotoRole, authz.Allow},
		{"member cannot moderate", []string{"Member", "VIP"}, authz.ModeratePhotoRole, authz.Deny},
		{"anyone authenticated", nil, authz.Authenticated, authz.Allow},
		{"unknown policy", []string{"Admin"}, authz.Policy(99), authz.Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := authz.Principal{ID: 1, Name: "u", Roles: tt.roles}
			require.Equal(t, tt.want, authz.Evaluate(p, tt.policy))
		})
	}

	t.Run("zero principal denied", func(t *testing.T) {
		require.Equal(t, authz.Deny, authz.Evaluate(authz.Principal{Roles: []string{"Admin"}}, authz.Authenticated))
	})
}

func TestEvaluateOwner(t *testing.T) {
	p := authz.Principal{ID: 5}
	require.Equal(t, authz.Allow, authz.EvaluateOwner(p, 5))
	require.Equal(t, authz.Deny, authz.EvaluateOwner(p, 6))
	require.Equal(t, authz.Deny, authz.EvaluateOwner(authz.Principal{}, 0))
}

func TestAuthorizerCheck(t *testing.T) {
	a, h := newAuthorizer(t)

	admin := sign(t, h, 1, "Admin")
	member := sign(t, h, 2)

	require.Equal(t, authz.Allow, a.Check(admin, authz.RequireAdminRole))
	require.Equal(t, authz.Deny, a.Check(member, authz.RequireAdminRole))
	require.Equal(t, authz.Allow, a.Check(member, authz.Authenticated))

	require.Equal(t, authz.Allow, a.CheckOwner(member, 2))
	require.Equal(t, authz.Deny, a.CheckOwner(member, 1))
}

func TestAuthorizerCheck_DeniesBadTokens(t *testing.T) {
	a, h := newAuthorizer(t)

	expired, err := h.Sign(jwtx.NewAccessClaims(1, "root", []string{"Admin"}, "members", time.Hour, time.Now().Add(-2*time.Hour)))
	require.NoError(t, err)

	other, err := jwtx.NewHS512(bytes.Repeat([]byte("o"), jwtx.MinSecretBytes), "members")
	require.NoError(t, err)
	foreign := sign(t, other, 1, "Admin")

	for name, tok := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"expired":   expired,
		"foreign":   foreign,
		"truncated": foreign[:len(foreign)-4],
	} {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				require.Equal(t, authz.Deny, a.Check(tok, authz.RequireAdminRole))
				require.Equal(t, authz.Deny, a.Check(tok, authz.Authenticated))
				require.Equal(t, authz.Deny, a.CheckOwner(tok, 1))
			})
		})
	}
}

func TestPolicyString(t *testing.T) {
	require.Equal(t, "RequireAdminRole", authz.RequireAdminRole.String())
	require.Equal(t, "ModeratePhotoRole", authz.ModeratePhotoRole.String())
	require.Equal(t, "Unknown", authz.Policy(0).String())
	require.Equal(t, "Allow", authz.Allow.String())
}
