package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC)
	c := jwtx.NewAccessClaims(42, "alice", []string{"Moderator", "Admin", "Moderator"}, "members", jwtx.AccessTokenTTL, now)

	require.Equal(t, "42", c.Subject)
	require.Equal(t, "alice", c.Name)
	require.Equal(t, []string{"Admin", "Moderator"}, c.Roles)
	require.Equal(t, "members", c.Issuer)
	require.Equal(t, now.Truncate(time.Second), c.IssuedAt.Time)
	require.Equal(t, now.Truncate(time.Second).Add(24*time.Hour), c.ExpiresAt.Time)
	require.Empty(t, c.ID)

	id, err := c.SubjectID()
	require.NoError(t, err)
	require.EqualValues(t, 42, id)

	t.Run("nil roles become empty", func(t *testing.T) {
		c := jwtx.NewAccessClaims(1, "bob", nil, "members", time.Hour, now)
		require.NotNil(t, c.Roles)
		require.Empty(t, c.Roles)
	})
}

func TestHasRole(t *testing.T) {
	c := jwtx.Claims{Roles: []string{"Moderator"}}

	require.True(t, c.HasRole("moderator"))
	require.True(t, c.HasRole("Moderator"))
	require.False(t, c.HasRole("Admin"))
}

func TestSubjectID(t *testing.T) {
	for _, sub := range []string{"", "abc", "0", "-5"} {
		c := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}
		_, err := c.SubjectID()
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim, sub)
	}
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "members"}}

	require.NoError(t, c.ValidateIssuer("members"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("chat"), jwtx.ErrIssuer)
}

func TestValidateExpiryAt(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}}
		require.NoError(t, c.ValidateExpiryAt(now, 0))
	})

	t.Run("expired token", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}}
		require.ErrorIs(t, c.ValidateExpiryAt(now, 0), jwtx.ErrExpired)
	})

	t.Run("expired within leeway", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-10 * time.Second))}}
		require.NoError(t, c.ValidateExpiryAt(now, 30*time.Second))
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			NotBefore: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiryAt(now, 0), jwtx.ErrNotYetValid)
	})

	t.Run("missing exp", func(t *testing.T) {
		c := &jwtx.Claims{}
		require.ErrorIs(t, c.ValidateExpiryAt(now, 0), jwtx.ErrInvalidClaim)
	})
}
