package jwtx

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed lifetime of an access token. There is no
// refresh flow; role changes reach a client on its next login.
const AccessTokenTTL = 24 * time.Hour

// Claims are the access-token claims. Subject carries the numeric member id
// as a decimal string.
type Claims struct {
	jwt.RegisteredClaims

	// Name is the member's username.
	Name string `json:"name"`

	// Roles is the member's role set at issue time, sorted.
	Roles []string `json:"roles"`
}

// NewAccessClaims builds claims for member id with the given roles. The
// result depends only on its inputs so the same now yields the same token.
func NewAccessClaims(id int64, name string, roles []string, issuer string, ttl time.Duration, now time.Time) Claims {
	sorted := slices.Clone(roles)
	if sorted == nil {
		sorted = []string{}
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  name,
		Roles: sorted,
	}
}

// SubjectID parses the subject back into a member id.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidClaim
	}
	return id, nil
}

// HasRole reports whether role is in the claims, ignoring case.
func (c *Claims) HasRole(role string) bool {
	return slices.ContainsFunc(c.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

// ValidateIssuer checks the issuer matches; an empty expectation is ignored.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiryAt requires exp and checks it (and nbf, if set) against now
// with leeway for clock skew.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
