// Package authz decides whether a bearer of an access token may perform a
// gated operation. Decisions are pure functions of the token and the policy:
// no store lookups, no side effects.
package authz

import (
	"slices"
	"strings"

	"github.com/aussiebroadwan/rendezvous/pkg/jwtx"
)

// Built-in role names.
const (
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
	RoleMember    = "Member"
	RoleVIP       = "VIP"
)

// Policy names a role-based gate. The set is closed.
type Policy int

const (
	// Authenticated admits any valid token.
	Authenticated Policy = iota + 1
	// RequireAdminRole admits tokens carrying Admin.
	RequireAdminRole
	// ModeratePhotoRole admits tokens carrying Admin or Moderator.
	ModeratePhotoRole
)

func (p Policy) String() string {
	switch p {
	case Authenticated:
		return "Authenticated"
	case RequireAdminRole:
		return "RequireAdminRole"
	case ModeratePhotoRole:
		return "ModeratePhotoRole"
	default:
		return "Unknown"
	}
}

// Decision is the outcome of a check.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

func (d Decision) String() string {
	if d {
		return "Allow"
	}
	return "Deny"
}

// Principal is the verified identity behind a request.
type Principal struct {
	ID    int64
	Name  string
	Roles []string
}

// PrincipalFromClaims lifts verified claims into a Principal.
func PrincipalFromClaims(c jwtx.Claims) (Principal, bool) {
	id, err := c.SubjectID()
	if err != nil {
		return Principal{}, false
	}
	return Principal{ID: id, Name: c.Name, Roles: slices.Clone(c.Roles)}, true
}

// HasRole reports whether the principal carries role, ignoring case.
func (p Principal) HasRole(role string) bool {
	return slices.ContainsFunc(p.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

// Evaluate applies a role policy to an already verified principal. Unknown
// policies deny.
func Evaluate(p Principal, policy Policy) Decision {
	if p.ID <= 0 {
		return Deny
	}

	switch policy {
	case Authenticated:
		return Allow
	case RequireAdminRole:
		return Decision(p.HasRole(RoleAdmin))
	case ModeratePhotoRole:
		return Decision(p.HasRole(RoleAdmin) || p.HasRole(RoleModerator))
	default:
		return Deny
	}
}

// EvaluateOwner admits the principal only when it is ownerID itself.
func EvaluateOwner(p Principal, ownerID int64) Decision {
	return Decision(p.ID > 0 && p.ID == ownerID)
}

// Authorizer verifies raw tokens and evaluates policies against them.
type Authorizer struct {
	verifier jwtx.Verifier
}

func New(verifier jwtx.Verifier) *Authorizer {
	return &Authorizer{verifier: verifier}
}

// Authenticate verifies token and returns its principal.
func (a *Authorizer) Authenticate(token string) (Principal, error) {
	claims, err := a.verifier.Verify(token)
	if err != nil {
		return Principal{}, err
	}
	p, ok := PrincipalFromClaims(claims)
	if !ok {
		return Principal{}, jwtx.ErrInvalidClaim
	}
	return p, nil
}

// Check returns Allow only for a valid token satisfying policy. Any token
// problem (malformed, wrong signature, expired) is a Deny.
func (a *Authorizer) Check(token string, policy Policy) Decision {
	p, err := a.Authenticate(token)
	if err != nil {
		return Deny
	}
	return Evaluate(p, policy)
}

// CheckOwner returns Allow only for a valid token whose subject is ownerID.
func (a *Authorizer) CheckOwner(token string, ownerID int64) Decision {
	p, err := a.Authenticate(token)
	if err != nil {
		return Deny
	}
	return EvaluateOwner(p, ownerID)
}
