package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS512 signs and verifies tokens with a shared HMAC-SHA512 secret. The
// secret is loaded once at startup; replacing it invalidates every token
// issued under the old one.
type HS512 struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// Option tweaks an HS512.
type Option func(*HS512)

// WithLeeway allows small clock skew when checking exp/nbf.
func WithLeeway(d time.Duration) Option {
	return func(h *HS512) { h.leeway = d }
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(h *HS512) { h.now = now }
}

// NewHS512 builds a signer/verifier pair bound to issuer.
func NewHS512(secret []byte, issuer string, opts ...Option) (*HS512, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}

	h := &HS512{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *HS512) Alg() string { return jwt.SigningMethodHS512.Alg() }

// Issuer is the iss value stamped into and required from tokens.
func (h *HS512) Issuer() string { return h.issuer }

// Sign serialises claims into a compact JWS.
func (h *HS512) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	s, err := t.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}

// Verify checks signature, algorithm, issuer and expiry. It never consults
// any store.
func (h *HS512) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryAt(h.now().UTC(), h.leeway); err != nil {
		return Claims{}, err
	}
	if _, err := claims.SubjectID(); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// Also raised when the alg header is outside WithValidMethods.
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
