package jwtx

import "errors"

// MinSecretBytes is the shortest HS512 secret accepted (512 bits).
const MinSecretBytes = 64

// ErrWeakSecret is returned for signing secrets shorter than MinSecretBytes.
var ErrWeakSecret = errors.New("jwtx: signing secret shorter than 64 bytes")

// Signer is anything that can turn claims into a signed JWT.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}
