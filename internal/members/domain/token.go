package domain

import "time"

// AccessToken is a signed, self-contained bearer token. It can't be revoked
// before ExpiresAt.
type AccessToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
