package membersdk

import (
	"errors"
	"sync"
	"time"
)

// ErrNoToken is returned when a Session has no access token to send.
var ErrNoToken = errors.New("membersdk: session has no access token")

// Session carries an access token. Tokens are not refreshed; once expired
// the caller logs in again, which also picks up role changes.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
}

// NewSession wraps an existing access token.
func (c *Client) NewSession(accessToken string, expiresAt time.Time) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   expiresAt,
	}
}

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// ExpiresAt returns when the access token expires.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Expired reports whether the token expired at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt())
}

// SetToken swaps in a reissued token.
func (s *Session) SetToken(accessToken string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.expiresAt = expiresAt
}
