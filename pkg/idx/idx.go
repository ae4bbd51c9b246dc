// Package idx generates request correlation identifiers.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID is a ULID string attached to every request log line.
type RequestID string

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	once    sync.Once
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
)

// New returns a request id stamped with the current UTC time.
func New() RequestID {
	return NewAt(time.Now().UTC())
}

// NewAt returns a request id stamped with t.
func NewAt(t time.Time) RequestID {
	once.Do(func() {
		entropy = ulid.Monotonic(rand.Reader, 0)
	})

	mu.Lock()
	defer mu.Unlock()

	return RequestID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// Parse validates an inbound X-Request-ID value.
func Parse(s string) (RequestID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return "", ErrInvalid
	}
	return RequestID(s), nil
}

// String returns the canonical string form.
func (id RequestID) String() string { return string(id) }

// Time extracts the embedded timestamp, or the zero time if id is invalid.
func (id RequestID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
