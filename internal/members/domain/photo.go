package domain

import "time"

// PhotoState is where a photo sits in moderation. A deleted photo has no row.
type PhotoState string

const (
	PhotoPending  PhotoState = "pending"
	PhotoApproved PhotoState = "approved"
	PhotoRejected PhotoState = "rejected"
)

// Valid reports whether s is one of the stored states.
func (s PhotoState) Valid() bool {
	switch s {
	case PhotoPending, PhotoApproved, PhotoRejected:
		return true
	}
	return false
}

// CanTransition reports whether a stored photo may move from s to next.
// Approved photos only leave by deletion.
func (s PhotoState) CanTransition(next PhotoState) bool {
	if s == next {
		return true
	}
	switch s {
	case PhotoPending:
		return next == PhotoApproved || next == PhotoRejected
	case PhotoRejected:
		return next == PhotoApproved || next == PhotoPending
	default:
		return false
	}
}

type Photo struct {
	ID          int64
	UserID      int64
	URL         string
	Description string
	PublicID    *string // blob key; nil when there is no blob to clean up
	IsMain      bool
	State       PhotoState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Photo) IsApproved() bool { return p.State == PhotoApproved }

// PhotoForModeration is a queue entry shown to moderators.
type PhotoForModeration struct {
	ID          int64
	UserID      int64
	UserKnownAs string
	URL         string
	Description string
	DateAdded   time.Time
	IsMain      bool
	State       PhotoState
}
