package domain

import "time"

// Identity is a registered member. Username is stored lowercase.
type Identity struct {
	ID           int64
	Username     string
	KnownAs      string
	PasswordHash string // argon2id PHC
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastActive   time.Time // zero until the first authenticated request
}

// UserWithRoles is the admin listing row.
type UserWithRoles struct {
	ID       int64
	Username string
	Roles    []string
}
