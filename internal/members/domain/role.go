package domain

import "time"

type Role struct {
	ID        int64
	Name      string
	Builtin   bool // seeded by migration, cannot be renamed
	CreatedAt time.Time
}
