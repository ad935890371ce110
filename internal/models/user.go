package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	Email     string    `bun:"email,pk" json:"email"`
	Name      string    `bun:"name" json:"name,omitempty"`
	Role      string    `bun:"role" json:"role,omitempty"`
	CreatedBy string    `bun:"created_by" json:"created_by,omitempty"`
	LastLogin string    `bun:"last_login" json:"last_login"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// UpsertResult reports whether a login upsert inserted a new user
// ("first seen") or only refreshed last_login ("returning").
type UpsertResult struct {
	Email   string `json:"email"`
	Created bool   `json:"created"`
}
