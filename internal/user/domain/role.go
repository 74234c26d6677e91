package domain

// Role is a named authority granted to users.
type Role struct {
	ID   int64
	Name string
}

// RoleType enumerates the built-in roles seeded by migration.
type RoleType string

const (
	RoleUser  RoleType = "ROLE_USER"
	RoleAdmin RoleType = "ROLE_ADMIN"
)
