package entity

import "time"

// User roles.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleSeller     = "seller"
)

// User is an authentication identity. PasswordHash is bcrypt.
type User struct {
	ID           string
	Username     string // unique
	PasswordHash string
	Name         string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
