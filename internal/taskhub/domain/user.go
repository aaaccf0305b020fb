package domain

import (
	"fmt"
	"time"
)

// Role describes the authorisation level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole validates a role string as received on the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is a registered account. PasswordHash is the PHC-encoded argon2id hash
// and never leaves the service.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
