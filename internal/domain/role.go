package domain

import "fmt"

// Role enumerates access levels granted to authenticated identities.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// RoleMap assigns roles to identities by email. It is built once from
// configuration and never mutated at runtime.
type RoleMap map[string]Role

// RoleFor returns the configured role for an email, defaulting to RoleUser
// for unmapped identities.
func (m RoleMap) RoleFor(email string) Role {
	if role, ok := m[email]; ok {
		return role
	}
	return RoleUser
}
