package types

import "github.com/m-mizutani/goerr/v2"

// Role represents the author of a conversation message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// AllRoles returns all valid roles.
func AllRoles() []Role {
	return []Role{RoleUser, RoleAgent}
}

// IsValid checks if the role is valid.
func (x Role) IsValid() bool {
	switch x {
	case RoleUser, RoleAgent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (x Role) String() string {
	return string(x)
}

// ParseRole parses a string into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", goerr.New("invalid role", goerr.V("role", s))
	}
	return role, nil
}
