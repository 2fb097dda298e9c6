package domain

import "time"

// Role is one of the closed set of console user tiers.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// ParseRole normalizes a role string, falling back to viewer for anything
// outside the known set.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleOperator, RoleViewer:
		return Role(s)
	default:
		return RoleViewer
	}
}

// User is a console user. Permissions are always derived from Role via the
// active Policy; a stored permissions list is never authoritative.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Department  string   `json:"department,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// AuthState is the session view computed fresh on every query. When
// IsAuthenticated is false, User and Token are absent regardless of what is
// still sitting in storage.
type AuthState struct {
	IsAuthenticated bool
	User            *User
	Token           string
}
