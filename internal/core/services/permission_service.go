package services

import "hostdeck/internal/core/domain"

// PermissionManager answers permission questions about an explicit user
// against an injected policy. It holds no ambient state and never panics:
// a nil user simply has no permissions.
type PermissionManager struct {
	policy *domain.Policy
}

func NewPermissionManager(policy *domain.Policy) *PermissionManager {
	return &PermissionManager{policy: policy}
}

func (m *PermissionManager) HasPermission(u *domain.User, perm string) bool {
	if u == nil {
		return false
	}
	for _, p := range m.policy.Permissions(u.Role) {
		if p == perm {
			return true
		}
	}
	return false
}

func (m *PermissionManager) HasAnyPermission(u *domain.User, perms ...string) bool {
	for _, p := range perms {
		if m.HasPermission(u, p) {
			return true
		}
	}
	return false
}

func (m *PermissionManager) HasAllPermissions(u *domain.User, perms ...string) bool {
	if u == nil {
		return false
	}
	for _, p := range perms {
		if !m.HasPermission(u, p) {
			return false
		}
	}
	return true
}

func (m *PermissionManager) HasRole(u *domain.User, role domain.Role) bool {
	return u != nil && u.Role == role
}

// HasMinimumRole compares role ranks: viewer < operator < admin.
func (m *PermissionManager) HasMinimumRole(u *domain.User, role domain.Role) bool {
	if u == nil {
		return false
	}
	return m.policy.Rank(u.Role) >= m.policy.Rank(role)
}
