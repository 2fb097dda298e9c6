package domain

// Policy is the immutable role→permission table. It is constructed once at
// startup and injected wherever permission decisions are made; there is no
// package-global table. Permission strings use the <resource>:<action> form.
type Policy struct {
	permissions map[Role][]string
	ranks       map[Role]int
}

// NewPolicy builds a policy from an explicit table. The table is copied, so
// later mutation of the argument does not leak into the policy.
func NewPolicy(table map[Role][]string, ranks map[Role]int) *Policy {
	perms := make(map[Role][]string, len(table))
	for role, list := range table {
		cp := make([]string, len(list))
		copy(cp, list)
		perms[role] = cp
	}
	r := make(map[Role]int, len(ranks))
	for role, rank := range ranks {
		r[role] = rank
	}
	return &Policy{permissions: perms, ranks: r}
}

// DefaultPolicy returns the stock console policy: admin ⊇ operator ⊇ viewer
// over the user/device/project/service/monitoring/alert/system resources.
func DefaultPolicy() *Policy {
	return NewPolicy(map[Role][]string{
		RoleAdmin: {
			"user:read", "user:write", "user:delete",
			"device:read", "device:write", "device:delete",
			"project:read", "project:write", "project:delete",
			"service:read", "service:write", "service:delete",
			"monitoring:read", "monitoring:write",
			"alert:read", "alert:write", "alert:delete",
			"system:read", "system:write",
		},
		RoleOperator: {
			"user:read",
			"device:read", "device:write",
			"project:read", "project:write",
			"service:read", "service:write",
			"monitoring:read",
			"alert:read", "alert:write",
		},
		RoleViewer: {
			"user:read",
			"device:read",
			"project:read",
			"service:read",
			"monitoring:read",
			"alert:read",
		},
	}, map[Role]int{
		RoleViewer:   1,
		RoleOperator: 2,
		RoleAdmin:    3,
	})
}

// Permissions returns a copy of the permission list for role; nil for an
// unknown role.
func (p *Policy) Permissions(role Role) []string {
	list, ok := p.permissions[role]
	if !ok {
		return nil
	}
	cp := make([]string, len(list))
	copy(cp, list)
	return cp
}

// Rank returns the hierarchy level for role, 0 for an unknown role.
func (p *Policy) Rank(role Role) int {
	return p.ranks[role]
}

// Apply returns u with its Permissions field recomputed from the policy.
// The stored permission list, whatever it was, is discarded.
func (p *Policy) Apply(u *User) *User {
	if u == nil {
		return nil
	}
	u.Permissions = p.Permissions(u.Role)
	return u
}
