package guard

import (
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/services"
)

// Guard is the advisory gate in front of console commands. It looks up the
// current user from the auth manager, asks the permission manager, and
// logs denials. It is not a security boundary; the backend enforces the
// real authorization.
type Guard struct {
	auth   *services.AuthManager
	perms  *services.PermissionManager
	logger *zap.Logger
}

func New(auth *services.AuthManager, perms *services.PermissionManager, logger *zap.Logger) *Guard {
	return &Guard{auth: auth, perms: perms, logger: logger}
}

// RequireAuth reports whether a live session exists.
func (g *Guard) RequireAuth() bool {
	if g.auth.IsAuthenticated() {
		return true
	}
	g.logger.Debug("access denied: not authenticated")
	return false
}

func (g *Guard) RequirePermission(perm string) bool {
	if !g.RequireAuth() {
		return false
	}
	user := g.auth.GetUser()
	if !g.perms.HasPermission(user, perm) {
		g.logger.Debug("access denied: missing permission",
			zap.String("permission", perm), zap.String("role", roleOf(user)))
		return false
	}
	return true
}

func (g *Guard) RequireRole(role domain.Role) bool {
	if !g.RequireAuth() {
		return false
	}
	user := g.auth.GetUser()
	if !g.perms.HasRole(user, role) {
		g.logger.Debug("access denied: role mismatch",
			zap.String("required", string(role)), zap.String("role", roleOf(user)))
		return false
	}
	return true
}

func (g *Guard) RequireMinimumRole(role domain.Role) bool {
	if !g.RequireAuth() {
		return false
	}
	user := g.auth.GetUser()
	if !g.perms.HasMinimumRole(user, role) {
		g.logger.Debug("access denied: insufficient role",
			zap.String("required", string(role)), zap.String("role", roleOf(user)))
		return false
	}
	return true
}

func roleOf(u *domain.User) string {
	if u == nil {
		return ""
	}
	return string(u.Role)
}
