package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/internal/core/services"
	"hostdeck/internal/infrastructure/credstore"
	"hostdeck/internal/infrastructure/mock"
)

func newTestGuard(t *testing.T) (*Guard, *services.AuthManager) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	policy := domain.DefaultPolicy()
	session := services.NewSessionStore(credstore.NewMemoryStore())
	auth := services.NewAuthManager(
		mock.NewBackend(),
		session,
		services.NewTokenExpiry(true),
		policy,
		"http://localhost:8080",
		logger,
	)
	return New(auth, services.NewPermissionManager(policy), logger), auth
}

func login(t *testing.T, auth *services.AuthManager, username string) {
	t.Helper()
	res := auth.Login(context.Background(), username, "pw")
	require.True(t, res.Success, res.Message)
}

func TestRequireAuth(t *testing.T) {
	g, auth := newTestGuard(t)

	assert.False(t, g.RequireAuth())

	login(t, auth, "admin")
	assert.True(t, g.RequireAuth())

	auth.Logout()
	assert.False(t, g.RequireAuth())
}

func TestRequirePermission(t *testing.T) {
	g, auth := newTestGuard(t)

	assert.False(t, g.RequirePermission("device:read"), "unauthenticated short-circuits")

	login(t, auth, "viewer")
	assert.True(t, g.RequirePermission("device:read"))
	assert.False(t, g.RequirePermission("device:write"))
	assert.False(t, g.RequirePermission("user:delete"))
}

func TestRequireRole(t *testing.T) {
	g, auth := newTestGuard(t)

	login(t, auth, "operator")
	assert.True(t, g.RequireRole(domain.RoleOperator))
	assert.False(t, g.RequireRole(domain.RoleAdmin))
}

func TestRequireMinimumRole(t *testing.T) {
	g, auth := newTestGuard(t)

	login(t, auth, "admin")
	assert.True(t, g.RequireMinimumRole(domain.RoleViewer))
	assert.True(t, g.RequireMinimumRole(domain.RoleAdmin))

	auth.Logout()
	login(t, auth, "viewer")
	assert.True(t, g.RequireMinimumRole(domain.RoleViewer))
	assert.False(t, g.RequireMinimumRole(domain.RoleOperator))
}

var _ ports.KeyValueStore = (*credstore.MemoryStore)(nil)
