package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type userAPIStub struct {
	ports.APIBackend
	users   []ports.UserDTO
	updated *ports.UserDTO
}

func (s *userAPIStub) ListUsers(context.Context) ([]ports.UserDTO, error) {
	return s.users, nil
}

func (s *userAPIStub) UpdateUser(_ context.Context, id string, in ports.UserDTO) (*ports.UserDTO, error) {
	s.updated = &in
	out := in
	out.ID = 2
	out.Username = "carol"
	return &out, nil
}

type signUpRecorder struct {
	ports.AuthBackend
	username, email, role string
}

func (s *signUpRecorder) SignUp(_ context.Context, username, email, _, role string) error {
	s.username, s.email, s.role = username, email, role
	return nil
}

func TestUserListMapsBackendRoles(t *testing.T) {
	stub := &userAPIStub{users: []ports.UserDTO{
		{ID: 1, Username: "alice", Email: "alice@example.com", Role: "admin"},
		{ID: 2, Username: "bob", Email: "bob@example.com", Role: "operation"},
		{ID: 3, Username: "carol", Email: "carol@example.com", Role: "manager"},
		{ID: 4, Username: "dave", Email: "dave@example.com", Role: "something-else"},
	}}
	svc := NewUserService(stub, nil, domain.DefaultPolicy(), zaptest.NewLogger(t))

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 4)

	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.Equal(t, domain.RoleOperator, users[1].Role)
	assert.Equal(t, domain.RoleViewer, users[2].Role)
	assert.Equal(t, domain.RoleViewer, users[3].Role)

	// permissions come from the policy, never from storage
	assert.Contains(t, users[0].Permissions, "user:delete")
	assert.NotContains(t, users[2].Permissions, "device:write")
	assert.Equal(t, "Alice", users[0].Name)
}

func TestUpdateRoleSendsBackendSpelling(t *testing.T) {
	stub := &userAPIStub{}
	svc := NewUserService(stub, nil, domain.DefaultPolicy(), zaptest.NewLogger(t))

	for role, wire := range map[domain.Role]string{
		domain.RoleAdmin:    "admin",
		domain.RoleOperator: "operation",
		domain.RoleViewer:   "manager",
	} {
		_, err := svc.UpdateRole(context.Background(), "2", role)
		require.NoError(t, err)
		assert.Equal(t, wire, stub.updated.Role, string(role))
	}
}

func TestRegisterDelegatesToSignUp(t *testing.T) {
	rec := &signUpRecorder{}
	svc := NewUserService(nil, rec, domain.DefaultPolicy(), zaptest.NewLogger(t))

	require.NoError(t, svc.Register(context.Background(), "newbie", "newbie@example.com", "pass1234", domain.RoleOperator))
	assert.Equal(t, "newbie", rec.username)
	assert.Equal(t, "newbie@example.com", rec.email)
	assert.Equal(t, "operator", rec.role)
}

func TestRoleSpellingRoundTrip(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleOperator, domain.RoleViewer} {
		assert.Equal(t, role, roleFromBackendString(backendRoleString(role)))
	}
}
