package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	apperrors "hostdeck/pkg/errors"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *fakeStore) Set(key, value string) { s.data[key] = value }

func (s *fakeStore) Delete(keys ...string) {
	for _, k := range keys {
		delete(s.data, k)
	}
}

type stubBackend struct {
	signInResult *ports.SignInResult
	signInErr    error
	signUpErr    error
	lastUsername string
	signUpRole   string
}

func (b *stubBackend) SignIn(_ context.Context, usernameOrEmail, _ string) (*ports.SignInResult, error) {
	b.lastUsername = usernameOrEmail
	return b.signInResult, b.signInErr
}

func (b *stubBackend) SignUp(_ context.Context, _, _, _, role string) error {
	b.signUpRole = role
	return b.signUpErr
}

func newTestAuthManager(t *testing.T, backend ports.AuthBackend, store ports.KeyValueStore) *AuthManager {
	t.Helper()
	return NewAuthManager(
		backend,
		NewSessionStore(store),
		NewTokenExpiry(true),
		domain.DefaultPolicy(),
		"http://localhost:8080",
		zaptest.NewLogger(t),
	)
}

func validSignIn(roles ...string) *ports.SignInResult {
	return &ports.SignInResult{
		Token:    "tok." + "eyJleHAiOjk5OTk5OTk5OTl9" + ".sig",
		Type:     "Bearer",
		ID:       "42",
		Username: "alice",
		Email:    "alice@corp.example",
		Roles:    roles,
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeStore()
	backend := &stubBackend{signInResult: validSignIn("ROLE_ADMIN")}
	m := newTestAuthManager(t, backend, store)

	res := m.Login(context.Background(), "alice", "secret")

	require.True(t, res.Success)
	require.NotNil(t, res.User)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
	assert.Equal(t, "42", res.User.ID)
	assert.Equal(t, "alice@corp.example", res.User.Email)
	assert.Equal(t, "Alice", res.User.Name)
	assert.NotEmpty(t, res.User.Permissions)

	// session persisted
	_, hasToken := store.Get(ports.KeyAuthToken)
	_, hasUser := store.Get(ports.KeyAuthUser)
	assert.True(t, hasToken)
	assert.True(t, hasUser)
}

func TestLoginTokenMissing(t *testing.T) {
	store := newFakeStore()
	backend := &stubBackend{signInResult: &ports.SignInResult{Type: "Bearer"}}
	m := newTestAuthManager(t, backend, store)

	res := m.Login(context.Background(), "alice", "secret")

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "token is missing")
	assert.Empty(t, store.data, "no storage writes on token-missing failure")
}

func TestLoginEmptyCredentials(t *testing.T) {
	m := newTestAuthManager(t, &stubBackend{}, newFakeStore())

	res := m.Login(context.Background(), "", "secret")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "username and password")
}

func TestLoginErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			"401 without server message",
			&apperrors.AppError{Code: apperrors.ErrCodeUnauthorized, HTTPStatus: 401},
			"Invalid username or password",
		},
		{
			"401 with server message",
			apperrors.NewUnauthorizedError("Invalid username/email or password"),
			"Invalid username/email or password",
		},
		{
			"400 without server message",
			&apperrors.AppError{Code: apperrors.ErrCodeInvalidInput, HTTPStatus: 400},
			"Bad request",
		},
		{
			"500 without server message",
			&apperrors.AppError{Code: apperrors.ErrCodeInternal, HTTPStatus: 500},
			"try again later",
		},
		{
			"network failure names base url and env var",
			apperrors.NewNetworkError("", nil),
			"HOSTDECK_API_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			m := newTestAuthManager(t, &stubBackend{signInErr: tt.err}, store)

			res := m.Login(context.Background(), "alice", "secret")
			assert.False(t, res.Success)
			assert.Contains(t, res.Message, tt.wantMsg)
			assert.Empty(t, store.data, "failed login must not persist a session")
		})
	}
}

func TestLoginNetworkMessageNamesBaseURL(t *testing.T) {
	m := newTestAuthManager(t, &stubBackend{signInErr: apperrors.NewNetworkError("dial refused", nil)}, newFakeStore())

	res := m.Login(context.Background(), "alice", "secret")
	assert.Contains(t, res.Message, "http://localhost:8080")
}

func TestRoleMapping(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  domain.Role
	}{
		{"admin wins over operator", []string{"ROLE_OPERATOR", "ROLE_ADMIN"}, domain.RoleAdmin},
		{"operator", []string{"ROLE_USER", "ROLE_OPERATOR"}, domain.RoleOperator},
		{"plain user", []string{"ROLE_USER"}, domain.RoleViewer},
		{"empty roles", nil, domain.RoleViewer},
		{"unknown spelling", []string{"ROLE_SUPERUSER"}, domain.RoleViewer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapBackendRoles(tt.roles))
		})
	}
}

func TestLoginUserDefaults(t *testing.T) {
	store := newFakeStore()
	backend := &stubBackend{signInResult: &ports.SignInResult{Token: "a.b.c"}}
	m := newTestAuthManager(t, backend, store)

	res := m.Login(context.Background(), "bob", "pw")

	require.True(t, res.Success)
	assert.Equal(t, "1", res.User.ID)
	assert.Equal(t, "bob", res.User.Username)
	assert.Equal(t, "Bob", res.User.Name)
	assert.Equal(t, "bob@example.com", res.User.Email)
	assert.Equal(t, domain.RoleViewer, res.User.Role)
}

func TestRegisterNeverPersists(t *testing.T) {
	store := newFakeStore()
	m := newTestAuthManager(t, &stubBackend{}, store)

	res := m.Register(context.Background(), RegisterParams{Username: "bob", Email: "bob@example.com", Password: "pw123456"})

	assert.True(t, res.Success)
	assert.Empty(t, store.data)
}

func TestRegisterForwardsRequestedRole(t *testing.T) {
	backend := &stubBackend{}
	m := newTestAuthManager(t, backend, newFakeStore())

	res := m.Register(context.Background(), RegisterParams{Username: "carol", Email: "carol@example.com", Password: "pw123456", Role: "admin"})

	require.True(t, res.Success)
	assert.Equal(t, "admin", backend.signUpRole)
}

func TestLogoutClearsSession(t *testing.T) {
	store := newFakeStore()
	backend := &stubBackend{signInResult: validSignIn("ROLE_ADMIN")}
	m := newTestAuthManager(t, backend, store)

	require.True(t, m.Login(context.Background(), "alice", "secret").Success)
	require.True(t, m.IsAuthenticated())

	m.Logout()

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, store.data)
	assert.Nil(t, m.GetUser())
}

func TestLoginOperatorEndToEnd(t *testing.T) {
	store := newFakeStore()
	backend := &stubBackend{signInResult: &ports.SignInResult{Token: "t1", ID: "2", Username: "alice", Roles: []string{"ROLE_OPERATOR"}}}
	m := newTestAuthManager(t, backend, store)

	res := m.Login(context.Background(), "alice", "secret")
	require.True(t, res.Success)
	assert.Equal(t, "2", res.User.ID)
	assert.Equal(t, domain.RoleOperator, res.User.Role)
	assert.Equal(t, domain.DefaultPolicy().Permissions(domain.RoleOperator), res.User.Permissions)

	assert.True(t, m.IsAuthenticated())
	m.Logout()
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, store.data)
}

func TestIsAuthenticatedClearsExpiredToken(t *testing.T) {
	store := newFakeStore()
	m := newTestAuthManager(t, &stubBackend{}, store)

	expired := makeToken(t, map[string]interface{}{"exp": time.Now().Add(-time.Hour).Unix()})
	store.Set(ports.KeyAuthToken, expired)
	store.Set(ports.KeyAuthUser, `{"id":"1","username":"stale","role":"admin"}`)

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, store.data, "expired token clears the whole session")
}

func TestAuthStateHidesStaleValues(t *testing.T) {
	store := newFakeStore()
	m := newTestAuthManager(t, &stubBackend{}, store)

	// user present but no token
	store.Set(ports.KeyAuthUser, `{"id":"1","username":"stale","role":"admin"}`)

	state := m.AuthState()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
}

func TestGetUserRecomputesPermissions(t *testing.T) {
	store := newFakeStore()
	m := newTestAuthManager(t, &stubBackend{}, store)

	// stored permissions are bogus; role is what counts
	store.Set(ports.KeyAuthUser, `{"id":"2","username":"eve","role":"viewer","permissions":["system:write"]}`)

	u := m.GetUser()
	require.NotNil(t, u)
	assert.NotContains(t, u.Permissions, "system:write")
	assert.Contains(t, u.Permissions, "device:read")
}
