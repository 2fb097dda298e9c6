package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	apperrors "hostdeck/pkg/errors"
)

// AuthResult is the outcome of login/register. These operations never
// return a Go error; every failure folds into Success=false with a
// user-facing message.
type AuthResult struct {
	Success bool
	Message string
	User    *domain.User
}

// RegisterParams carries the sign-up form fields.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthManager owns the console session: sign-in/out against the backend,
// session persistence, and the authenticated-state computation. The backend
// may be the real HTTP API or the in-process demo backend; the manager does
// not care which.
type AuthManager struct {
	backend ports.AuthBackend
	session *SessionStore
	expiry  *TokenExpiry
	policy  *domain.Policy
	baseURL string
	logger  *zap.Logger
}

func NewAuthManager(backend ports.AuthBackend, session *SessionStore, expiry *TokenExpiry, policy *domain.Policy, baseURL string, logger *zap.Logger) *AuthManager {
	return &AuthManager{
		backend: backend,
		session: session,
		expiry:  expiry,
		policy:  policy,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Login signs in against the backend, persists the session on success and
// classifies every failure into a user-facing message.
func (m *AuthManager) Login(ctx context.Context, username, password string) AuthResult {
	if username == "" || password == "" {
		return AuthResult{Message: "Please enter both username and password"}
	}

	res, err := m.backend.SignIn(ctx, username, password)
	if err != nil {
		msg := m.classifyAuthError(err, "Invalid username or password")
		m.logger.Debug("login failed", zap.String("username", username), zap.String("reason", msg))
		return AuthResult{Message: msg}
	}

	if res == nil || res.Token == "" {
		return AuthResult{Message: "Login failed: token is missing in server response"}
	}

	user := m.buildUser(res, username)
	m.session.SetToken(res.Token)
	m.session.SetUser(user)
	m.logger.Info("login successful", zap.String("username", user.Username), zap.String("role", string(user.Role)))

	return AuthResult{Success: true, Message: "Login successful", User: user}
}

// Register creates an account, forwarding the requested role when one was
// given. It never persists a session: a freshly registered user still has
// to log in.
func (m *AuthManager) Register(ctx context.Context, params RegisterParams) AuthResult {
	if err := m.backend.SignUp(ctx, params.Username, params.Email, params.Password, params.Role); err != nil {
		return AuthResult{Message: m.classifyAuthError(err, "Registration failed")}
	}
	return AuthResult{Success: true, Message: "Registration successful"}
}

// Logout drops the whole session. Callers decide what to show next.
func (m *AuthManager) Logout() {
	m.session.Clear()
	m.logger.Info("logged out")
}

// IsAuthenticated reports whether a live token is held. An expired token is
// cleared on sight.
func (m *AuthManager) IsAuthenticated() bool {
	token, ok := m.session.Token()
	if !ok || token == "" {
		return false
	}
	if m.expiry.IsExpired(token) {
		m.session.Clear()
		return false
	}
	return true
}

// AuthState computes the current state fresh. When not authenticated, user
// and token are absent even if stale values linger in storage.
func (m *AuthManager) AuthState() domain.AuthState {
	if !m.IsAuthenticated() {
		return domain.AuthState{}
	}
	token, _ := m.session.Token()
	return domain.AuthState{
		IsAuthenticated: true,
		User:            m.GetUser(),
		Token:           token,
	}
}

// GetUser returns the stored user with permissions recomputed from the
// policy. Stored permission arrays are never trusted.
func (m *AuthManager) GetUser() *domain.User {
	u := m.session.User()
	if u == nil {
		return nil
	}
	m.policy.Apply(u)
	return u
}

func (m *AuthManager) SetUser(u *domain.User) {
	if u != nil {
		m.policy.Apply(u)
	}
	m.session.SetUser(u)
}

func (m *AuthManager) Token() string {
	token, _ := m.session.Token()
	return token
}

func (m *AuthManager) buildUser(res *ports.SignInResult, fallbackUsername string) *domain.User {
	username := res.Username
	if username == "" {
		username = fallbackUsername
	}
	id := res.ID
	if id == "" {
		id = "1"
	}
	email := res.Email
	if email == "" {
		email = username + "@example.com"
	}

	u := &domain.User{
		ID:       id,
		Username: username,
		Name:     capitalize(username),
		Email:    email,
		Role:     mapBackendRoles(res.Roles),
	}
	m.policy.Apply(u)
	return u
}

// mapBackendRoles folds the backend's ROLE_* strings into a console tier.
// Unknown spellings fall back to viewer, never an error.
func mapBackendRoles(roles []string) domain.Role {
	for _, r := range roles {
		if strings.EqualFold(r, "ROLE_ADMIN") {
			return domain.RoleAdmin
		}
	}
	for _, r := range roles {
		if strings.EqualFold(r, "ROLE_OPERATOR") {
			return domain.RoleOperator
		}
	}
	return domain.RoleViewer
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// classifyAuthError turns a backend error into the message shown to the
// user. Server-supplied messages win over generic fallbacks.
func (m *AuthManager) classifyAuthError(err error, unauthorizedFallback string) string {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		return err.Error()
	}

	serverMsg := appErr.Message

	switch {
	case appErr.Code == apperrors.ErrCodeNetwork:
		return fmt.Sprintf("Unable to reach the server at %s. Check your connection or the %s environment variable.", m.baseURL, "HOSTDECK_API_URL")
	case appErr.HTTPStatus == 401:
		if serverMsg != "" {
			return serverMsg
		}
		return unauthorizedFallback
	case appErr.HTTPStatus == 400:
		if serverMsg != "" {
			return serverMsg
		}
		return "Bad request: the server rejected the submitted data"
	case appErr.HTTPStatus >= 500:
		if serverMsg != "" {
			return serverMsg
		}
		return "Server error. Please try again later."
	default:
		if serverMsg != "" {
			return serverMsg
		}
		return fmt.Sprintf("request failed with status %d", appErr.HTTPStatus)
	}
}
