package ports

import (
	"context"

	"hostdeck/internal/core/domain"
)

// SignInResult is the backend's successful sign-in payload.
type SignInResult struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// AuthBackend is the authentication side of the management backend.
// The HTTP client and the in-process demo backend both implement it.
type AuthBackend interface {
	SignIn(ctx context.Context, usernameOrEmail, password string) (*SignInResult, error)
	// SignUp creates an account. An empty role leaves the tier choice to
	// the backend.
	SignUp(ctx context.Context, username, email, password, role string) error
}

// APIBackend covers the resource endpoints of the management backend.
// Wire shapes are raw backend DTOs; the services own the mapping to
// domain types.
type APIBackend interface {
	ListServers(ctx context.Context) ([]ServerDTO, error)
	GetServer(ctx context.Context, id string) (*ServerDTO, error)
	CreateServer(ctx context.Context, in ServerDTO) (*ServerDTO, error)
	UpdateServer(ctx context.Context, id string, in ServerDTO) (*ServerDTO, error)
	DeleteServer(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]ProjectDTO, error)
	GetProject(ctx context.Context, id string) (*ProjectDTO, error)
	CreateProject(ctx context.Context, in ProjectDTO) (*ProjectDTO, error)
	UpdateProject(ctx context.Context, id string, in ProjectDTO) (*ProjectDTO, error)
	DeleteProject(ctx context.Context, id string) error

	ListAlertRules(ctx context.Context) ([]AlertRuleDTO, error)
	CreateAlertRule(ctx context.Context, in AlertRuleDTO) (*AlertRuleDTO, error)
	UpdateAlertRule(ctx context.Context, id string, in AlertRuleDTO) (*AlertRuleDTO, error)
	DeleteAlertRule(ctx context.Context, id string) error
	SetAlertRuleEnabled(ctx context.Context, id string, enabled bool) (*AlertRuleDTO, error)

	ListAlertEvents(ctx context.Context) ([]AlertEventDTO, error)
	AcknowledgeAlertEvent(ctx context.Context, id string) (*AlertEventDTO, error)
	ResolveAlertEvent(ctx context.Context, id string) (*AlertEventDTO, error)

	ListUsers(ctx context.Context) ([]UserDTO, error)
	GetUser(ctx context.Context, id string) (*UserDTO, error)
	CreateUser(ctx context.Context, in UserDTO) (*UserDTO, error)
	UpdateUser(ctx context.Context, id string, in UserDTO) (*UserDTO, error)
	DeleteUser(ctx context.Context, id string) error

	ListMetrics(ctx context.Context, serverID string, limit int) ([]domain.MetricSample, error)
	LatestMetrics(ctx context.Context) ([]domain.MetricSample, error)
}
