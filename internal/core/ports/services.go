package ports

import (
	"context"

	"hostdeck/internal/core/domain"
)

// ServerService is the console's view of the server/device resource.
type ServerService interface {
	List(ctx context.Context) ([]domain.Device, error)
	Get(ctx context.Context, id string) (*domain.Device, error)
	Create(ctx context.Context, in domain.DeviceInput) (*domain.Device, error)
	Update(ctx context.Context, id string, in domain.DeviceInput) (*domain.Device, error)
	Delete(ctx context.Context, id string) error
	Metrics(ctx context.Context, serverID string, limit int) ([]domain.MetricSample, error)
	LatestMetrics(ctx context.Context, serverID string) ([]domain.LatestMetric, error)
	Overview(ctx context.Context) ([]domain.MetricSample, error)
}

type ProjectService interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id string, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type AlertRuleService interface {
	List(ctx context.Context) ([]domain.AlertRule, error)
	Create(ctx context.Context, in domain.AlertRuleInput) (*domain.AlertRule, error)
	Update(ctx context.Context, id string, in domain.AlertRuleInput) (*domain.AlertRule, error)
	Delete(ctx context.Context, id string) error
	SetEnabled(ctx context.Context, id string, enabled bool) (*domain.AlertRule, error)
}

type AlertEventService interface {
	List(ctx context.Context) ([]domain.AlertEvent, error)
	Acknowledge(ctx context.Context, id string) (*domain.AlertEvent, error)
	Resolve(ctx context.Context, id string) (*domain.AlertEvent, error)
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Register(ctx context.Context, username, email, password string, role domain.Role) error
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
