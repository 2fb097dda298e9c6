package ports

import (
	"context"

	"hostdeck/internal/core/domain"
)

// Repositories backing the demo server. The memory implementation always
// exists; the Redis one is selected by config with memory fallback.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, string, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

type ServerRepository interface {
	Create(ctx context.Context, dto *ServerDTO) error
	GetByID(ctx context.Context, id int64) (*ServerDTO, error)
	GetByName(ctx context.Context, name string) (*ServerDTO, error)
	List(ctx context.Context) ([]ServerDTO, error)
	Update(ctx context.Context, dto *ServerDTO) error
	Delete(ctx context.Context, id int64) error
}

type ProjectRepository interface {
	Create(ctx context.Context, dto *ProjectDTO) error
	GetByID(ctx context.Context, id int64) (*ProjectDTO, error)
	List(ctx context.Context) ([]ProjectDTO, error)
	Update(ctx context.Context, dto *ProjectDTO) error
	Delete(ctx context.Context, id int64) error
}

type AlertRuleRepository interface {
	Create(ctx context.Context, dto *AlertRuleDTO) error
	GetByID(ctx context.Context, id int64) (*AlertRuleDTO, error)
	List(ctx context.Context) ([]AlertRuleDTO, error)
	ListEnabled(ctx context.Context) ([]AlertRuleDTO, error)
	Update(ctx context.Context, dto *AlertRuleDTO) error
	Delete(ctx context.Context, id int64) error
}

type AlertEventRepository interface {
	Create(ctx context.Context, dto *AlertEventDTO) error
	GetByID(ctx context.Context, id int64) (*AlertEventDTO, error)
	List(ctx context.Context) ([]AlertEventDTO, error)
	FindFiring(ctx context.Context, ruleID, serverID int64) (*AlertEventDTO, error)
	Update(ctx context.Context, dto *AlertEventDTO) error
}

type MetricRepository interface {
	Append(ctx context.Context, sample domain.MetricSample) error
	Recent(ctx context.Context, serverID string, limit int) ([]domain.MetricSample, error)
	Latest(ctx context.Context) ([]domain.MetricSample, error)
}
