package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// UserService manages accounts through the backend's user endpoints.
// Creation goes through the sign-up endpoint; there is no separate admin
// create call.
type UserService struct {
	api     ports.APIBackend
	backend ports.AuthBackend
	policy  *domain.Policy
	logger  *zap.Logger
}

func NewUserService(api ports.APIBackend, backend ports.AuthBackend, policy *domain.Policy, logger *zap.Logger) *UserService {
	return &UserService{api: api, backend: backend, policy: policy, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	dtos, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, s.userFromDTO(dto))
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	dto, err := s.api.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u := s.userFromDTO(*dto)
	return &u, nil
}

func (s *UserService) Register(ctx context.Context, username, email, password string, role domain.Role) error {
	if err := s.backend.SignUp(ctx, username, email, password, string(role)); err != nil {
		return err
	}
	s.logger.Info("user registered", zap.String("username", username), zap.String("role", string(role)))
	return nil
}

func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	dto, err := s.api.UpdateUser(ctx, id, ports.UserDTO{Role: backendRoleString(role)})
	if err != nil {
		return nil, err
	}
	u := s.userFromDTO(*dto)
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteUser(ctx, id)
}

func (s *UserService) userFromDTO(dto ports.UserDTO) domain.User {
	u := domain.User{
		ID:        strconv.FormatInt(dto.ID, 10),
		Username:  dto.Username,
		Name:      capitalize(dto.Username),
		Email:     dto.Email,
		Role:      roleFromBackendString(dto.Role),
		CreatedAt: parseBackendTime(dto.CreatedAt),
	}
	s.policy.Apply(&u)
	return u
}

// roleFromBackendString maps the backend's single-role spelling onto a
// console tier. "operation" is the backend's name for the operator tier.
func roleFromBackendString(role string) domain.Role {
	switch role {
	case "admin":
		return domain.RoleAdmin
	case "operation", "operator":
		return domain.RoleOperator
	default:
		return domain.RoleViewer
	}
}

func backendRoleString(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "admin"
	case domain.RoleOperator:
		return "operation"
	default:
		return "manager"
	}
}

var _ ports.UserService = (*UserService)(nil)
