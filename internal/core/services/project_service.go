package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type ProjectService struct {
	api    ports.APIBackend
	logger *zap.Logger
}

func NewProjectService(api ports.APIBackend, logger *zap.Logger) *ProjectService {
	return &ProjectService{api: api, logger: logger}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	dtos, err := s.api.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(dtos))
	for _, dto := range dtos {
		projects = append(projects, projectFromDTO(dto))
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	dto, err := s.api.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	p := projectFromDTO(*dto)
	return &p, nil
}

func (s *ProjectService) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	dto, err := s.api.CreateProject(ctx, projectInputToDTO(in))
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", zap.String("name", in.Name))
	p := projectFromDTO(*dto)
	return &p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in domain.ProjectInput) (*domain.Project, error) {
	dto, err := s.api.UpdateProject(ctx, id, projectInputToDTO(in))
	if err != nil {
		return nil, err
	}
	p := projectFromDTO(*dto)
	return &p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteProject(ctx, id)
}

func projectFromDTO(dto ports.ProjectDTO) domain.Project {
	// the backend sends embedded summaries, bare IDs, or both for the
	// same attachments; summaries win to avoid double counting
	var serverIDs []string
	if len(dto.Servers) > 0 {
		serverIDs = make([]string, 0, len(dto.Servers))
		for _, srv := range dto.Servers {
			serverIDs = append(serverIDs, strconv.FormatInt(srv.ID, 10))
		}
	} else {
		serverIDs = make([]string, 0, len(dto.ServerIDs))
		for _, id := range dto.ServerIDs {
			serverIDs = append(serverIDs, strconv.FormatInt(id, 10))
		}
	}
	return domain.Project{
		ID:        strconv.FormatInt(dto.ID, 10),
		Name:      dto.ProjectName,
		Status:    domain.ParseProjectStatus(dto.Status),
		ServerIDs: serverIDs,
		Duration:  dto.Duration,
		CreatedAt: parseBackendTime(dto.CreatedAt),
		UpdatedAt: parseBackendTime(dto.UpdatedAt),
	}
}

func projectInputToDTO(in domain.ProjectInput) ports.ProjectDTO {
	ids := make([]int64, 0, len(in.ServerIDs))
	for _, s := range in.ServerIDs {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			ids = append(ids, n)
		}
	}
	return ports.ProjectDTO{
		ProjectName: in.Name,
		Status:      string(in.Status),
		ServerIDs:   ids,
		Duration:    in.Duration,
	}
}

var _ ports.ProjectService = (*ProjectService)(nil)
