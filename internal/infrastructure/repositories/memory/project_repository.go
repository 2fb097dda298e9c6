package memory

import (
	"context"
	"sort"
	"sync"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[int64]ports.ProjectDTO
	nextID   int64
}

func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: map[int64]ports.ProjectDTO{}}
}

func (r *MemoryProjectRepository) Create(_ context.Context, dto *ports.ProjectDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dto.ID == 0 {
		r.nextID++
		dto.ID = r.nextID
	} else if dto.ID > r.nextID {
		r.nextID = dto.ID
	}
	r.projects[dto.ID] = *dto
	return nil
}

func (r *MemoryProjectRepository) GetByID(_ context.Context, id int64) (*ports.ProjectDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dto, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &dto, nil
}

func (r *MemoryProjectRepository) List(_ context.Context) ([]ports.ProjectDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.ProjectDTO, 0, len(r.projects))
	for _, dto := range r.projects {
		out = append(out, dto)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryProjectRepository) Update(_ context.Context, dto *ports.ProjectDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[dto.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.projects[dto.ID] = *dto
	return nil
}

func (r *MemoryProjectRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

var _ ports.ProjectRepository = (*MemoryProjectRepository)(nil)
