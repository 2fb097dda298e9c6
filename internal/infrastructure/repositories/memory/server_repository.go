package memory

import (
	"context"
	"sort"
	"sync"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type MemoryServerRepository struct {
	mu      sync.RWMutex
	servers map[int64]ports.ServerDTO
	nextID  int64
}

func NewMemoryServerRepository() *MemoryServerRepository {
	return &MemoryServerRepository{servers: map[int64]ports.ServerDTO{}}
}

func (r *MemoryServerRepository) Create(_ context.Context, dto *ports.ServerDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dto.ID == 0 {
		r.nextID++
		dto.ID = r.nextID
	} else if dto.ID > r.nextID {
		r.nextID = dto.ID
	}
	r.servers[dto.ID] = *dto
	return nil
}

func (r *MemoryServerRepository) GetByID(_ context.Context, id int64) (*ports.ServerDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dto, ok := r.servers[id]
	if !ok {
		return nil, domain.ErrServerNotFound
	}
	return &dto, nil
}

func (r *MemoryServerRepository) GetByName(_ context.Context, name string) (*ports.ServerDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, dto := range r.servers {
		if dto.ServerName == name {
			d := dto
			return &d, nil
		}
	}
	return nil, domain.ErrServerNotFound
}

func (r *MemoryServerRepository) List(_ context.Context) ([]ports.ServerDTO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ports.ServerDTO, 0, len(r.servers))
	for _, dto := range r.servers {
		out = append(out, dto)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryServerRepository) Update(_ context.Context, dto *ports.ServerDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.servers[dto.ID]; !ok {
		return domain.ErrServerNotFound
	}
	r.servers[dto.ID] = *dto
	return nil
}

func (r *MemoryServerRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.servers[id]; !ok {
		return domain.ErrServerNotFound
	}
	delete(r.servers, id)
	return nil
}

var _ ports.ServerRepository = (*MemoryServerRepository)(nil)
