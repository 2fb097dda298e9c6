package services

import (
	"context"
	"time"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/pkg/cache"
)

const serverListCacheKey = "servers:list"

// ServerListTTL is deliberately short: the console tolerates a few seconds
// of staleness but not more.
const ServerListTTL = 5 * time.Second

// CachedServerService decorates a ServerService with a short TTL cache on
// List. Writes invalidate the cache so the next read is fresh.
type CachedServerService struct {
	*ServerService
	cache *cache.WithFallback
}

func NewCachedServerService(inner *ServerService, c *cache.WithFallback) *CachedServerService {
	return &CachedServerService{ServerService: inner, cache: c}
}

// List serves from cache within the TTL, loading from the backend on miss.
func (s *CachedServerService) List(ctx context.Context) ([]domain.Device, error) {
	v, err := s.cache.GetOrSet(ctx, serverListCacheKey, func(ctx context.Context) (interface{}, error) {
		return s.ServerService.List(ctx)
	}, ServerListTTL)
	if err != nil {
		return nil, err
	}
	devices, _ := v.([]domain.Device)
	return devices, nil
}

// ListFresh drops the cached list and hits the backend.
func (s *CachedServerService) ListFresh(ctx context.Context) ([]domain.Device, error) {
	s.cache.Invalidate(serverListCacheKey)
	return s.List(ctx)
}

func (s *CachedServerService) Create(ctx context.Context, in domain.DeviceInput) (*domain.Device, error) {
	d, err := s.ServerService.Create(ctx, in)
	if err == nil {
		s.cache.Invalidate(serverListCacheKey)
	}
	return d, err
}

func (s *CachedServerService) Update(ctx context.Context, id string, in domain.DeviceInput) (*domain.Device, error) {
	d, err := s.ServerService.Update(ctx, id, in)
	if err == nil {
		s.cache.Invalidate(serverListCacheKey)
	}
	return d, err
}

func (s *CachedServerService) Delete(ctx context.Context, id string) error {
	err := s.ServerService.Delete(ctx, id)
	if err == nil {
		s.cache.Invalidate(serverListCacheKey)
	}
	return err
}

var _ ports.ServerService = (*CachedServerService)(nil)
