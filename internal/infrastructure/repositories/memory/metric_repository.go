package memory

import (
	"context"
	"sync"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// maxSamplesPerServer bounds the in-memory ring per server.
const maxSamplesPerServer = 1000

type MemoryMetricRepository struct {
	mu      sync.RWMutex
	samples map[string][]domain.MetricSample
}

func NewMemoryMetricRepository() *MemoryMetricRepository {
	return &MemoryMetricRepository{samples: map[string][]domain.MetricSample{}}
}

func (r *MemoryMetricRepository) Append(_ context.Context, sample domain.MetricSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	series := append(r.samples[sample.ServerID], sample)
	if len(series) > maxSamplesPerServer {
		series = series[len(series)-maxSamplesPerServer:]
	}
	r.samples[sample.ServerID] = series
	return nil
}

// Recent returns up to limit samples for a server, newest first.
func (r *MemoryMetricRepository) Recent(_ context.Context, serverID string, limit int) ([]domain.MetricSample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	series := r.samples[serverID]
	if limit <= 0 || limit > len(series) {
		limit = len(series)
	}
	out := make([]domain.MetricSample, 0, limit)
	for i := len(series) - 1; i >= len(series)-limit; i-- {
		out = append(out, series[i])
	}
	return out, nil
}

// Latest returns the newest sample per server.
func (r *MemoryMetricRepository) Latest(_ context.Context) ([]domain.MetricSample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MetricSample, 0, len(r.samples))
	for _, series := range r.samples {
		if len(series) > 0 {
			out = append(out, series[len(series)-1])
		}
	}
	return out, nil
}

var _ ports.MetricRepository = (*MemoryMetricRepository)(nil)
