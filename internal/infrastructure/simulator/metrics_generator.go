package simulator

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// MetricsGenerator produces random-walk samples for every registered
// server on a fixed interval, the demo stand-in for real agents.
type MetricsGenerator struct {
	servers  ports.ServerRepository
	metrics  ports.MetricRepository
	interval time.Duration
	logger   *zap.Logger

	onSample func(domain.MetricSample)
	onTick   func([]domain.MetricSample)

	rng   *rand.Rand
	state map[string]*walkState
}

type walkState struct {
	cpu, mem, disk, temp, load float64
}

func NewMetricsGenerator(servers ports.ServerRepository, metrics ports.MetricRepository, interval time.Duration, logger *zap.Logger) *MetricsGenerator {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &MetricsGenerator{
		servers:  servers,
		metrics:  metrics,
		interval: interval,
		logger:   logger,
		onSample: func(domain.MetricSample) {},
		onTick:   func([]domain.MetricSample) {},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		state:    map[string]*walkState{},
	}
}

// OnSample registers a callback invoked for every generated sample.
func (g *MetricsGenerator) OnSample(fn func(domain.MetricSample)) {
	if fn != nil {
		g.onSample = fn
	}
}

// OnTick registers a callback invoked once per interval with the whole
// batch, after it has been stored.
func (g *MetricsGenerator) OnTick(fn func([]domain.MetricSample)) {
	if fn != nil {
		g.onTick = fn
	}
}

// Run blocks, generating one batch per interval until ctx is done.
func (g *MetricsGenerator) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.logger.Info("metrics generator started", zap.Duration("interval", g.interval))
	for {
		select {
		case <-ctx.Done():
			g.logger.Info("metrics generator stopped")
			return
		case <-ticker.C:
			g.tick(ctx)
		}
	}
}

func (g *MetricsGenerator) tick(ctx context.Context) {
	servers, err := g.servers.List(ctx)
	if err != nil {
		g.logger.Warn("listing servers for metric generation", zap.Error(err))
		return
	}

	batch := make([]domain.MetricSample, 0, len(servers))
	now := time.Now().UTC()
	for _, srv := range servers {
		if srv.Status == "offline" {
			continue
		}
		id := strconv.FormatInt(srv.ID, 10)
		sample := g.next(id, now)
		if err := g.metrics.Append(ctx, sample); err != nil {
			g.logger.Warn("storing metric sample", zap.String("server", id), zap.Error(err))
			continue
		}
		g.onSample(sample)
		batch = append(batch, sample)
	}
	if len(batch) > 0 {
		g.onTick(batch)
	}
}

func (g *MetricsGenerator) next(serverID string, ts time.Time) domain.MetricSample {
	st, ok := g.state[serverID]
	if !ok {
		st = &walkState{
			cpu:  20 + g.rng.Float64()*40,
			mem:  30 + g.rng.Float64()*40,
			disk: 40 + g.rng.Float64()*30,
			temp: 38 + g.rng.Float64()*15,
			load: 0.5 + g.rng.Float64()*3,
		}
		g.state[serverID] = st
	}

	st.cpu = clamp(st.cpu+g.rng.Float64()*12-6, 1, 99)
	st.mem = clamp(st.mem+g.rng.Float64()*6-3, 5, 99)
	st.disk = clamp(st.disk+g.rng.Float64()*1-0.4, 10, 99)
	st.temp = clamp(st.temp+g.rng.Float64()*4-2, 25, 95)
	st.load = clamp(st.load+g.rng.Float64()*1-0.5, 0, 32)

	return domain.MetricSample{
		ID:          uuid.NewString(),
		ServerID:    serverID,
		CPUUsage:    st.cpu,
		MemoryUsage: st.mem,
		DiskUsage:   st.disk,
		NetworkIn:   clamp(g.rng.Float64()*150, 0, 1000),
		NetworkOut:  clamp(g.rng.Float64()*90, 0, 1000),
		Temperature: st.temp,
		LoadAvg:     st.load,
		CollectedAt: ts,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
