package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/internal/infrastructure/repositories/memory"
)

func TestGeneratorProducesSamplesForOnlineServers(t *testing.T) {
	ctx := context.Background()
	servers := memory.NewMemoryServerRepository()
	metrics := memory.NewMemoryMetricRepository()

	require.NoError(t, servers.Create(ctx, &ports.ServerDTO{ServerName: "web-01", IPAddress: "10.0.0.1", Status: "online"}))
	require.NoError(t, servers.Create(ctx, &ports.ServerDTO{ServerName: "db-01", IPAddress: "10.0.0.2", Status: "offline"}))

	g := NewMetricsGenerator(servers, metrics, time.Minute, zap.NewNop())

	var seen []domain.MetricSample
	g.OnSample(func(s domain.MetricSample) { seen = append(seen, s) })
	var batches int
	g.OnTick(func(batch []domain.MetricSample) { batches++ })

	g.tick(ctx)
	g.tick(ctx)

	assert.Len(t, seen, 2, "offline server must be skipped")
	assert.Equal(t, 2, batches)

	recent, err := metrics.Recent(ctx, "1", 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	recent, err = metrics.Recent(ctx, "2", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestGeneratorSamplesStayInRange(t *testing.T) {
	ctx := context.Background()
	servers := memory.NewMemoryServerRepository()
	metrics := memory.NewMemoryMetricRepository()
	require.NoError(t, servers.Create(ctx, &ports.ServerDTO{ServerName: "web-01", IPAddress: "10.0.0.1", Status: "online"}))

	g := NewMetricsGenerator(servers, metrics, time.Minute, zap.NewNop())
	for i := 0; i < 200; i++ {
		g.tick(ctx)
	}

	recent, err := metrics.Recent(ctx, "1", 200)
	require.NoError(t, err)
	require.Len(t, recent, 200)
	for _, s := range recent {
		assert.GreaterOrEqual(t, s.CPUUsage, 1.0)
		assert.LessOrEqual(t, s.CPUUsage, 99.0)
		assert.GreaterOrEqual(t, s.MemoryUsage, 5.0)
		assert.LessOrEqual(t, s.MemoryUsage, 99.0)
		assert.GreaterOrEqual(t, s.Temperature, 25.0)
		assert.LessOrEqual(t, s.Temperature, 95.0)
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, "1", s.ServerID)
	}
}

func TestGeneratorRunStopsOnContextCancel(t *testing.T) {
	servers := memory.NewMemoryServerRepository()
	metrics := memory.NewMemoryMetricRepository()
	g := NewMetricsGenerator(servers, metrics, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("generator did not stop after cancel")
	}
}
