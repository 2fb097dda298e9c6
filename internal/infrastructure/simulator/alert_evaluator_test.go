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

func newEvaluatorFixture(t *testing.T) (*AlertEvaluator, ports.AlertRuleRepository, ports.AlertEventRepository, ports.MetricRepository) {
	t.Helper()
	rules := memory.NewMemoryAlertRuleRepository()
	events := memory.NewMemoryAlertEventRepository()
	metrics := memory.NewMemoryMetricRepository()
	ev := NewAlertEvaluator(rules, events, metrics, time.Minute, zap.NewNop())
	return ev, rules, events, metrics
}

func sampleWithCPU(serverID string, cpu float64) domain.MetricSample {
	return domain.MetricSample{
		ID:          "s-" + serverID,
		ServerID:    serverID,
		CPUUsage:    cpu,
		MemoryUsage: 40,
		CollectedAt: time.Now().UTC(),
	}
}

func TestEvaluateOpensEventOnBreach(t *testing.T) {
	ev, rules, events, metrics := newEvaluatorFixture(t)
	ctx := context.Background()

	require.NoError(t, rules.Create(ctx, &ports.AlertRuleDTO{
		RuleName:     "High CPU",
		TargetMetric: "cpu_usage",
		Comparator:   ">",
		Threshold:    80,
		Severity:     "HIGH",
		Enabled:      true,
	}))
	require.NoError(t, metrics.Append(ctx, sampleWithCPU("1", 95)))

	var fired []ports.AlertEventDTO
	ev.OnFiring(func(e ports.AlertEventDTO) { fired = append(fired, e) })

	ev.Evaluate(ctx)

	list, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "firing", list[0].Status)
	assert.Equal(t, "High CPU", list[0].RuleName)
	assert.Equal(t, int64(1), list[0].ServerID)
	assert.InDelta(t, 95, list[0].Value, 0.001)
	assert.Len(t, fired, 1)
}

func TestEvaluateDoesNotDuplicateFiringEvents(t *testing.T) {
	ev, rules, events, metrics := newEvaluatorFixture(t)
	ctx := context.Background()

	require.NoError(t, rules.Create(ctx, &ports.AlertRuleDTO{
		RuleName:     "High CPU",
		TargetMetric: "cpu_usage",
		Comparator:   ">",
		Threshold:    80,
		Severity:     "HIGH",
		Enabled:      true,
	}))
	require.NoError(t, metrics.Append(ctx, sampleWithCPU("1", 95)))

	ev.Evaluate(ctx)
	ev.Evaluate(ctx)
	ev.Evaluate(ctx)

	list, err := events.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEvaluateResolvesWhenConditionClears(t *testing.T) {
	ev, rules, events, metrics := newEvaluatorFixture(t)
	ctx := context.Background()

	require.NoError(t, rules.Create(ctx, &ports.AlertRuleDTO{
		RuleName:     "High CPU",
		TargetMetric: "cpu_usage",
		Comparator:   ">",
		Threshold:    80,
		Severity:     "HIGH",
		Enabled:      true,
	}))
	require.NoError(t, metrics.Append(ctx, sampleWithCPU("1", 95)))
	ev.Evaluate(ctx)

	var resolved []ports.AlertEventDTO
	ev.OnResolved(func(e ports.AlertEventDTO) { resolved = append(resolved, e) })

	require.NoError(t, metrics.Append(ctx, sampleWithCPU("1", 30)))
	ev.Evaluate(ctx)

	list, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "resolved", list[0].Status)
	assert.NotEmpty(t, list[0].ResolvedAt)
	assert.Len(t, resolved, 1)
}

func TestEvaluateSkipsDisabledRules(t *testing.T) {
	ev, rules, events, metrics := newEvaluatorFixture(t)
	ctx := context.Background()

	require.NoError(t, rules.Create(ctx, &ports.AlertRuleDTO{
		RuleName:     "Dormant",
		TargetMetric: "cpu_usage",
		Comparator:   ">",
		Threshold:    1,
		Severity:     "LOW",
		Enabled:      false,
	}))
	require.NoError(t, metrics.Append(ctx, sampleWithCPU("1", 99)))

	ev.Evaluate(ctx)

	list, err := events.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCompare(t *testing.T) {
	assert.True(t, compare(">", 90, 80))
	assert.False(t, compare(">", 80, 80))
	assert.True(t, compare(">=", 80, 80))
	assert.True(t, compare("<", 10, 20))
	assert.True(t, compare("<=", 20, 20))
	assert.True(t, compare("==", 5, 5))
	assert.True(t, compare("!=", 5, 6))
	assert.False(t, compare("bogus", 5, 5))
}

func TestMetricValue(t *testing.T) {
	s := domain.MetricSample{
		CPUUsage:    1,
		MemoryUsage: 2,
		DiskUsage:   3,
		NetworkIn:   4,
		NetworkOut:  5,
		Temperature: 6,
		LoadAvg:     7,
	}
	for metric, want := range map[string]float64{
		"cpu_usage":    1,
		"memory_usage": 2,
		"disk_usage":   3,
		"network_in":   4,
		"network_out":  5,
		"temperature":  6,
		"load_avg":     7,
	} {
		got, ok := metricValue(metric, s)
		assert.True(t, ok, metric)
		assert.Equal(t, want, got, metric)
	}
	_, ok := metricValue("unknown", s)
	assert.False(t, ok)
}
