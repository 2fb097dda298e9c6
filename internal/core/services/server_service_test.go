package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type serverAPIStub struct {
	ports.APIBackend
	servers []ports.ServerDTO
	samples []domain.MetricSample
	created *ports.ServerDTO
}

func (s *serverAPIStub) ListServers(context.Context) ([]ports.ServerDTO, error) {
	return s.servers, nil
}

func (s *serverAPIStub) CreateServer(_ context.Context, in ports.ServerDTO) (*ports.ServerDTO, error) {
	s.created = &in
	out := in
	out.ID = 7
	return &out, nil
}

func (s *serverAPIStub) ListMetrics(_ context.Context, _ string, limit int) ([]domain.MetricSample, error) {
	if limit < len(s.samples) {
		return s.samples[:limit], nil
	}
	return s.samples, nil
}

func (s *serverAPIStub) LatestMetrics(context.Context) ([]domain.MetricSample, error) {
	return s.samples, nil
}

func TestServerListMapsDTOFields(t *testing.T) {
	stub := &serverAPIStub{servers: []ports.ServerDTO{{
		ID:              3,
		ServerName:      "web-01",
		IPAddress:       "10.0.0.1",
		Status:          "online",
		OperatingSystem: "Ubuntu 22.04",
		CPU:             "8 cores",
		Memory:          "16 GB",
		UpdatedAt:       "2026-08-30T12:00:00Z",
	}}}
	svc := NewServerService(stub, zaptest.NewLogger(t))

	devices, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)

	d := devices[0]
	assert.Equal(t, "3", d.ID)
	assert.Equal(t, "web-01", d.Hostname)
	assert.Equal(t, "10.0.0.1", d.IPAddress)
	assert.Equal(t, domain.StatusOnline, d.Status)
	assert.Equal(t, "Ubuntu 22.04", d.OS)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), d.LastUpdate)
}

func TestServerListNormalizesUnknownStatus(t *testing.T) {
	stub := &serverAPIStub{servers: []ports.ServerDTO{{ID: 1, ServerName: "x", Status: "degraded"}}}
	svc := NewServerService(stub, zaptest.NewLogger(t))

	devices, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnknown, devices[0].Status)
}

func TestServerCreateSendsInputDTO(t *testing.T) {
	stub := &serverAPIStub{}
	svc := NewServerService(stub, zaptest.NewLogger(t))

	d, err := svc.Create(context.Background(), domain.DeviceInput{
		Hostname:  "db-01",
		IPAddress: "10.0.0.2",
		OS:        "Debian 12",
		Status:    domain.StatusOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, "7", d.ID)

	require.NotNil(t, stub.created)
	assert.Equal(t, "db-01", stub.created.ServerName)
	assert.Equal(t, "online", stub.created.Status)
}

func TestServerCreateDefaultsStatusToUnknown(t *testing.T) {
	stub := &serverAPIStub{}
	svc := NewServerService(stub, zaptest.NewLogger(t))

	_, err := svc.Create(context.Background(), domain.DeviceInput{Hostname: "x", IPAddress: "10.0.0.3"})
	require.NoError(t, err)
	assert.Equal(t, "unknown", stub.created.Status)
}

func TestLatestMetricsFlattensNamedGauges(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	stub := &serverAPIStub{samples: []domain.MetricSample{{
		CPUUsage:    55,
		MemoryUsage: 61,
		DiskUsage:   72,
		NetworkIn:   12.5,
		Temperature: 48,
		LoadAvg:     1.3,
		CollectedAt: at,
	}}}
	svc := NewServerService(stub, zaptest.NewLogger(t))

	gauges, err := svc.LatestMetrics(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, gauges, 6)

	assert.Equal(t, "CPU Usage", gauges[0].MetricType)
	assert.Equal(t, 55.0, gauges[0].Value)
	assert.Equal(t, "%", gauges[0].Unit)
	assert.Equal(t, at, gauges[0].Timestamp)

	assert.Equal(t, "Network In", gauges[3].MetricType)
	assert.Equal(t, "MB/s", gauges[3].Unit)
	assert.Equal(t, "Temperature", gauges[4].MetricType)
	assert.Equal(t, "°C", gauges[4].Unit)
}

func TestLatestMetricsEmptyServer(t *testing.T) {
	svc := NewServerService(&serverAPIStub{}, zaptest.NewLogger(t))
	gauges, err := svc.LatestMetrics(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, gauges)
}

func TestOverviewReturnsFleetwideSamples(t *testing.T) {
	stub := &serverAPIStub{samples: []domain.MetricSample{
		{ServerID: "1", CPUUsage: 15},
		{ServerID: "2", CPUUsage: 80},
	}}
	svc := NewServerService(stub, zaptest.NewLogger(t))

	samples, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "1", samples[0].ServerID)
	assert.Equal(t, "2", samples[1].ServerID)
}

func TestParseBackendTime(t *testing.T) {
	assert.True(t, parseBackendTime("").IsZero())
	assert.True(t, parseBackendTime("not a time").IsZero())
	assert.False(t, parseBackendTime("2026-08-30T12:00:00Z").IsZero())
	assert.False(t, parseBackendTime("2026-08-30T12:00:00.123456Z").IsZero())
	assert.False(t, parseBackendTime("2026-08-30T12:00:00").IsZero())
}
