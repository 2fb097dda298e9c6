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
	"hostdeck/pkg/cache"
)

type countingAPI struct {
	ports.APIBackend
	listCalls int
	servers   []ports.ServerDTO
}

func (a *countingAPI) ListServers(_ context.Context) ([]ports.ServerDTO, error) {
	a.listCalls++
	return a.servers, nil
}

func (a *countingAPI) CreateServer(_ context.Context, in ports.ServerDTO) (*ports.ServerDTO, error) {
	in.ID = int64(len(a.servers) + 1)
	a.servers = append(a.servers, in)
	return &in, nil
}

func newCachedService(t *testing.T, api ports.APIBackend) (*CachedServerService, *cache.WithFallback) {
	t.Helper()
	c := cache.NewWithFallback(time.Minute)
	t.Cleanup(c.Stop)
	inner := NewServerService(api, zaptest.NewLogger(t))
	return NewCachedServerService(inner, c), c
}

func TestCachedListHitsBackendOnce(t *testing.T) {
	api := &countingAPI{servers: []ports.ServerDTO{{ID: 1, ServerName: "web-01", IPAddress: "10.0.0.1", Status: "online"}}}
	svc, _ := newCachedService(t, api)

	for i := 0; i < 3; i++ {
		devices, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, devices, 1)
		assert.Equal(t, "web-01", devices[0].Hostname)
	}

	assert.Equal(t, 1, api.listCalls)
}

func TestListFreshBypassesCache(t *testing.T) {
	api := &countingAPI{}
	svc, _ := newCachedService(t, api)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.ListFresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, api.listCalls)
}

func TestWritesInvalidateCache(t *testing.T) {
	api := &countingAPI{}
	svc, _ := newCachedService(t, api)

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.DeviceInput{Hostname: "db-01", IPAddress: "10.0.0.2"})
	require.NoError(t, err)

	devices, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, devices, 1)
	assert.Equal(t, 2, api.listCalls, "cache was invalidated by the write")
}
