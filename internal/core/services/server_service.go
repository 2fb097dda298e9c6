package services

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// ServerService maps the backend's server DTOs onto the console's Device
// view. Errors pass through as typed AppErrors from the API client.
type ServerService struct {
	api    ports.APIBackend
	logger *zap.Logger
}

func NewServerService(api ports.APIBackend, logger *zap.Logger) *ServerService {
	return &ServerService{api: api, logger: logger}
}

func (s *ServerService) List(ctx context.Context) ([]domain.Device, error) {
	dtos, err := s.api.ListServers(ctx)
	if err != nil {
		return nil, err
	}
	devices := make([]domain.Device, 0, len(dtos))
	for _, dto := range dtos {
		devices = append(devices, deviceFromDTO(dto))
	}
	return devices, nil
}

func (s *ServerService) Get(ctx context.Context, id string) (*domain.Device, error) {
	dto, err := s.api.GetServer(ctx, id)
	if err != nil {
		return nil, err
	}
	d := deviceFromDTO(*dto)
	return &d, nil
}

func (s *ServerService) Create(ctx context.Context, in domain.DeviceInput) (*domain.Device, error) {
	dto, err := s.api.CreateServer(ctx, deviceInputToDTO(in))
	if err != nil {
		return nil, err
	}
	s.logger.Info("server created", zap.String("name", in.Hostname))
	d := deviceFromDTO(*dto)
	return &d, nil
}

func (s *ServerService) Update(ctx context.Context, id string, in domain.DeviceInput) (*domain.Device, error) {
	dto, err := s.api.UpdateServer(ctx, id, deviceInputToDTO(in))
	if err != nil {
		return nil, err
	}
	d := deviceFromDTO(*dto)
	return &d, nil
}

func (s *ServerService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteServer(ctx, id)
}

func (s *ServerService) Metrics(ctx context.Context, serverID string, limit int) ([]domain.MetricSample, error) {
	if limit <= 0 {
		limit = 200
	}
	return s.api.ListMetrics(ctx, serverID, limit)
}

// LatestMetrics flattens the most recent sample into named gauges the way
// dashboard cards want them.
func (s *ServerService) LatestMetrics(ctx context.Context, serverID string) ([]domain.LatestMetric, error) {
	samples, err := s.api.ListMetrics(ctx, serverID, 1)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}

	m := samples[0]
	gauges := []struct {
		name  string
		value float64
	}{
		{"CPU Usage", m.CPUUsage},
		{"Memory Usage", m.MemoryUsage},
		{"Disk Usage", m.DiskUsage},
		{"Network In", m.NetworkIn},
		{"Temperature", m.Temperature},
		{"Load Average", m.LoadAvg},
	}

	result := make([]domain.LatestMetric, 0, len(gauges))
	for i, g := range gauges {
		result = append(result, domain.LatestMetric{
			ID:         strconv.Itoa(i + 1),
			MetricType: g.name,
			Value:      g.value,
			Unit:       domain.MetricUnit(g.name),
			Timestamp:  m.CollectedAt,
		})
	}
	return result, nil
}

// Overview returns the newest sample per server across the whole fleet.
func (s *ServerService) Overview(ctx context.Context) ([]domain.MetricSample, error) {
	return s.api.LatestMetrics(ctx)
}

func deviceFromDTO(dto ports.ServerDTO) domain.Device {
	return domain.Device{
		ID:         strconv.FormatInt(dto.ID, 10),
		Hostname:   dto.ServerName,
		IPAddress:  dto.IPAddress,
		Status:     domain.ParseDeviceStatus(dto.Status),
		OS:         dto.OperatingSystem,
		CPU:        dto.CPU,
		Memory:     dto.Memory,
		LastUpdate: parseBackendTime(dto.UpdatedAt),
	}
}

func deviceInputToDTO(in domain.DeviceInput) ports.ServerDTO {
	status := in.Status
	if status == "" {
		status = domain.StatusUnknown
	}
	return ports.ServerDTO{
		ServerName:      in.Hostname,
		IPAddress:       in.IPAddress,
		OperatingSystem: in.OS,
		CPU:             in.CPU,
		Memory:          in.Memory,
		Status:          string(status),
	}
}

func parseBackendTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

var _ ports.ServerService = (*ServerService)(nil)
