package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type AlertEventService struct {
	api    ports.APIBackend
	logger *zap.Logger
}

func NewAlertEventService(api ports.APIBackend, logger *zap.Logger) *AlertEventService {
	return &AlertEventService{api: api, logger: logger}
}

func (s *AlertEventService) List(ctx context.Context) ([]domain.AlertEvent, error) {
	dtos, err := s.api.ListAlertEvents(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]domain.AlertEvent, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, eventFromDTO(dto))
	}
	return events, nil
}

func (s *AlertEventService) Acknowledge(ctx context.Context, id string) (*domain.AlertEvent, error) {
	dto, err := s.api.AcknowledgeAlertEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	e := eventFromDTO(*dto)
	return &e, nil
}

func (s *AlertEventService) Resolve(ctx context.Context, id string) (*domain.AlertEvent, error) {
	dto, err := s.api.ResolveAlertEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("alert event resolved", zap.String("id", id))
	e := eventFromDTO(*dto)
	return &e, nil
}

func eventFromDTO(dto ports.AlertEventDTO) domain.AlertEvent {
	e := domain.AlertEvent{
		ID:        strconv.FormatInt(dto.EventID, 10),
		RuleID:    strconv.FormatInt(dto.RuleID, 10),
		RuleName:  dto.RuleName,
		ServerID:  strconv.FormatInt(dto.ServerID, 10),
		Severity:  SeverityFromBackend(dto.Severity),
		Status:    domain.AlertEventStatus(dto.Status),
		Message:   dto.Message,
		Value:     dto.Value,
		StartedAt: parseBackendTime(dto.StartedAt),
	}
	if dto.ResolvedAt != "" {
		t := parseBackendTime(dto.ResolvedAt)
		e.ResolvedAt = &t
	}
	return e
}

var _ ports.AlertEventService = (*AlertEventService)(nil)
