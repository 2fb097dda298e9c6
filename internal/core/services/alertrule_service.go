package services

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// AlertRuleService translates between the console's alert-rule vocabulary
// and the backend's. The mapping tables are fixed; unknown backend values
// collapse to safe defaults rather than erroring.
type AlertRuleService struct {
	api    ports.APIBackend
	logger *zap.Logger
}

func NewAlertRuleService(api ports.APIBackend, logger *zap.Logger) *AlertRuleService {
	return &AlertRuleService{api: api, logger: logger}
}

func (s *AlertRuleService) List(ctx context.Context) ([]domain.AlertRule, error) {
	dtos, err := s.api.ListAlertRules(ctx)
	if err != nil {
		return nil, err
	}
	rules := make([]domain.AlertRule, 0, len(dtos))
	for _, dto := range dtos {
		rules = append(rules, ruleFromDTO(dto))
	}
	return rules, nil
}

func (s *AlertRuleService) Create(ctx context.Context, in domain.AlertRuleInput) (*domain.AlertRule, error) {
	dto, err := s.api.CreateAlertRule(ctx, ruleInputToDTO(in))
	if err != nil {
		return nil, err
	}
	s.logger.Info("alert rule created", zap.String("name", in.Name))
	r := ruleFromDTO(*dto)
	return &r, nil
}

func (s *AlertRuleService) Update(ctx context.Context, id string, in domain.AlertRuleInput) (*domain.AlertRule, error) {
	dto, err := s.api.UpdateAlertRule(ctx, id, ruleInputToDTO(in))
	if err != nil {
		return nil, err
	}
	r := ruleFromDTO(*dto)
	return &r, nil
}

func (s *AlertRuleService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteAlertRule(ctx, id)
}

func (s *AlertRuleService) SetEnabled(ctx context.Context, id string, enabled bool) (*domain.AlertRule, error) {
	dto, err := s.api.SetAlertRuleEnabled(ctx, id, enabled)
	if err != nil {
		return nil, err
	}
	r := ruleFromDTO(*dto)
	return &r, nil
}

// MetricToBackend maps a console metric name to the backend's target metric.
func MetricToBackend(m domain.Metric) string {
	switch m {
	case domain.MetricCPU:
		return "cpu_usage"
	case domain.MetricMemory:
		return "memory_usage"
	case domain.MetricDisk:
		return "disk_usage"
	case domain.MetricNetwork:
		return "network_in"
	case domain.MetricTemperature:
		return "temperature"
	case domain.MetricService:
		return "load_avg"
	default:
		return string(m)
	}
}

// MetricFromBackend maps a backend target metric to the console vocabulary.
// Both network directions collapse to "network"; anything unknown becomes
// "service".
func MetricFromBackend(m string) domain.Metric {
	switch m {
	case "cpu_usage":
		return domain.MetricCPU
	case "memory_usage":
		return domain.MetricMemory
	case "disk_usage":
		return domain.MetricDisk
	case "network_in", "network_out":
		return domain.MetricNetwork
	case "temperature":
		return domain.MetricTemperature
	case "load_avg":
		return domain.MetricService
	default:
		return domain.MetricService
	}
}

func ConditionToBackend(c domain.Condition) string {
	switch c {
	case domain.CondGreaterThan:
		return ">"
	case domain.CondLessThan:
		return "<"
	case domain.CondEquals:
		return "=="
	case domain.CondNotEquals:
		return "!="
	default:
		return ">"
	}
}

func ConditionFromBackend(c string) domain.Condition {
	switch c {
	case ">", ">=":
		return domain.CondGreaterThan
	case "<", "<=":
		return domain.CondLessThan
	case "==":
		return domain.CondEquals
	case "!=":
		return domain.CondNotEquals
	default:
		return domain.CondGreaterThan
	}
}

func SeverityToBackend(s domain.Severity) string {
	switch s {
	case domain.SeverityLow:
		return "LOW"
	case domain.SeverityMedium:
		return "WARNING"
	case domain.SeverityHigh:
		return "HIGH"
	case domain.SeverityCritical:
		return "CRITICAL"
	default:
		return strings.ToUpper(string(s))
	}
}

func SeverityFromBackend(s string) domain.Severity {
	switch strings.ToUpper(s) {
	case "CRITICAL":
		return domain.SeverityCritical
	case "HIGH":
		return domain.SeverityHigh
	case "WARNING":
		return domain.SeverityMedium
	case "LOW":
		return domain.SeverityLow
	default:
		return domain.SeverityMedium
	}
}

func ruleFromDTO(dto ports.AlertRuleDTO) domain.AlertRule {
	return domain.AlertRule{
		ID:          strconv.FormatInt(dto.RuleID, 10),
		Name:        dto.RuleName,
		Description: dto.Description,
		Metric:      MetricFromBackend(dto.TargetMetric),
		Condition:   ConditionFromBackend(dto.Comparator),
		Threshold:   dto.Threshold,
		Severity:    SeverityFromBackend(dto.Severity),
		Duration:    dto.Duration,
		Enabled:     dto.Enabled,
		CreatedAt:   parseBackendTime(dto.CreatedAt),
		UpdatedAt:   parseBackendTime(dto.UpdatedAt),
		CreatedBy:   "system",
	}
}

func ruleInputToDTO(in domain.AlertRuleInput) ports.AlertRuleDTO {
	return ports.AlertRuleDTO{
		RuleName:     in.Name,
		Description:  in.Description,
		TargetMetric: MetricToBackend(in.Metric),
		Comparator:   ConditionToBackend(in.Condition),
		Threshold:    in.Threshold,
		Duration:     in.Duration,
		Severity:     SeverityToBackend(in.Severity),
		Enabled:      in.Enabled,
	}
}

var _ ports.AlertRuleService = (*AlertRuleService)(nil)
