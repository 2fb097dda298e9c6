package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

func TestMetricMapping(t *testing.T) {
	tests := []struct {
		ui      domain.Metric
		backend string
	}{
		{domain.MetricCPU, "cpu_usage"},
		{domain.MetricMemory, "memory_usage"},
		{domain.MetricDisk, "disk_usage"},
		{domain.MetricNetwork, "network_in"},
		{domain.MetricTemperature, "temperature"},
		{domain.MetricService, "load_avg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.backend, MetricToBackend(tt.ui))
		assert.Equal(t, tt.ui, MetricFromBackend(tt.backend))
	}

	// both network directions collapse to the single UI metric
	assert.Equal(t, domain.MetricNetwork, MetricFromBackend("network_out"))
	// unknown backend metrics land on service
	assert.Equal(t, domain.MetricService, MetricFromBackend("gpu_usage"))
}

func TestConditionMapping(t *testing.T) {
	tests := []struct {
		ui      domain.Condition
		backend string
	}{
		{domain.CondGreaterThan, ">"},
		{domain.CondLessThan, "<"},
		{domain.CondEquals, "=="},
		{domain.CondNotEquals, "!="},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.backend, ConditionToBackend(tt.ui))
		assert.Equal(t, tt.ui, ConditionFromBackend(tt.backend))
	}

	// inclusive comparators fold into their strict UI counterparts
	assert.Equal(t, domain.CondGreaterThan, ConditionFromBackend(">="))
	assert.Equal(t, domain.CondLessThan, ConditionFromBackend("<="))
	// unknown comparators default
	assert.Equal(t, domain.CondGreaterThan, ConditionFromBackend("~="))
}

func TestSeverityMapping(t *testing.T) {
	tests := []struct {
		ui      domain.Severity
		backend string
	}{
		{domain.SeverityLow, "LOW"},
		{domain.SeverityMedium, "WARNING"},
		{domain.SeverityHigh, "HIGH"},
		{domain.SeverityCritical, "CRITICAL"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.backend, SeverityToBackend(tt.ui))
		assert.Equal(t, tt.ui, SeverityFromBackend(tt.backend))
	}

	assert.Equal(t, domain.SeverityMedium, SeverityFromBackend("NOTICE"))
	assert.Equal(t, domain.SeverityCritical, SeverityFromBackend("critical"))
}

func TestRuleRoundTrip(t *testing.T) {
	in := domain.AlertRuleInput{
		Name:        "high cpu",
		Description: "cpu runs hot",
		Metric:      domain.MetricCPU,
		Condition:   domain.CondGreaterThan,
		Threshold:   90,
		Severity:    domain.SeverityHigh,
		Duration:    5,
		Enabled:     true,
	}

	dto := ruleInputToDTO(in)
	assert.Equal(t, "cpu_usage", dto.TargetMetric)
	assert.Equal(t, ">", dto.Comparator)
	assert.Equal(t, "HIGH", dto.Severity)

	dto.RuleID = 7
	rule := ruleFromDTO(dto)
	assert.Equal(t, "7", rule.ID)
	assert.Equal(t, in.Metric, rule.Metric)
	assert.Equal(t, in.Condition, rule.Condition)
	assert.Equal(t, in.Severity, rule.Severity)
	assert.Equal(t, in.Threshold, rule.Threshold)
	assert.True(t, rule.Enabled)
}

func TestRuleFromDTODefaults(t *testing.T) {
	rule := ruleFromDTO(ports.AlertRuleDTO{
		RuleID:       3,
		RuleName:     "mystery",
		TargetMetric: "quantum_flux",
		Comparator:   "~",
		Severity:     "PANIC",
	})

	assert.Equal(t, domain.MetricService, rule.Metric)
	assert.Equal(t, domain.CondGreaterThan, rule.Condition)
	assert.Equal(t, domain.SeverityMedium, rule.Severity)
	assert.Equal(t, "system", rule.CreatedBy)
}
