package domain

import "time"

// Metric is the console-side metric vocabulary for alert rules.
type Metric string

const (
	MetricCPU         Metric = "cpu"
	MetricMemory      Metric = "memory"
	MetricDisk        Metric = "disk"
	MetricNetwork     Metric = "network"
	MetricTemperature Metric = "temperature"
	MetricService     Metric = "service"
)

// Condition is the console-side comparator vocabulary.
type Condition string

const (
	CondGreaterThan Condition = "greater_than"
	CondLessThan    Condition = "less_than"
	CondEquals      Condition = "equals"
	CondNotEquals   Condition = "not_equals"
)

// Severity is the console-side severity vocabulary.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AlertRule is the console-side view of an alert rule. The backend speaks a
// different field vocabulary; the alert rule service owns the mapping.
type AlertRule struct {
	ID            string
	Name          string
	Description   string
	Metric        Metric
	Condition     Condition
	Threshold     float64
	Severity      Severity
	Duration      int // minutes the condition must hold
	Enabled       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
	TriggerCount  int
	LastTriggered *time.Time
}

// AlertRuleInput carries the form fields for creating or updating a rule.
type AlertRuleInput struct {
	Name        string
	Description string
	Metric      Metric
	Condition   Condition
	Threshold   float64
	Severity    Severity
	Duration    int
	Enabled     bool
}

// AlertEventStatus tracks an event through its lifecycle.
type AlertEventStatus string

const (
	EventFiring       AlertEventStatus = "firing"
	EventAcknowledged AlertEventStatus = "acknowledged"
	EventResolved     AlertEventStatus = "resolved"
)

// AlertEvent is a rule violation observed by the backend.
type AlertEvent struct {
	ID         string
	RuleID     string
	RuleName   string
	ServerID   string
	Severity   Severity
	Status     AlertEventStatus
	Message    string
	Value      float64
	StartedAt  time.Time
	ResolvedAt *time.Time
}
