package simulator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/pkg/tracing"
)

// AlertEvaluator periodically checks every enabled rule against the
// latest sample of every server, opening firing events and resolving
// them once the condition clears.
type AlertEvaluator struct {
	rules    ports.AlertRuleRepository
	events   ports.AlertEventRepository
	metrics  ports.MetricRepository
	interval time.Duration
	logger   *zap.Logger

	onFiring   func(ports.AlertEventDTO)
	onResolved func(ports.AlertEventDTO)
}

func NewAlertEvaluator(rules ports.AlertRuleRepository, events ports.AlertEventRepository, metrics ports.MetricRepository, interval time.Duration, logger *zap.Logger) *AlertEvaluator {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &AlertEvaluator{
		rules:      rules,
		events:     events,
		metrics:    metrics,
		interval:   interval,
		logger:     logger,
		onFiring:   func(ports.AlertEventDTO) {},
		onResolved: func(ports.AlertEventDTO) {},
	}
}

// OnFiring registers a callback invoked whenever a new event opens.
func (e *AlertEvaluator) OnFiring(fn func(ports.AlertEventDTO)) {
	if fn != nil {
		e.onFiring = fn
	}
}

// OnResolved registers a callback invoked whenever an event resolves.
func (e *AlertEvaluator) OnResolved(fn func(ports.AlertEventDTO)) {
	if fn != nil {
		e.onResolved = fn
	}
}

// Run blocks, evaluating rules once per interval until ctx is done.
func (e *AlertEvaluator) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.logger.Info("alert evaluator started", zap.Duration("interval", e.interval))
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("alert evaluator stopped")
			return
		case <-ticker.C:
			e.Evaluate(ctx)
		}
	}
}

// Evaluate runs a single evaluation pass.
func (e *AlertEvaluator) Evaluate(ctx context.Context) {
	ctx, span := tracing.StartSpan(ctx, "alerts.evaluate")
	defer span.End()

	rules, err := e.rules.ListEnabled(ctx)
	if err != nil {
		tracing.RecordError(ctx, err)
		e.logger.Warn("listing enabled alert rules", zap.Error(err))
		return
	}
	if len(rules) == 0 {
		return
	}

	latest, err := e.metrics.Latest(ctx)
	if err != nil {
		tracing.RecordError(ctx, err)
		e.logger.Warn("loading latest metrics", zap.Error(err))
		return
	}

	for _, rule := range rules {
		for _, sample := range latest {
			e.evaluateOne(ctx, rule, sample)
		}
	}
}

func (e *AlertEvaluator) evaluateOne(ctx context.Context, rule ports.AlertRuleDTO, sample domain.MetricSample) {
	value, ok := metricValue(rule.TargetMetric, sample)
	if !ok {
		return
	}
	serverID, err := strconv.ParseInt(sample.ServerID, 10, 64)
	if err != nil {
		return
	}

	breached := compare(rule.Comparator, value, rule.Threshold)
	firing, err := e.events.FindFiring(ctx, rule.RuleID, serverID)
	if err != nil && !errors.Is(err, domain.ErrEventNotFound) {
		e.logger.Warn("looking up firing event", zap.Int64("rule", rule.RuleID), zap.Error(err))
		return
	}

	switch {
	case breached && firing == nil:
		event := ports.AlertEventDTO{
			RuleID:    rule.RuleID,
			RuleName:  rule.RuleName,
			ServerID:  serverID,
			Severity:  rule.Severity,
			Status:    "firing",
			Message:   fmt.Sprintf("%s: %s is %.1f (threshold %s %.1f)", rule.RuleName, rule.TargetMetric, value, comparatorSymbol(rule.Comparator), rule.Threshold),
			Value:     value,
			StartedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := e.events.Create(ctx, &event); err != nil {
			e.logger.Warn("creating alert event", zap.Int64("rule", rule.RuleID), zap.Error(err))
			return
		}
		e.logger.Info("alert firing",
			zap.Int64("rule", rule.RuleID),
			zap.String("name", rule.RuleName),
			zap.Int64("server", serverID),
			zap.Float64("value", value))
		e.onFiring(event)

	case !breached && firing != nil:
		firing.Status = "resolved"
		firing.ResolvedAt = time.Now().UTC().Format(time.RFC3339)
		if err := e.events.Update(ctx, firing); err != nil {
			e.logger.Warn("resolving alert event", zap.Int64("event", firing.EventID), zap.Error(err))
			return
		}
		e.logger.Info("alert resolved",
			zap.Int64("rule", rule.RuleID),
			zap.Int64("server", serverID))
		e.onResolved(*firing)
	}
}

func metricValue(targetMetric string, s domain.MetricSample) (float64, bool) {
	switch targetMetric {
	case "cpu_usage":
		return s.CPUUsage, true
	case "memory_usage":
		return s.MemoryUsage, true
	case "disk_usage":
		return s.DiskUsage, true
	case "network_in":
		return s.NetworkIn, true
	case "network_out":
		return s.NetworkOut, true
	case "temperature":
		return s.Temperature, true
	case "load_avg":
		return s.LoadAvg, true
	default:
		return 0, false
	}
}

func compare(comparator string, value, threshold float64) bool {
	switch comparator {
	case ">":
		return value > threshold
	case ">=":
		return value >= threshold
	case "<":
		return value < threshold
	case "<=":
		return value <= threshold
	case "==":
		return value == threshold
	case "!=":
		return value != threshold
	default:
		return false
	}
}

func comparatorSymbol(comparator string) string {
	if comparator == "" {
		return ">"
	}
	return comparator
}
