package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// AlertRuleHandler serves the /alert-rules resource.
type AlertRuleHandler struct {
	rules  ports.AlertRuleRepository
	logger *zap.Logger
}

func NewAlertRuleHandler(rules ports.AlertRuleRepository, logger *zap.Logger) *AlertRuleHandler {
	return &AlertRuleHandler{rules: rules, logger: logger}
}

func (h *AlertRuleHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/alert-rules")
	{
		api.GET("", h.List)
		api.POST("", h.Create)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
		api.PATCH("/:id/status", h.SetStatus)
	}
}

type AlertRuleRequest struct {
	RuleName     string  `json:"ruleName" binding:"required,max=100"`
	Description  string  `json:"description"`
	TargetMetric string  `json:"targetMetric" binding:"required"`
	Comparator   string  `json:"comparator" binding:"required"`
	Threshold    float64 `json:"threshold"`
	Duration     int     `json:"duration"`
	Severity     string  `json:"severity" binding:"required"`
	Enabled      *bool   `json:"enabled"`
}

func (h *AlertRuleHandler) List(c *gin.Context) {
	list, err := h.rules.List(c.Request.Context())
	if err != nil {
		h.logger.Error("listing alert rules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list alert rules"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AlertRuleHandler) Create(c *gin.Context) {
	var req AlertRuleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	now := time.Now().UTC().Format(time.RFC3339)
	dto := ports.AlertRuleDTO{
		RuleName:     req.RuleName,
		Description:  req.Description,
		TargetMetric: req.TargetMetric,
		Comparator:   req.Comparator,
		Threshold:    req.Threshold,
		Duration:     req.Duration,
		Severity:     req.Severity,
		Enabled:      enabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.rules.Create(c.Request.Context(), &dto); err != nil {
		h.logger.Error("creating alert rule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create alert rule"})
		return
	}
	h.logger.Info("alert rule created", zap.Int64("id", dto.RuleID), zap.String("name", dto.RuleName))
	c.JSON(http.StatusCreated, dto)
}

func (h *AlertRuleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AlertRuleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	existing, err := h.rules.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrAlertRuleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "alert rule not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading alert rule", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load alert rule"})
		return
	}

	existing.RuleName = req.RuleName
	existing.Description = req.Description
	existing.TargetMetric = req.TargetMetric
	existing.Comparator = req.Comparator
	existing.Threshold = req.Threshold
	existing.Duration = req.Duration
	existing.Severity = req.Severity
	if req.Enabled != nil {
		existing.Enabled = *req.Enabled
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := h.rules.Update(c.Request.Context(), existing); err != nil {
		h.logger.Error("updating alert rule", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update alert rule"})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *AlertRuleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.rules.Delete(c.Request.Context(), id)
	if errors.Is(err, domain.ErrAlertRuleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "alert rule not found"})
		return
	}
	if err != nil {
		h.logger.Error("deleting alert rule", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete alert rule"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SetStatus toggles a rule via PATCH /alert-rules/{id}/status?enabled=.
func (h *AlertRuleHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	enabled, err := strconv.ParseBool(c.Query("enabled"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "enabled must be true or false"})
		return
	}

	existing, err := h.rules.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrAlertRuleNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "alert rule not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading alert rule", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load alert rule"})
		return
	}

	existing.Enabled = enabled
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := h.rules.Update(c.Request.Context(), existing); err != nil {
		h.logger.Error("updating alert rule", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update alert rule"})
		return
	}
	h.logger.Info("alert rule toggled", zap.Int64("id", id), zap.Bool("enabled", enabled))
	c.JSON(http.StatusOK, existing)
}

// AlertEventHandler serves the /alert-events resource.
type AlertEventHandler struct {
	events ports.AlertEventRepository
	logger *zap.Logger
}

func NewAlertEventHandler(events ports.AlertEventRepository, logger *zap.Logger) *AlertEventHandler {
	return &AlertEventHandler{events: events, logger: logger}
}

func (h *AlertEventHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/alert-events")
	{
		api.GET("", h.List)
		api.POST("/:id/acknowledge", h.Acknowledge)
		api.POST("/:id/resolve", h.Resolve)
	}
}

func (h *AlertEventHandler) List(c *gin.Context) {
	list, err := h.events.List(c.Request.Context())
	if err != nil {
		h.logger.Error("listing alert events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list alert events"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AlertEventHandler) Acknowledge(c *gin.Context) {
	h.transition(c, "acknowledged")
}

func (h *AlertEventHandler) Resolve(c *gin.Context) {
	h.transition(c, "resolved")
}

func (h *AlertEventHandler) transition(c *gin.Context, status string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	event, err := h.events.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "alert event not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading alert event", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load alert event"})
		return
	}

	event.Status = status
	if status == "resolved" && event.ResolvedAt == "" {
		event.ResolvedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := h.events.Update(c.Request.Context(), event); err != nil {
		h.logger.Error("updating alert event", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update alert event"})
		return
	}
	h.logger.Info("alert event updated", zap.Int64("id", id), zap.String("status", status))
	c.JSON(http.StatusOK, event)
}
