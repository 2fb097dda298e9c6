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
	"hostdeck/pkg/validation"
)

// ServerHandler serves the /servers resource plus per-server metrics.
type ServerHandler struct {
	servers ports.ServerRepository
	metrics ports.MetricRepository
	logger  *zap.Logger
}

func NewServerHandler(servers ports.ServerRepository, metrics ports.MetricRepository, logger *zap.Logger) *ServerHandler {
	return &ServerHandler{servers: servers, metrics: metrics, logger: logger}
}

func (h *ServerHandler) SetupRoutes(router gin.IRouter) {
	router.GET("/metrics/latest", h.LatestMetrics)

	api := router.Group("/servers")
	{
		api.GET("", h.List)
		api.POST("", h.Create)
		api.GET("/name/:name", h.GetByName)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
		api.GET("/:id/metrics", h.Metrics)
		api.GET("/:id/metrics/summary", h.MetricsSummary)
	}
}

type ServerRequest struct {
	ServerName      string `json:"serverName" binding:"required,max=100"`
	IPAddress       string `json:"ipAddress" binding:"required,max=45"`
	Status          string `json:"status"`
	OperatingSystem string `json:"operatingSystem"`
	CPU             string `json:"cpu"`
	Memory          string `json:"memory"`
}

func (h *ServerHandler) List(c *gin.Context) {
	list, err := h.servers.List(c.Request.Context())
	if err != nil {
		h.logger.Error("listing servers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list servers"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ServerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dto, err := h.servers.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrServerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "server not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading server", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load server"})
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ServerHandler) GetByName(c *gin.Context) {
	dto, err := h.servers.GetByName(c.Request.Context(), c.Param("name"))
	if errors.Is(err, domain.ErrServerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "server not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading server by name", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load server"})
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (h *ServerHandler) Create(c *gin.Context) {
	var req ServerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validation.ValidateServerName(req.ServerName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validation.ValidateIPAddress(req.IPAddress); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	dto := ports.ServerDTO{
		ServerName:      req.ServerName,
		IPAddress:       req.IPAddress,
		Status:          orDefault(req.Status, "online"),
		OperatingSystem: req.OperatingSystem,
		CPU:             req.CPU,
		Memory:          req.Memory,
		LastUpdate:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := h.servers.Create(c.Request.Context(), &dto); err != nil {
		h.logger.Error("creating server", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create server"})
		return
	}
	h.logger.Info("server created", zap.Int64("id", dto.ID), zap.String("name", dto.ServerName))
	c.JSON(http.StatusCreated, dto)
}

func (h *ServerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ServerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	existing, err := h.servers.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrServerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "server not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading server", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load server"})
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	existing.ServerName = req.ServerName
	existing.IPAddress = req.IPAddress
	if req.Status != "" {
		existing.Status = req.Status
	}
	if req.OperatingSystem != "" {
		existing.OperatingSystem = req.OperatingSystem
	}
	if req.CPU != "" {
		existing.CPU = req.CPU
	}
	if req.Memory != "" {
		existing.Memory = req.Memory
	}
	existing.LastUpdate = now
	existing.UpdatedAt = now

	if err := h.servers.Update(c.Request.Context(), existing); err != nil {
		h.logger.Error("updating server", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update server"})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ServerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.servers.Delete(c.Request.Context(), id)
	if errors.Is(err, domain.ErrServerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "server not found"})
		return
	}
	if err != nil {
		h.logger.Error("deleting server", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete server"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServerHandler) Metrics(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	samples, err := h.metrics.Recent(c.Request.Context(), strconv.FormatInt(id, 10), limit)
	if err != nil {
		h.logger.Error("loading metrics", zap.Int64("server", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load metrics"})
		return
	}
	c.JSON(http.StatusOK, samples)
}

// LatestMetrics returns the newest sample for every server that has one.
func (h *ServerHandler) LatestMetrics(c *gin.Context) {
	samples, err := h.metrics.Latest(c.Request.Context())
	if err != nil {
		h.logger.Error("loading latest metrics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load metrics"})
		return
	}
	c.JSON(http.StatusOK, samples)
}

// MetricsSummary aggregates the recent window into per-metric min/max/avg.
func (h *ServerHandler) MetricsSummary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	samples, err := h.metrics.Recent(c.Request.Context(), strconv.FormatInt(id, 10), 100)
	if err != nil {
		h.logger.Error("loading metrics", zap.Int64("server", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load metrics"})
		return
	}
	c.JSON(http.StatusOK, summarize(samples))
}

func summarize(samples []domain.MetricSample) []domain.MetricSummary {
	if len(samples) == 0 {
		return []domain.MetricSummary{}
	}
	type acc struct {
		sum, min, max float64
	}
	names := []string{"CPU Usage", "Memory Usage", "Disk Usage", "Network In", "Network Out", "Temperature"}
	pick := func(s domain.MetricSample, name string) float64 {
		switch name {
		case "CPU Usage":
			return s.CPUUsage
		case "Memory Usage":
			return s.MemoryUsage
		case "Disk Usage":
			return s.DiskUsage
		case "Network In":
			return s.NetworkIn
		case "Network Out":
			return s.NetworkOut
		default:
			return s.Temperature
		}
	}

	out := make([]domain.MetricSummary, 0, len(names))
	for _, name := range names {
		a := acc{min: pick(samples[0], name), max: pick(samples[0], name)}
		for _, s := range samples {
			v := pick(s, name)
			a.sum += v
			if v < a.min {
				a.min = v
			}
			if v > a.max {
				a.max = v
			}
		}
		// samples arrive newest first
		out = append(out, domain.MetricSummary{
			MetricType: name,
			Average:    a.sum / float64(len(samples)),
			Minimum:    a.min,
			Maximum:    a.max,
			Count:      len(samples),
			LastValue:  pick(samples[0], name),
			LastUpdate: samples[0].CollectedAt,
			Unit:       domain.MetricUnit(name),
		})
	}
	return out
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
