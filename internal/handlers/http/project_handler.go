package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/pkg/validation"
)

// ProjectHandler serves the /projects resource. Attached servers are
// embedded as summaries, resolved from the server repository on read.
type ProjectHandler struct {
	projects ports.ProjectRepository
	servers  ports.ServerRepository
	logger   *zap.Logger
}

func NewProjectHandler(projects ports.ProjectRepository, servers ports.ServerRepository, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, servers: servers, logger: logger}
}

func (h *ProjectHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/projects")
	{
		api.GET("", h.List)
		api.POST("", h.Create)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

type ProjectRequest struct {
	ProjectName string  `json:"projectName" binding:"required,max=100"`
	Status      string  `json:"status"`
	ServerIDs   []int64 `json:"serverIds"`
	Duration    string  `json:"duration"`
}

func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.logger.Error("listing projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list projects"})
		return
	}
	for i := range list {
		h.attachServers(c, &list[i])
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	dto, err := h.projects.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading project", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load project"})
		return
	}
	h.attachServers(c, dto)
	c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validation.ValidateProjectName(req.ProjectName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	dto := ports.ProjectDTO{
		ProjectName: req.ProjectName,
		Status:      orDefault(req.Status, "PLANNED"),
		ServerIDs:   req.ServerIDs,
		Duration:    req.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.projects.Create(c.Request.Context(), &dto); err != nil {
		h.logger.Error("creating project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create project"})
		return
	}
	h.attachServers(c, &dto)
	h.logger.Info("project created", zap.Int64("id", dto.ID), zap.String("name", dto.ProjectName))
	c.JSON(http.StatusCreated, dto)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	existing, err := h.projects.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading project", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load project"})
		return
	}

	existing.ProjectName = req.ProjectName
	if req.Status != "" {
		existing.Status = req.Status
	}
	if req.ServerIDs != nil {
		existing.ServerIDs = req.ServerIDs
	}
	if req.Duration != "" {
		existing.Duration = req.Duration
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := h.projects.Update(c.Request.Context(), existing); err != nil {
		h.logger.Error("updating project", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update project"})
		return
	}
	h.attachServers(c, existing)
	c.JSON(http.StatusOK, existing)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.projects.Delete(c.Request.Context(), id)
	if errors.Is(err, domain.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}
	if err != nil {
		h.logger.Error("deleting project", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete project"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) attachServers(c *gin.Context, dto *ports.ProjectDTO) {
	dto.Servers = make([]ports.ServerSummaryDTO, 0, len(dto.ServerIDs))
	for _, sid := range dto.ServerIDs {
		srv, err := h.servers.GetByID(c.Request.Context(), sid)
		if err != nil {
			continue
		}
		dto.Servers = append(dto.Servers, ports.ServerSummaryDTO{
			ID:         srv.ID,
			ServerName: srv.ServerName,
			IPAddress:  srv.IPAddress,
			Status:     srv.Status,
		})
	}
}
