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

// UserHandler serves the /users resource. Creation goes through
// /auth/signup; routes here are mounted behind the admin role check.
type UserHandler struct {
	users  ports.UserRepository
	logger *zap.Logger
}

func NewUserHandler(users ports.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/users")
	{
		api.GET("", h.List)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

type UserUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.Error("listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list users"})
		return
	}
	out := make([]ports.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userToDTO(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading user", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, userToDTO(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UserUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading user", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load user"})
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = parseBackendRole(req.Role)
	}
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		h.logger.Error("updating user", zap.String("id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update user"})
		return
	}
	h.logger.Info("user updated", zap.String("id", user.ID), zap.String("role", string(user.Role)))
	c.JSON(http.StatusOK, userToDTO(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if err != nil {
		h.logger.Error("deleting user", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}

func userToDTO(u *domain.User) ports.UserDTO {
	id, _ := strconv.ParseInt(u.ID, 10, 64)
	dto := ports.UserDTO{
		ID:       id,
		Username: u.Username,
		Email:    u.Email,
		Role:     backendRoleString(u.Role),
	}
	if !u.CreatedAt.IsZero() {
		dto.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
