package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
	"hostdeck/internal/infrastructure/password"
	"hostdeck/internal/infrastructure/token"
	"hostdeck/pkg/validation"
)

// AuthHandler serves the signin/signup endpoints of the demo server.
type AuthHandler struct {
	users    ports.UserRepository
	jwt      *token.JWTManager
	logger   *zap.Logger
	onSignIn func(success bool)
}

func NewAuthHandler(users ports.UserRepository, jwt *token.JWTManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		jwt:      jwt,
		logger:   logger,
		onSignIn: func(bool) {},
	}
}

// OnSignIn registers a callback invoked after every signin attempt.
func (h *AuthHandler) OnSignIn(fn func(success bool)) {
	if fn != nil {
		h.onSignIn = fn
	}
}

func (h *AuthHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/auth")
	{
		api.POST("/signin", h.SignIn)
		api.POST("/signup", h.SignUp)
	}
}

type SignInRequest struct {
	Username string `json:"username" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=128"`
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Role     string `json:"role"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.onSignIn(false)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username/email or password"})
		return
	}

	user, hash, err := h.users.GetByUsernameOrEmail(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil || !password.Verify(hash, req.Password) {
		h.onSignIn(false)
		h.logger.Debug("signin rejected", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username/email or password"})
		return
	}

	accessToken, err := h.jwt.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		h.onSignIn(false)
		h.logger.Error("generating token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate token"})
		return
	}

	h.onSignIn(true)
	c.JSON(http.StatusOK, ports.SignInResult{
		Token:    accessToken,
		Type:     "Bearer",
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    []string{backendRoleClaim(user.Role)},
	})
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validation.ValidateUsername(req.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user := &domain.User{
		Username:  req.Username,
		Name:      req.Username,
		Email:     req.Email,
		Role:      parseBackendRole(req.Role),
		CreatedAt: time.Now().UTC(),
	}
	err := h.users.Create(c.Request.Context(), user, password.Hash(req.Password))
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: Username is already taken!"})
		return
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: Email is already in use!"})
		return
	case err != nil:
		h.logger.Error("creating user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	h.logger.Info("user registered", zap.String("username", user.Username))
	c.JSON(http.StatusCreated, ports.UserDTO{
		Username: user.Username,
		Email:    user.Email,
		Role:     backendRoleString(user.Role),
	})
}

// backendRoleClaim renders a role the way the original backend spells it
// inside the signin roles array.
func backendRoleClaim(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "ROLE_ADMIN"
	case domain.RoleOperator:
		return "ROLE_OPERATOR"
	default:
		return "ROLE_USER"
	}
}

// backendRoleString renders a role the way the user resource spells it.
func backendRoleString(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "admin"
	case domain.RoleOperator:
		return "operation"
	default:
		return "manager"
	}
}

// parseBackendRole accepts both the backend's spellings and the console's.
func parseBackendRole(s string) domain.Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return domain.RoleAdmin
	case "operation", "operator":
		return domain.RoleOperator
	default:
		return domain.RoleViewer
	}
}
