package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hostdeck/pkg/logger"
)

// RequestLogging logs one line per request with a generated request id.
// The user id set by AuthMiddleware, when present, is attached as well.
func RequestLogging(log *zap.Logger) gin.HandlerFunc {
	cl := logger.NewContextLogger(log)
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		if uid := c.GetString(CtxUserID); uid != "" {
			ctx = context.WithValue(ctx, logger.UserIDKey, uid)
		}
		cl.LogRequest(ctx, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Milliseconds())
	}
}
