package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

// Keys under which the demo server middleware stashes request metadata.
const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
)

// ContextLogger decorates a zap logger with fields pulled from a request
// context, so one log call carries the request and user ids without every
// caller threading them through.
type ContextLogger struct {
	base *zap.Logger
}

func NewContextLogger(base *zap.Logger) *ContextLogger {
	return &ContextLogger{base: base}
}

// WithContext returns the base logger annotated with whatever ids are
// present in ctx. Missing keys add nothing.
func (cl *ContextLogger) WithContext(ctx context.Context) *zap.Logger {
	log := cl.base
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		log = log.With(zap.String("request_id", id))
	}
	if id, ok := ctx.Value(UserIDKey).(string); ok && id != "" {
		log = log.With(zap.String("user_id", id))
	}
	return log
}

func (cl *ContextLogger) WithError(err error) *zap.Logger {
	return cl.base.With(zap.Error(err))
}

// LogRequest emits the standard one-line request record.
func (cl *ContextLogger) LogRequest(ctx context.Context, method, path string, statusCode int, durationMillis int64) {
	cl.WithContext(ctx).Info("http_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", durationMillis),
	)
}
