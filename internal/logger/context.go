package logger

import (
	"context"

	uuid "github.com/google/uuid"
	zap "go.uber.org/zap"
)

type ctxLoggerKey struct{}

// ContextWithLogger attaches l to ctx
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or the global one
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return zap.L()
}

// With returns a child context whose logger carries fields
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return ContextWithLogger(ctx, FromContext(ctx).With(fields...))
}

// WithSession tags every entry logged through ctx with a fresh session id.
// The id is returned so callers can surface it.
func WithSession(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return With(ctx, zap.String("session_id", id)), id
}

// WithTool tags the logger with the MCP tool being served
func WithTool(ctx context.Context, tool string) context.Context {
	return With(ctx, zap.String("tool", tool))
}
