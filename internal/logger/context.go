package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	toolKey      ctxKey = "tool"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithTool tags the context with the tool currently being invoked.
func WithTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, toolKey, tool)
}

func ToolFrom(ctx context.Context) string {
	if v, ok := ctx.Value(toolKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns logger with request_id and tool automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	l := L()
	if reqID := RequestIDFrom(ctx); reqID != "" {
		l = l.With(zap.String("request_id", reqID))
	}
	if tool := ToolFrom(ctx); tool != "" {
		l = l.With(zap.String("tool", tool))
	}
	return l
}
