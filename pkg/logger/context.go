package logger

import (
	"context"
	"log/slog"
)

type loggerCtxKey struct{}

// With derives a context whose logger carries the extra fields. Downstream
// code retrieves it with From, so request-scoped attributes like the trace
// ID ride along without explicit plumbing.
func With(ctx context.Context, fields ...any) context.Context {
	l := From(ctx).With(fields...)
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// From returns the context's logger, falling back to the process-wide one.
// Safe on a nil or bare context.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerCtxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return LoggerWrapper()
}
