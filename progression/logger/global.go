package logger

import (
	"log/slog"
	"time"
)

// LogRequest logs HTTP request handling
func LogRequest(method, path string, status int, duration time.Duration, err error, extra ...any) {
	attrs := append([]any{
		slog.String("type", "http"),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("code", status),
		slog.Duration("took", duration),
	}, extra...)

	switch {
	case err != nil || status >= 500:
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}
		slog.Error("HTTP request failed", attrs...)
	case status >= 400:
		slog.Warn("HTTP request rejected", attrs...)
	default:
		slog.Info("HTTP request processed", attrs...)
	}
}

// LogQuery logs database operations
func LogQuery(operation string, duration time.Duration, err error, attrs ...any) {
	base := []any{
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(append(base, attrs...), slog.Any("error", err))...)
		return
	}
	slog.Debug("Query executed", append(base, attrs...)...)
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
