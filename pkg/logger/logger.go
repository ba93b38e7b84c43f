package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelCritical sits above slog.LevelError and marks faults that should
// page someone.
const LevelCritical = slog.Level(12)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	// BusinessError logs an expected domain miss (not found, not authed)
	// at Warn; InternalError logs an unexpected fault at Error.
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	base *slog.Logger
}

func NewFromEnv() Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	format := parseFormat(os.Getenv("LOG_FORMAT"))
	return New(os.Stdout, level, format)
}

func New(output io.Writer, level slog.Level, format string) Logger {
	options := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(output, options)
	} else {
		handler = slog.NewTextHandler(output, options)
	}

	return &slogLogger{base: slog.New(handler)}
}

func (l *slogLogger) Debug(message string, args ...any) {
	l.base.Debug(message, args...)
}

func (l *slogLogger) Info(message string, args ...any) {
	l.base.Info(message, args...)
}

func (l *slogLogger) Warn(message string, args ...any) {
	l.base.Warn(message, args...)
}

func (l *slogLogger) Error(message string, args ...any) {
	l.base.Error(message, args...)
}

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Warn(message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Error(message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

func parseFormat(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return "json"
	default:
		return "text"
	}
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}

	level, ok := attr.Value.Any().(slog.Level)
	if ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
