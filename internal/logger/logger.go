// Package logger configures the application's slog logger and carries request-scoped
// loggers through the request context.
//
// In the dev environment log lines are written with the tint handler (coloured, human readable).
// All other environments use JSON so the output can be ingested by a log pipeline.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

type contextKey int

const (
	loggerKey contextKey = iota
	attrsKey
)

// InitLogger creates the application logger and installs it as the slog default.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	l := NewLogger(os.Stderr, level, environment)
	slog.SetDefault(l)
	return l
}

// NewLogger builds a logger writing to w. It is split from InitLogger so tests can capture output.
func NewLogger(w io.Writer, level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler
	if environment == "dev" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(handler)
}

// LevelNone is above every level used by the service and disables logging
const LevelNone = slog.Level(100)

// ParseLogLevel converts a LOG_LEVEL value to a slog.Level. Unknown values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		return LevelNone
	default:
		return slog.LevelInfo
	}
}

// ContextWithLogger returns a copy of ctx carrying l
func ContextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// ContextRequestLogger returns the request-scoped logger stored in ctx,
// or the default logger when the request did not pass through RequestLogging.
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// logAttrs collects attributes added while the request is handled.
// They are emitted with the final request log line.
type logAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

func contextWithAttrHolder(ctx context.Context) (context.Context, *logAttrs) {
	holder := &logAttrs{}
	return context.WithValue(ctx, attrsKey, holder), holder
}

// ContextWithLogAttrs adds attributes to the final request log line.
// It is a no-op when the request is not wrapped by RequestLogging.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	holder, ok := ctx.Value(attrsKey).(*logAttrs)
	if !ok || holder == nil {
		return
	}
	holder.mu.Lock()
	defer holder.mu.Unlock()
	holder.attrs = append(holder.attrs, attrs...)
}

func (h *logAttrs) snapshot() []slog.Attr {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]slog.Attr, len(h.attrs))
	copy(out, h.attrs)
	return out
}
