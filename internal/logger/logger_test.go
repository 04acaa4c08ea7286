package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", LevelNone},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContextRequestLoggerFallsBackToDefault(t *testing.T) {
	if got := ContextRequestLogger(context.Background()); got != slog.Default() {
		t.Error("expected slog.Default() when no logger is stored in the context")
	}

	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelInfo, "prod")
	ctx := ContextWithLogger(context.Background(), l)
	if got := ContextRequestLogger(ctx); got != l {
		t.Error("expected the stored logger to be returned")
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&buf, slog.LevelDebug, "prod")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogging(base))
	router.Get("/teapot", func(w http.ResponseWriter, r *http.Request) {
		ContextWithLogAttrs(r.Context(), slog.String("profile_id", "p-1"))
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected a single JSON log line, got %q: %v", line, err)
	}

	if entry["msg"] != "Request completed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN for a 4xx status", entry["level"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("status = %v", entry["status"])
	}
	if entry["profile_id"] != "p-1" {
		t.Errorf("expected attribute added during the request, got %v", entry["profile_id"])
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Error("expected request_id to be logged")
	}
}

func TestContextWithLogAttrsWithoutMiddleware(t *testing.T) {
	// must not panic when the request was not wrapped
	ContextWithLogAttrs(context.Background(), slog.String("k", "v"))
}
