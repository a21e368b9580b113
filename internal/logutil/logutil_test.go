package logutil

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// Helper function to create a logger that writes to a buffer for testing
func createTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestNew_TextAndJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("hello", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("Expected JSON output, got: %s", buf.String())
	}

	buf.Reset()
	New(&buf, "info", "text").Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("Expected text output, got: %s", buf.String())
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "error", "text")
	logger.Warn("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("Expected no output below error level, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" error ", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogr_WritesThroughSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	l := Logr(createTestLogger(&buf))
	l.Info("bridged", "user", "ann")
	output := buf.String()
	if !strings.Contains(output, "bridged") || !strings.Contains(output, "user=ann") {
		t.Errorf("Expected bridged log line, got: %s", output)
	}
}

func TestDiscard(t *testing.T) {
	// must not panic and must be usable
	Discard().Error("nothing", "k", 1)
}

func TestNewTimingLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := createTestLogger(&buf)

	start := time.Now()
	time.Sleep(10 * time.Millisecond)

	timingLogger := NewTimingLogger(logger, start, "test operation", "key", "value")
	timingLogger()

	output := buf.String()
	if !strings.Contains(output, "test operation") {
		t.Errorf("Expected log to contain 'test operation', got: %s", output)
	}
	if !strings.Contains(output, "duration") {
		t.Errorf("Expected log to contain 'duration', got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Expected log to contain 'key=value', got: %s", output)
	}
	if !strings.Contains(output, "level=DEBUG") {
		t.Errorf("Expected log to be DEBUG level, got: %s", output)
	}
}

func TestLogAndWrapErr_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := createTestLogger(&buf)

	originalErr := errors.New("original error")
	wrappedErr := LogAndWrapErr(logger, "operation failed", originalErr, "user", "john")

	if wrappedErr == nil {
		t.Fatal("Expected wrapped error, got nil")
	}
	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Expected wrapped error to be identifiable with errors.Is")
	}
	if !strings.Contains(wrappedErr.Error(), "operation failed") {
		t.Errorf("Expected wrapped error to contain message, got: %s", wrappedErr.Error())
	}

	output := buf.String()
	if !strings.Contains(output, "user=john") {
		t.Errorf("Expected log to contain 'user=john', got: %s", output)
	}
	if !strings.Contains(output, "err=\"original error\"") {
		t.Errorf("Expected log to contain error, got: %s", output)
	}
	if !strings.Contains(output, "level=ERROR") {
		t.Errorf("Expected log to be ERROR level, got: %s", output)
	}
}

func TestLogAndWrapErr_WithNilError(t *testing.T) {
	var buf bytes.Buffer
	logger := createTestLogger(&buf)

	if result := LogAndWrapErr(logger, "operation failed", nil, "user", "john"); result != nil {
		t.Errorf("Expected nil result for nil error, got: %v", result)
	}
	if output := buf.String(); output != "" {
		t.Errorf("Expected no log output for nil error, got: %s", output)
	}
}

func TestDebugAndWrapErr(t *testing.T) {
	var buf bytes.Buffer
	logger := createTestLogger(&buf)

	originalErr := errors.New("original debug error")
	wrappedErr := DebugAndWrapErr(logger, "debug operation failed", originalErr, "request_id", "xyz-123")

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Expected wrapped error to be identifiable with errors.Is")
	}
	output := buf.String()
	if !strings.Contains(output, "level=DEBUG") || !strings.Contains(output, "request_id=xyz-123") {
		t.Errorf("Expected debug log with fields, got: %s", output)
	}

	if DebugAndWrapErr(logger, "noop", nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := WithFields(createTestLogger(&buf), "component", "session")
	logger.Info("ready")
	if !strings.Contains(buf.String(), "component=session") {
		t.Errorf("Expected pre-populated field, got: %s", buf.String())
	}
}
