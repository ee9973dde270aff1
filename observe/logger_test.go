package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line, err := buf.ReadString('\n')
	if err != nil {
		t.Fatalf("failed to read log line: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", line, err)
	}
	return entry
}

// TestLogger_JSONOutput verifies entries are JSON with level, msg, timestamp.
func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "cache execution", Field{Key: "outcome", Value: "hit"})

	entry := decodeLogLine(t, &buf)
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["msg"] != "cache execution" {
		t.Errorf("msg = %v, want 'cache execution'", entry["msg"])
	}
	if entry["outcome"] != "hit" {
		t.Errorf("outcome = %v, want hit", entry["outcome"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
}

// TestLogger_LevelFiltering verifies entries below the configured level are dropped.
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "dropped")
	logger.Warn(ctx, "kept")
	logger.Error(ctx, "kept")

	lines := strings.Count(buf.String(), "\n")
	if lines != 2 {
		t.Errorf("got %d log lines, want 2:\n%s", lines, buf.String())
	}
}

// TestLogger_WithCache verifies the cache name is attached to every entry.
func TestLogger_WithCache(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf).WithCache("results")

	logger.Info(context.Background(), "cache execution")

	entry := decodeLogLine(t, &buf)
	if entry["cache.name"] != "results" {
		t.Errorf("cache.name = %v, want results", entry["cache.name"])
	}
}

// TestLogger_Redaction verifies value-bearing fields never reach the stream.
func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "cache execution",
		Field{Key: "value", Value: "sensitive payload"},
		Field{Key: "token", Value: "abc123"},
		Field{Key: "outcome", Value: "stored"},
	)

	entry := decodeLogLine(t, &buf)
	if entry["value"] != "[REDACTED]" {
		t.Errorf("value = %v, want [REDACTED]", entry["value"])
	}
	if entry["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", entry["token"])
	}
	if entry["outcome"] != "stored" {
		t.Errorf("outcome = %v, want stored (not a redacted key)", entry["outcome"])
	}
}

// TestParseLogLevel verifies parsing and the default.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestLogLevel_String verifies round-tripping of level names.
func TestLogLevel_String(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "error"} {
		if got := ParseLogLevel(name).String(); got != name {
			t.Errorf("ParseLogLevel(%q).String() = %q", name, got)
		}
	}
}

// TestNoopLogger verifies the noop logger discards everything.
func TestNoopLogger(t *testing.T) {
	logger := &noopLogger{}
	ctx := context.Background()

	logger.Info(ctx, "dropped")
	logger.Warn(ctx, "dropped")
	logger.Error(ctx, "dropped")
	logger.Debug(ctx, "dropped")

	if logger.WithCache("results") != logger {
		t.Error("WithCache on noop logger should return itself")
	}
}
