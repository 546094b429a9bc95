package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := logLevelFromString(tt.input); got != tt.expected {
			t.Errorf("logLevelFromString(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLoadBuildInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build-info.yaml")
	if err := os.WriteFile(path, []byte("version: 1.2.0\ncommit: abc123\n"), 0644); err != nil {
		t.Fatal(err)
	}
	attrs, err := loadBuildInfoAsSlogAttrs(path, buildInfoPrefix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attrs) != 2 || attrs[0].Key != "build.commit" || attrs[1].Value.String() != "1.2.0" {
		t.Errorf("unexpected attrs: %v", attrs)
	}

	if _, err := loadBuildInfoAsSlogAttrs(filepath.Join(t.TempDir(), "missing.yaml"), buildInfoPrefix); err == nil {
		t.Error("error expected for missing file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", false, BuildInfoAlways, []slog.Attr{slog.String("build.version", "1.2.0")})

	logger.Info("hidden")
	logger.Warn("shown", slog.String("surveyID", "s1"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %s", len(lines), buf.String())
	}
	entry := map[string]any{}
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["surveyID"] != "s1" || entry["build.version"] != "1.2.0" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
