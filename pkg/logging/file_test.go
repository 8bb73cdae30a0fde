package logging

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoggerJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: FormatJSON,
		Level:  DebugLevel,
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()
	logger.Info(ctx, "scan started", Fields{"roots": 2})
	logger.Warn(ctx, "file skipped", Fields{"path": "/tmp/bad.pdf"})
	logger.Error(ctx, "read failed", errors.New("permission denied"), nil)

	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d", len(lines))
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("first line is not valid JSON: %v", err)
	}
	if entry["message"] != "scan started" {
		t.Errorf("message = %v, want 'scan started'", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want 'info'", entry["level"])
	}

	if err := json.Unmarshal([]byte(lines[2]), &entry); err != nil {
		t.Fatalf("third line is not valid JSON: %v", err)
	}
	if entry["error"] != "permission denied" {
		t.Errorf("error = %v, want 'permission denied'", entry["error"])
	}
}

func TestFileLoggerLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: FormatText,
		Level:  WarnLevel,
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()
	logger.Debug(ctx, "not logged", nil)
	logger.Info(ctx, "not logged either", nil)
	logger.Warn(ctx, "logged", nil)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line after level filtering, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[WARN]") {
		t.Errorf("expected WARN entry, got %q", lines[0])
	}
}

func TestFileLoggerWithFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: FormatJSON,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	scoped := logger.WithFields(Fields{"operation": "abc123"})
	scoped.Info(context.Background(), "classified", Fields{"category": "text"})
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["operation"] != "abc123" {
		t.Errorf("operation = %v, want 'abc123'", entry["operation"])
	}
	if entry["category"] != "text" {
		t.Errorf("category = %v, want 'text'", entry["category"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"info", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"trace", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && level != tt.level {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, level, tt.level)
			}
		})
	}
}
