package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"nonsense", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		logger, err := New(Config{Level: tt.level})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tt.level, err)
		}

		if !logger.Core().Enabled(tt.want) {
			t.Errorf("level %q: expected %v enabled", tt.level, tt.want)
		}

		if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
			t.Errorf("level %q: expected %v disabled", tt.level, tt.want-1)
		}
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "scan.log")

	logger, err := New(Config{Level: "debug", Format: "json", OutputPath: logPath})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Debug("error accessing path", zap.String("path", "/locked"))
	_ = logger.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(data), `"path":"/locked"`) {
		t.Errorf("Expected structured field in log output, got %s", data)
	}
}
