package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/finance-tools/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		enabled  zapcore.Level
		disabled *zapcore.Level
	}{
		{"default info", config.LoggingConfig{}, "", zapcore.InfoLevel, levelPtr(zapcore.DebugLevel)},
		{"configured warn", config.LoggingConfig{Level: "warning"}, "", zapcore.WarnLevel, levelPtr(zapcore.InfoLevel)},
		{"override wins", config.LoggingConfig{Level: "error"}, "debug", zapcore.DebugLevel, nil},
		{"console format", config.LoggingConfig{Level: "info", Format: "console"}, "", zapcore.InfoLevel, levelPtr(zapcore.DebugLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.override)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("expected %s to be enabled", tt.enabled)
			}
			if tt.disabled != nil && logger.Core().Enabled(*tt.disabled) {
				t.Errorf("expected %s to be disabled", *tt.disabled)
			}
		})
	}
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }

func TestNewInvalid(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "verbose"}, ""); err == nil {
		t.Error("expected an error for an unknown level")
	}
	if _, err := New(config.LoggingConfig{Format: "xml"}, ""); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestNewOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "finance-tools.log")
	logger, err := New(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("written to file", zap.String("op", "logging.TestNewOutputFile"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected the log line in %s, got %q", path, data)
	}
}
