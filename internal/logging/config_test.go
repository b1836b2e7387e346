package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thermetry/thermetry/internal/config"
)

func TestNewFromConfigFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "api.log")

	logger, err := NewFromConfig(config.LoggingConfig{
		Level:      "warn",
		Format:     "json",
		OutputPath: logPath,
	})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}

	logger.Info("dropped at warn level")
	logger.Warn("kept entry", "component", "reports")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	content := string(data)
	if strings.Contains(content, "dropped at warn level") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(content, "kept entry") {
		t.Errorf("warn entry missing from log file: %s", content)
	}
}

func TestNewFromConfigInvalidLevelFallsBack(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "api.log")

	logger, err := NewFromConfig(config.LoggingConfig{
		Level:      "shouting",
		Format:     "json",
		OutputPath: logPath,
	})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}

	logger.Info("visible at fallback info level")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "visible at fallback info level") {
		t.Errorf("info entry missing: %s", data)
	}
}

func TestNewFromConfigConsoleFormat(t *testing.T) {
	logger, err := NewFromConfig(config.LoggingConfig{
		Level:      "debug",
		Format:     "console",
		OutputPath: "stdout",
		TimeFormat: "Kitchen",
	})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
