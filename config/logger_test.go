package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingPrepare_FileLog(t *testing.T) {
	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(dir, "test.log"), Mode: "overwrite"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("hidden message")
	log.Info("visible message")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("unable to read log: %v", err)
	}
	if !strings.Contains(string(data), "visible message") {
		t.Errorf("info message missing from log:\n%s", data)
	}
	if strings.Contains(string(data), "hidden message") {
		t.Errorf("debug message must not be logged at normal level:\n%s", data)
	}
}

func TestLoggingPrepare_Disabled(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(-1) {
		t.Error("no level must be enabled when all loggers are off")
	}
}
