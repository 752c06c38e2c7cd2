package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"

	"lexhtml/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Render.UnknownNodes != common.UnknownNodesSkip {
		t.Errorf("UnknownNodes = %s, want skip", cfg.Render.UnknownNodes)
	}
	if cfg.Render.InputExt != ".json" || cfg.Render.OutputExt != ".html" {
		t.Errorf("unexpected extensions %q -> %q", cfg.Render.InputExt, cfg.Render.OutputExt)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("unexpected logging levels %+v", cfg.Logging)
	}
	if filepath.Base(cfg.Logging.FileLogger.Destination) != "lexhtml.log" {
		t.Errorf("unexpected log destination %q", cfg.Logging.FileLogger.Destination)
	}
	if filepath.Base(cfg.Reporting.Destination) != "lexhtml-report.zip" {
		t.Errorf("unexpected report destination %q", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
render:
  unknown_nodes: fail
  output_ext: .htm
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Render.UnknownNodes != common.UnknownNodesFail {
		t.Errorf("UnknownNodes = %s, want fail", cfg.Render.UnknownNodes)
	}
	if cfg.Render.OutputExt != ".htm" {
		t.Errorf("OutputExt = %q", cfg.Render.OutputExt)
	}
	// not mentioned in file - defaults are kept
	if cfg.Render.InputExt != ".json" {
		t.Errorf("InputExt = %q, default expected", cfg.Render.InputExt)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nrender:\n  unknown_nodes: skip\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"wrong version", "version: 2\n"},
		{"bad unknown nodes", "version: 1\nrender:\n  unknown_nodes: explode\n"},
		{"bad extension", "version: 1\nrender:\n  output_ext: html\n"},
		{"same extensions", "version: 1\nrender:\n  output_ext: .json\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if strings.Contains(string(data), "{{") {
		t.Errorf("template was not expanded:\n%s", data)
	}
}

func TestDump_RoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Render.UnknownNodes = common.UnknownNodesFail

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "unknown_nodes: fail") {
		t.Errorf("dump does not contain mode name:\n%s", data)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unable to read dump back: %v", err)
	}
	if back.Render != cfg.Render {
		t.Errorf("render section changed: %+v vs %+v", back.Render, cfg.Render)
	}
}
