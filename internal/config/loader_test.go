package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoader()

	// No config file given, no env set: pure defaults.
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Match.Threshold != 0.85 {
		t.Errorf("Expected default threshold 0.85, got %v", cfg.Match.Threshold)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
scan:
  severities: ["E", "F"]
  archives: true
match:
  database: "./known_errors.csv"
  threshold: 0.9
output:
  default_format: "json"
  verbose: true
logging:
  level: "debug"
`

	err := os.WriteFile(configPath, []byte(configContent), 0o600)
	if err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if got := cfg.Scan.Severities; len(got) != 2 || got[0] != "E" {
		t.Errorf("severities = %v", got)
	}
	if cfg.Match.Database != "./known_errors.csv" {
		t.Errorf("database = %q", cfg.Match.Database)
	}
	if cfg.Match.Threshold != 0.9 {
		t.Errorf("threshold = %v", cfg.Match.Threshold)
	}
	if cfg.Output.DefaultFormat != "json" || !cfg.Output.Verbose {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	// Unset values keep their defaults.
	if cfg.Match.CacheSize != 256 {
		t.Errorf("cache size = %d, want default 256", cfg.Match.CacheSize)
	}
	if len(cfg.Scan.Extensions) != 2 {
		t.Errorf("extensions = %v, want defaults", cfg.Scan.Extensions)
	}
}

func TestLoadConfigOmittedBooleansKeepDefaults(t *testing.T) {
	// A file that never mentions the boolean keys must not flip the
	// true defaults to false.
	configPath := filepath.Join(t.TempDir(), "partial.yaml")
	configContent := `match:
  threshold: 0.9
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Scan.Archives {
		t.Error("scan.archives default lost")
	}
	if !cfg.Output.ShowProgress {
		t.Error("output.show_progress default lost")
	}

	// An explicit false still wins.
	configContent = `scan:
  archives: false
output:
  show_progress: false
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = NewLoader().LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scan.Archives || cfg.Output.ShowProgress {
		t.Errorf("explicit false ignored: %+v %+v", cfg.Scan, cfg.Output)
	}
}

func TestLoadConfigInvalidPath(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"wrong extension", "config.txt"},
		{"path traversal", "../../etc/config.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.LoadConfig(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("scan: ["), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLoader().LoadConfig(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOGSIFT_MATCH_THRESHOLD", "0.95")
	t.Setenv("LOGSIFT_OUTPUT_DEFAULT_FORMAT", "csv")
	t.Setenv("LOGSIFT_SCAN_SEVERITIES", "E, F ,CRITICAL")
	t.Setenv("LOGSIFT_LOG_LEVEL", "debug")

	cfg, err := NewLoader().LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Match.Threshold != 0.95 {
		t.Errorf("threshold = %v", cfg.Match.Threshold)
	}
	if cfg.Output.DefaultFormat != "csv" {
		t.Errorf("format = %q", cfg.Output.DefaultFormat)
	}
	want := []string{"E", "F", "CRITICAL"}
	if len(cfg.Scan.Severities) != len(want) {
		t.Fatalf("severities = %v", cfg.Scan.Severities)
	}
	for i, s := range want {
		if cfg.Scan.Severities[i] != s {
			t.Errorf("severities[%d] = %q, want %q", i, cfg.Scan.Severities[i], s)
		}
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestEnvOverrideInvalidValue(t *testing.T) {
	t.Setenv("LOGSIFT_MATCH_THRESHOLD", "not-a-number")

	_, err := NewLoader().LoadConfig("")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "LOGSIFT_MATCH_THRESHOLD") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestEnvOverrideFailsValidation(t *testing.T) {
	t.Setenv("LOGSIFT_OUTPUT_DEFAULT_FORMAT", "markdown")

	if _, err := NewLoader().LoadConfig(""); err == nil {
		t.Fatal("expected validation error")
	}
}
