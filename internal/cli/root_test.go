package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sift-tools/logsift/internal/config"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.0.0", "abc123", "2026-01-01")
	if cmd.Use != "logsift" {
		t.Errorf("Use = %q", cmd.Use)
	}

	for _, name := range []string{"extract", "match", "watch", "config", "version"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand("dev", "none", "unknown")
	for _, name := range []string{"config", "verbose", "no-color", "output"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing global flag %q", name)
		}
	}
}

func TestOutputFormatResolution(t *testing.T) {
	oldFmt, oldCfg := outputFmt, globalConfig
	defer func() { outputFmt, globalConfig = oldFmt, oldCfg }()

	globalConfig = config.DefaultConfig()
	outputFmt = ""
	if got := outputFormat(); got != "text" {
		t.Errorf("config default: got %q", got)
	}

	outputFmt = "json"
	if got := outputFormat(); got != "json" {
		t.Errorf("flag override: got %q", got)
	}
}

func TestColorEnabled(t *testing.T) {
	oldNoColor, oldCfg := noColor, globalConfig
	defer func() { noColor, globalConfig = oldNoColor, oldCfg }()

	globalConfig = config.DefaultConfig()
	noColor = false
	if !colorEnabled() {
		t.Error("auto mode without --no-color should enable color")
	}

	noColor = true
	if colorEnabled() {
		t.Error("--no-color must win")
	}

	noColor = false
	globalConfig.Output.ColorMode = "never"
	if colorEnabled() {
		t.Error("color_mode never must disable color")
	}
}

func TestBuildNormalizer(t *testing.T) {
	if _, err := buildNormalizer(""); err != nil {
		t.Errorf("empty pattern file: %v", err)
	}

	if _, err := buildNormalizer(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing pattern file must fail")
	}

	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := `- name: custom-shape
  priority: 5
  match: '^custom error .*$'
  rewrite: 'custom error <DETAIL>'
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	norm, err := buildNormalizer(path)
	if err != nil {
		t.Fatalf("valid pattern file: %v", err)
	}
	if got := norm.Message("custom error 42"); got != "custom error <DETAIL>" {
		t.Errorf("custom pattern not applied: %q", got)
	}
}

func TestConfigInitCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")

	cmd := newConfigInitCommand()
	cmd.SetArgs([]string{"--output", target})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty config written")
	}

	// Second run without --force must refuse.
	cmd = newConfigInitCommand()
	cmd.SetArgs([]string{"--output", target})
	if err := cmd.Execute(); err == nil {
		t.Error("expected refusal to overwrite")
	}
}
