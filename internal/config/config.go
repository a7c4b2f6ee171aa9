package config

import (
	"fmt"

	"github.com/sift-tools/logsift/internal/logger"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Scan    ScanConfig    `yaml:"scan" json:"scan"`
	Match   MatchConfig   `yaml:"match" json:"match"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging logger.Config `yaml:"logging" json:"logging"`
}

// ScanConfig configures directory scanning and extraction
type ScanConfig struct {
	Severities  []string `yaml:"severities" json:"severities"`     // severity codes to keep
	Extensions  []string `yaml:"extensions" json:"extensions"`     // log file extensions
	Archives    bool     `yaml:"archives" json:"archives"`         // look inside zip files
	PatternFile string   `yaml:"pattern_file" json:"pattern_file"` // extra normalization patterns
}

// MatchConfig configures knowledge-base matching
type MatchConfig struct {
	Database  string  `yaml:"database" json:"database"`   // CSV knowledge base path
	Threshold float64 `yaml:"threshold" json:"threshold"` // fuzzy match cutoff
	CacheSize int     `yaml:"cache_size" json:"cache_size"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	Anonymize     bool   `yaml:"anonymize" json:"anonymize"`
	ShowProgress  bool   `yaml:"show_progress" json:"show_progress"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Scan: ScanConfig{
			Severities: []string{"E", "W", "F", "C", "ERROR", "WARN", "WARNING", "FATAL", "CRITICAL"},
			Extensions: []string{".log", ".txt"},
			Archives:   true,
		},
		Match: MatchConfig{
			Threshold: 0.85,
			CacheSize: 256,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			ShowProgress:  true,
		},
		Logging: logger.Config{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateScanConfig(); err != nil {
		return err
	}
	if err := c.validateMatchConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

func (c *Config) validateScanConfig() error {
	if len(c.Scan.Severities) == 0 {
		return fmt.Errorf("scan.severities must not be empty")
	}
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions must not be empty")
	}
	return nil
}

func (c *Config) validateMatchConfig() error {
	if c.Match.Threshold <= 0 || c.Match.Threshold > 1 {
		return fmt.Errorf("match.threshold must be in (0, 1], got %v", c.Match.Threshold)
	}
	if c.Match.CacheSize < 1 {
		return fmt.Errorf("match.cache_size must be greater than 0")
	}
	return nil
}

func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text": true,
			"json": true,
			"csv":  true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
