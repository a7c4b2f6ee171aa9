package config

// SampleConfig returns a fully commented starter configuration.
func SampleConfig() string {
	return `# logsift configuration
version: "1.0"

scan:
  # Severity codes kept during extraction. Single letters cover the
  # compact log dialect, words cover the bracketed dialects.
  severities: ["E", "W", "F", "C", "ERROR", "WARN", "WARNING", "FATAL", "CRITICAL"]
  # File extensions treated as logs.
  extensions: [".log", ".txt"]
  # Look inside zip archives found during the scan.
  archives: true
  # Optional YAML file with extra normalization patterns.
  pattern_file: ""

match:
  # CSV knowledge base with error_text, cause and solution columns.
  database: ""
  # Fuzzy similarity cutoff for the last match stage.
  threshold: 0.85
  cache_size: 256

output:
  # text, json or csv.
  default_format: "text"
  # auto, always or never.
  color_mode: "auto"
  verbose: false
  # Scrub addresses, hostnames and paths from reports.
  anonymize: false
  show_progress: true

logging:
  level: "info"
  # Empty file sends diagnostics to stderr.
  file: ""
  max_size_mb: 10
  max_backups: 3
  max_age_days: 14
  compress: false
`
}

// MinimalSampleConfig returns a compact configuration with only the
// settings most installations change.
func MinimalSampleConfig() string {
	return `version: "1.0"

scan:
  severities: ["E", "W", "F", "C", "ERROR", "WARN", "WARNING", "FATAL", "CRITICAL"]
  archives: true

match:
  database: ""
  threshold: 0.85

output:
  default_format: "text"
`
}
