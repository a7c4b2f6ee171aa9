// Package cli wires the logsift commands together.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sift-tools/logsift/internal/config"
	"github.com/sift-tools/logsift/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logsift",
		Short: "Log Error Extraction and Deduplication Tool",
		Long: `Logsift scans directories of production logs, extracts error and
warning entries across the supported log dialects, folds duplicates
through multi-stage message normalization, and optionally matches the
survivors against a CSV knowledge base of known errors.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flag("verbose").Changed {
				cfg.Output.Verbose = verbose
			}
			if cfg.Output.Verbose && cfg.Logging.Level == "info" {
				cfg.Logging.Level = "debug"
			}
			globalConfig = cfg
			logger.Init(cfg.Logging)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, csv)")

	// Add subcommands
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newMatchCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "dev" || version == "" {
				version = "development"
			}
			if commit == "none" || commit == "" {
				commit = "local-build"
			}
			if date == "unknown" || date == "" {
				date = "local-build"
			}

			fmt.Printf("logsift %s (%s) built on %s\n", version, commit, date)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers

// GetGlobalConfig returns the config loaded by the root command, or
// defaults when commands run outside it.
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		globalConfig = config.DefaultConfig()
	}
	return globalConfig
}

func isVerbose() bool {
	return GetGlobalConfig().Output.Verbose
}

// outputFormat resolves the effective format for a command.
func outputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return GetGlobalConfig().Output.DefaultFormat
}

// colorEnabled resolves the color mode against the --no-color flag.
func colorEnabled() bool {
	if noColor {
		return false
	}
	return GetGlobalConfig().Output.ColorMode != "never"
}
