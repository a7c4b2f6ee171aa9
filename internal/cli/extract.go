package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sift-tools/logsift/internal/anonymize"
	"github.com/sift-tools/logsift/internal/dedup"
	"github.com/sift-tools/logsift/internal/extractor"
	"github.com/sift-tools/logsift/internal/kb"
	"github.com/sift-tools/logsift/internal/logger"
	"github.com/sift-tools/logsift/internal/match"
	"github.com/sift-tools/logsift/internal/normalize"
	"github.com/sift-tools/logsift/internal/progress"
	"github.com/sift-tools/logsift/internal/report"
	"github.com/sift-tools/logsift/internal/scanner"
	"github.com/sift-tools/logsift/internal/ui"
)

var (
	extractSeverities []string
	extractOutputFile string
	extractNoTUI      bool
	extractAnonymize  bool
	extractArchives   bool
	extractPatterns   string
	extractDatabase   string
	extractThreshold  float64
)

func newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [directories...]",
		Short: "Extract unique errors from log directories",
		Long: `Scan one or more directories for log files, extract error entries,
and fold duplicates through message normalization.

Zip archives found during the walk are scanned in place. With a
knowledge base configured, every unique error is also looked up for a
known cause and solution.

Examples:
  logsift extract ./logs
  logsift extract --severities E,F --output json ./logs ./archive
  logsift extract --database known_errors.csv --output-file report.csv -o csv ./logs`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringSliceVarP(&extractSeverities, "severities", "s", nil, "severity codes to keep (default from config)")
	cmd.Flags().StringVar(&extractOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().BoolVar(&extractNoTUI, "no-tui", false, "disable progress display")
	cmd.Flags().BoolVar(&extractAnonymize, "anonymize", false, "scrub addresses, hostnames and paths from output")
	cmd.Flags().BoolVar(&extractArchives, "archives", true, "scan zip archives found during the walk")
	cmd.Flags().StringVarP(&extractPatterns, "patterns", "p", "", "extra normalization pattern file (YAML)")
	cmd.Flags().StringVarP(&extractDatabase, "database", "d", "", "CSV knowledge base for matching")
	cmd.Flags().Float64VarP(&extractThreshold, "threshold", "t", 0, "fuzzy match threshold (default from config)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	// Config supplies values for flags the user left alone.
	if !cmd.Flag("severities").Changed {
		extractSeverities = cfg.Scan.Severities
	}
	if !cmd.Flag("archives").Changed {
		extractArchives = cfg.Scan.Archives
	}
	if !cmd.Flag("anonymize").Changed {
		extractAnonymize = cfg.Output.Anonymize
	}
	if !cmd.Flag("patterns").Changed {
		extractPatterns = cfg.Scan.PatternFile
	}
	if !cmd.Flag("database").Changed {
		extractDatabase = cfg.Match.Database
	}
	if !cmd.Flag("threshold").Changed {
		extractThreshold = cfg.Match.Threshold
	}

	norm, err := buildNormalizer(extractPatterns)
	if err != nil {
		return err
	}

	session := dedup.NewSession(norm)
	cancel := &scanner.Cancel{}

	scan := func(sink progress.Sink) (*scanner.Result, error) {
		s := scanner.New(session,
			scanner.WithFilter(extractor.NewFilter(extractSeverities...)),
			scanner.WithExtensions(cfg.Scan.Extensions),
			scanner.WithArchives(extractArchives),
			scanner.WithCancel(cancel),
			scanner.WithSink(sink),
		)
		for _, dir := range args {
			if err := s.ScanDir(dir); err != nil {
				return nil, err
			}
		}
		return s.Result(), nil
	}

	var result *scanner.Result
	if extractNoTUI || !cfg.Output.ShowProgress {
		sink := progress.Nop()
		if isVerbose() {
			sink = progress.Func(func(line string) {
				fmt.Fprintln(os.Stderr, line)
			})
		}
		result, err = scan(sink)
	} else {
		result, err = ui.Run(scan, cancel)
	}
	if err != nil {
		return err
	}

	logger.S().Infow("scan finished",
		"unique", len(result.Entries),
		"files", result.Files,
		"skipped", result.Skipped,
		"failures", result.Failures,
	)

	if extractAnonymize {
		result.Entries = anonymize.New().Entries(result.Entries)
	}

	rep := report.Build(result)
	if extractDatabase != "" {
		if err := attachMatches(rep, norm, extractDatabase, extractThreshold); err != nil {
			return err
		}
	}

	return writeReport(rep)
}

// attachMatches looks every unique error up in the knowledge base.
func attachMatches(rep *report.Report, norm *normalize.Normalizer, database string, threshold float64) error {
	store, err := kb.OpenCSV(database, norm)
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}

	m := match.New(store,
		match.WithNormalizer(norm),
		match.WithThreshold(threshold),
		match.WithCacheSize(GetGlobalConfig().Match.CacheSize),
	)
	for i := range rep.Rows {
		res, ok, err := m.Match(rep.Rows[i].Entry.FirstDescriptionLine())
		if err != nil {
			return fmt.Errorf("knowledge base lookup failed: %w", err)
		}
		if ok {
			entry := res.Entry
			rep.Rows[i].Match = &entry
		}
	}
	return nil
}

// writeReport renders the report to stdout or the output file.
func writeReport(rep *report.Report) error {
	color := colorEnabled() && extractOutputFile == ""
	formatter, err := report.New(outputFormat(), color)
	if err != nil {
		return err
	}

	out, err := formatter.Format(rep)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if extractOutputFile != "" {
		if err := os.WriteFile(extractOutputFile, out, 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Report written to %s\n", extractOutputFile)
		return nil
	}

	_, err = os.Stdout.Write(out)
	return err
}

// buildNormalizer merges an optional pattern file into the default
// normalization rules.
func buildNormalizer(patternFile string) (*normalize.Normalizer, error) {
	if patternFile == "" {
		return normalize.Default(), nil
	}
	extra, err := normalize.LoadShapePatterns(patternFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	return normalize.New(extra...), nil
}
