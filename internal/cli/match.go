package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sift-tools/logsift/internal/kb"
	"github.com/sift-tools/logsift/internal/match"
)

var (
	matchDatabase  string
	matchThreshold float64
)

func newMatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [error text]",
		Short: "Look one error up in the knowledge base",
		Long: `Match an error message against the CSV knowledge base.

The lookup runs in stages: exact text, normalized text, then fuzzy
similarity. Reads the error text from stdin when no argument is given.

Examples:
  logsift match --database known_errors.csv "The file handle supplied is not valid."
  echo "display sync timed out (192.168.2.1 / Output 1)" | logsift match -d known_errors.csv
  logsift match -d known_errors.csv -o json "authenticating failed"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMatch,
	}

	cmd.Flags().StringVarP(&matchDatabase, "database", "d", "", "CSV knowledge base path")
	cmd.Flags().Float64VarP(&matchThreshold, "threshold", "t", 0, "fuzzy match threshold (default from config)")

	return cmd
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if !cmd.Flag("database").Changed {
		matchDatabase = cfg.Match.Database
	}
	if !cmd.Flag("threshold").Changed {
		matchThreshold = cfg.Match.Threshold
	}
	if matchDatabase == "" {
		return fmt.Errorf("no knowledge base configured (use --database or match.database in config)")
	}

	errorText, err := matchInput(args)
	if err != nil {
		return err
	}
	if errorText == "" {
		return fmt.Errorf("no error text given")
	}

	norm, err := buildNormalizer(cfg.Scan.PatternFile)
	if err != nil {
		return err
	}

	store, err := kb.OpenCSV(matchDatabase, norm)
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}

	m := match.New(store,
		match.WithNormalizer(norm),
		match.WithThreshold(matchThreshold),
		match.WithCacheSize(cfg.Match.CacheSize),
	)
	res, ok, err := m.Match(errorText)
	if err != nil {
		return err
	}

	return printMatch(res, ok)
}

// matchInput takes the error text from the argument or stdin.
func matchInput(args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func printMatch(res *match.Result, ok bool) error {
	if outputFormat() == "json" {
		return printMatchJSON(res, ok)
	}

	if !ok {
		fmt.Println("No match found.")
		return nil
	}

	fmt.Printf("Match (%s, similarity %.2f)\n", res.Type, res.Similarity)
	fmt.Printf("├─ Error:    %s\n", res.Entry.ErrorText)
	fmt.Printf("├─ Cause:    %s\n", res.Entry.Cause)
	fmt.Printf("├─ Solution: %s\n", res.Entry.Solution)
	if res.Entry.Severity != "" {
		fmt.Printf("├─ Severity: %s\n", res.Entry.Severity)
	}
	fmt.Printf("└─ Category: %s\n", res.Entry.Category)
	return nil
}

func printMatchJSON(res *match.Result, ok bool) error {
	out := struct {
		Found bool          `json:"found"`
		Match *match.Result `json:"match,omitempty"`
	}{Found: ok, Match: res}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
