package cli

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sift-tools/logsift/internal/dedup"
	"github.com/sift-tools/logsift/internal/extractor"
	"github.com/sift-tools/logsift/internal/logger"
	"github.com/sift-tools/logsift/internal/progress"
	"github.com/sift-tools/logsift/internal/scanner"
)

var watchPatterns string

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a log directory for new errors",
		Long: `Monitor a directory tree and report unique errors as they appear.

An initial scan seeds the dedup state, then file system notifications
trigger incremental re-scans of changed files. Only errors never seen
before are printed. Press Ctrl+C to stop watching.

Examples:
  logsift watch ./logs
  logsift watch --severities E,F /var/log/render`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringSliceVarP(&extractSeverities, "severities", "s", nil, "severity codes to keep (default from config)")
	cmd.Flags().StringVarP(&watchPatterns, "patterns", "p", "", "extra normalization pattern file (YAML)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	root := args[0]

	if !cmd.Flag("severities").Changed {
		extractSeverities = cfg.Scan.Severities
	}
	if !cmd.Flag("patterns").Changed {
		watchPatterns = cfg.Scan.PatternFile
	}

	norm, err := buildNormalizer(watchPatterns)
	if err != nil {
		return err
	}

	session := dedup.NewSession(norm)
	sink := progress.Func(func(line string) {
		if strings.HasPrefix(line, "found ") {
			fmt.Println(line)
		} else if isVerbose() {
			fmt.Fprintln(os.Stderr, line)
		}
	})
	s := scanner.New(session,
		scanner.WithFilter(extractor.NewFilter(extractSeverities...)),
		scanner.WithExtensions(cfg.Scan.Extensions),
		scanner.WithArchives(false),
		scanner.WithSink(sink),
	)

	// Seed the dedup state so only genuinely new errors get printed
	// once watching starts.
	if err := s.ScanDir(root); err != nil {
		return err
	}
	res := s.Result()
	fmt.Printf("watching %s (%d known unique errors)\n", root, len(res.Entries))

	watcher, err := setupDirWatcher(root)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	return runWatchLoop(watcher, s, cfg.Scan.Extensions)
}

// setupDirWatcher registers the root and every subdirectory.
func setupDirWatcher(root string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
	if err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil {
		logger.S().Warnw("failed to close watcher", "error", err)
	}
}

// runWatchLoop runs the main watch loop with signal handling
func runWatchLoop(watcher *fsnotify.Watcher, s *scanner.Scanner, exts []string) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	for {
		select {
		case <-signals:
			res := s.Result()
			fmt.Printf("\nstopped: %d unique errors, %d duplicates folded\n",
				len(res.Entries), res.Skipped)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			handleWatchEvent(watcher, s, exts, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.S().Warnw("watch error", "error", err)
		}
	}
}

// handleWatchEvent re-scans changed log files and registers new
// directories.
func handleWatchEvent(watcher *fsnotify.Watcher, s *scanner.Scanner, exts []string, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := watcher.Add(event.Name); err != nil {
				logger.S().Warnw("failed to watch new directory",
					"dir", event.Name, "error", err)
			}
		}
		return
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			s.ScanFile(event.Name)
			return
		}
	}
}
