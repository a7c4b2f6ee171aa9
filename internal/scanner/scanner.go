// Package scanner walks directory trees, feeds every log source it
// finds through extraction and deduplication, and accumulates the
// unique entries. Per-source failures are reported and skipped; only
// a nonexistent root is fatal.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sift-tools/logsift/internal/dedup"
	"github.com/sift-tools/logsift/internal/extractor"
	"github.com/sift-tools/logsift/internal/progress"
)

// maxLineBytes bounds the scanner buffer for a single log line.
const maxLineBytes = 1024 * 1024

// Cancel is a cooperative stop flag, checked between sources. Safe
// to trip from another goroutine.
type Cancel struct {
	stopped atomic.Bool
}

// Stop requests the scan to end after the current source.
func (c *Cancel) Stop() { c.stopped.Store(true) }

// Stopped reports whether a stop was requested.
func (c *Cancel) Stopped() bool { return c.stopped.Load() }

// Result is what a scan run accumulated so far.
type Result struct {
	Entries  []extractor.Entry `json:"entries"`
	Files    int               `json:"files_scanned"`
	Archives int               `json:"archives_scanned"`
	Skipped  int               `json:"duplicates_skipped"`
	Failures int               `json:"source_failures"`
}

// Scanner drives extraction over directory trees. The dedup session
// persists across ScanDir calls, so several trees share one global
// index; use a fresh Scanner (or Reset the session) to start over.
type Scanner struct {
	session  *dedup.Session
	filter   extractor.Filter
	sink     progress.Sink
	cancel   *Cancel
	exts     []string
	archives bool

	files        int
	archiveCount int
	failures     int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFilter overrides the default severity filter.
func WithFilter(f extractor.Filter) Option {
	return func(s *Scanner) { s.filter = f }
}

// WithSink installs a progress sink.
func WithSink(sink progress.Sink) Option {
	return func(s *Scanner) { s.sink = progress.OrNop(sink) }
}

// WithCancel installs a cooperative cancellation flag.
func WithCancel(c *Cancel) Option {
	return func(s *Scanner) { s.cancel = c }
}

// WithExtensions overrides the plain-file extensions scanned.
func WithExtensions(exts []string) Option {
	return func(s *Scanner) { s.exts = exts }
}

// WithArchives toggles scanning of zip archives.
func WithArchives(enabled bool) Option {
	return func(s *Scanner) { s.archives = enabled }
}

// New creates a Scanner over the given session. A nil session gets a
// fresh one with the default normalizer.
func New(session *dedup.Session, opts ...Option) *Scanner {
	if session == nil {
		session = dedup.NewSession(nil)
	}
	s := &Scanner{
		session:  session,
		filter:   extractor.DefaultFilter(),
		sink:     progress.Nop(),
		cancel:   &Cancel{},
		exts:     []string{".log", ".txt"},
		archives: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session exposes the scanner's dedup session.
func (s *Scanner) Session() *dedup.Session { return s.session }

// Result snapshots the accumulated entries and counters.
func (s *Scanner) Result() *Result {
	return &Result{
		Entries:  s.session.Entries(),
		Files:    s.files,
		Archives: s.archiveCount,
		Skipped:  s.session.Skipped(),
		Failures: s.failures,
	}
}

// ScanDir walks one directory tree. A missing or unreadable root is
// an immediate error; anything below it is best-effort.
func (s *Scanner) ScanDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("directory not found: %s", root)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	var logFiles, zipFiles []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.report("cannot access %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case s.hasExt(ext):
			logFiles = append(logFiles, path)
		case s.archives && ext == ".zip":
			zipFiles = append(zipFiles, path)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}
	sort.Strings(logFiles)
	sort.Strings(zipFiles)

	for _, path := range logFiles {
		if s.cancel.Stopped() {
			s.report("scan cancelled")
			return nil
		}
		s.ScanFile(path)
	}
	for _, path := range zipFiles {
		if s.cancel.Stopped() {
			s.report("scan cancelled")
			return nil
		}
		s.scanArchive(path)
	}
	return nil
}

// ScanFile runs one plain file through extraction and dedup. Read
// failures are reported, never fatal.
func (s *Scanner) ScanFile(path string) {
	s.report("processing: %s", filepath.Base(path))

	f, err := os.Open(path)
	if err != nil {
		s.failures++
		s.report("failed to read %s: %v", filepath.Base(path), err)
		return
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		s.failures++
		s.report("failed to read %s: %v", filepath.Base(path), err)
		return
	}

	s.files++
	s.ingest(path, lines)
}

// ingest extracts entries from one source and records the new ones.
func (s *Scanner) ingest(sourceID string, lines []string) {
	for _, e := range extractor.Extract(sourceID, lines, s.filter, nil) {
		if s.session.Add(e) {
			s.report("found %s in %s: %s",
				strings.ToUpper(e.Severity), filepath.Base(sourceID), e.Type)
		}
	}
}

func (s *Scanner) hasExt(ext string) bool {
	for _, e := range s.exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (s *Scanner) report(format string, args ...any) {
	s.sink.Progress(fmt.Sprintf(format, args...))
}

// readLines slurps a source line by line. Decoding is best-effort:
// invalid byte sequences pass through untouched.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
