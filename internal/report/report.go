// Package report renders scan results in the supported output
// formats.
package report

import (
	"fmt"
	"time"

	"github.com/sift-tools/logsift/internal/categorize"
	"github.com/sift-tools/logsift/internal/extractor"
	"github.com/sift-tools/logsift/internal/kb"
	"github.com/sift-tools/logsift/internal/scanner"
)

// Row is one unique error with its derived fields.
type Row struct {
	Entry    extractor.Entry
	Category string
	Match    *kb.Entry
}

// Report is the renderable result of a scan.
type Report struct {
	GeneratedAt time.Time
	Rows        []Row
	Files       int
	Archives    int
	Skipped     int
	Failures    int
}

// Build categorizes the scanned entries into a report.
func Build(res *scanner.Result) *Report {
	rep := &Report{
		GeneratedAt: time.Now(),
		Rows:        make([]Row, 0, len(res.Entries)),
		Files:       res.Files,
		Archives:    res.Archives,
		Skipped:     res.Skipped,
		Failures:    res.Failures,
	}
	for _, e := range res.Entries {
		rep.Rows = append(rep.Rows, Row{
			Entry:    e,
			Category: categorize.Categorize(e.Type, e.Description),
		})
	}
	return rep
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(rep *Report) ([]byte, error)
}

// New returns the formatter for a format name.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "csv":
		return NewCSV(), nil
	case "json":
		return NewJSON(), nil
	case "text", "terminal", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
