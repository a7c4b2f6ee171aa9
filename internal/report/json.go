package report

import (
	"encoding/json"
	"time"

	"github.com/sift-tools/logsift/internal/extractor"
	"github.com/sift-tools/logsift/internal/kb"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(rep *Report) ([]byte, error) {
	output := &jsonOutput{
		Summary: createSummary(rep),
		Entries: createEntryOutputs(rep.Rows),
	}
	return json.MarshalIndent(output, "", "  ")
}

type jsonOutput struct {
	Summary *summaryOutput `json:"summary"`
	Entries []*entryOutput `json:"entries"`
}

type summaryOutput struct {
	GeneratedAt   time.Time      `json:"generated_at"`
	UniqueErrors  int            `json:"unique_errors"`
	FilesScanned  int            `json:"files_scanned"`
	Archives      int            `json:"archives_scanned"`
	Duplicates    int            `json:"duplicates_skipped"`
	Failures      int            `json:"failures"`
	ByCategory    map[string]int `json:"by_category"`
	BySeverity    map[string]int `json:"by_severity"`
	MatchedErrors int            `json:"matched_errors"`
}

type entryOutput struct {
	extractor.Entry
	Category string    `json:"category"`
	Match    *kb.Entry `json:"match,omitempty"`
}

func createSummary(rep *Report) *summaryOutput {
	s := &summaryOutput{
		GeneratedAt:  rep.GeneratedAt,
		UniqueErrors: len(rep.Rows),
		FilesScanned: rep.Files,
		Archives:     rep.Archives,
		Duplicates:   rep.Skipped,
		Failures:     rep.Failures,
		ByCategory:   make(map[string]int),
		BySeverity:   make(map[string]int),
	}
	for _, row := range rep.Rows {
		s.ByCategory[row.Category]++
		s.BySeverity[row.Entry.Severity]++
		if row.Match != nil {
			s.MatchedErrors++
		}
	}
	return s
}

func createEntryOutputs(rows []Row) []*entryOutput {
	outputs := make([]*entryOutput, 0, len(rows))
	for _, row := range rows {
		outputs = append(outputs, &entryOutput{
			Entry:    row.Entry,
			Category: row.Category,
			Match:    row.Match,
		})
	}
	return outputs
}
