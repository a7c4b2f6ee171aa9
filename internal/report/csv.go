package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// csvFormatter formats report rows as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(rep *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Logfile",
		"Date",
		"Time",
		"Severity",
		"Type",
		"Description",
		"Category",
		"Cause",
		"Solution",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rep.Rows {
		cause, solution := "", ""
		if row.Match != nil {
			cause = row.Match.Cause
			solution = row.Match.Solution
		}

		record := []string{
			row.Entry.SourceID,
			row.Entry.Date,
			row.Entry.Time,
			row.Entry.Severity,
			row.Entry.Type,
			flattenCSVString(row.Entry.Description),
			row.Category,
			cause,
			solution,
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// flattenCSVString folds multi-line descriptions into one cell
func flattenCSVString(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " | ")
}
