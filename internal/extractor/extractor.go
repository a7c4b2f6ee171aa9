package extractor

import (
	"fmt"
	"path"
	"strings"

	"github.com/sift-tools/logsift/internal/progress"
)

// Extract runs a single forward pass over the line sequence of one
// source and returns the entries whose severity the filter retains.
// After a matching line, immediately following indented lines (tab or
// four spaces) that are not themselves entry lines are accumulated as
// the description. Anything else is treated as noise and skipped.
//
// The sink fires once per retained entry; passing nil disables it.
func Extract(sourceID string, lines []string, filter Filter, sink progress.Sink) []Entry {
	if filter == nil {
		filter = DefaultFilter()
	}
	sink = progress.OrNop(sink)

	var entries []Entry
	i := 0
	for i < len(lines) {
		line := strings.TrimRight(lines[i], "\r\n")
		m, ok := matchEntryLine(line)
		i++
		if !ok || !filter.Has(m.code) {
			continue
		}

		var desc []string
		for i < len(lines) {
			next := strings.TrimRight(lines[i], "\r\n")
			if _, isEntry := matchEntryLine(next); isEntry {
				break
			}
			if !strings.HasPrefix(next, "\t") && !strings.HasPrefix(next, "    ") {
				break
			}
			desc = append(desc, strings.TrimSpace(next))
			i++
		}

		entry := Entry{
			SourceID:    sourceID,
			Date:        m.date,
			Time:        m.time,
			Code:        m.code,
			Severity:    SeverityName(m.code),
			Type:        strings.TrimSpace(m.rest),
			Description: strings.Join(desc, "\n"),
		}
		entries = append(entries, entry)

		sink.Progress(fmt.Sprintf("found %s in %s: %s",
			strings.ToUpper(entry.Severity), path.Base(sourceID), entry.Type))
	}
	return entries
}
