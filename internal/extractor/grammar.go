package extractor

import "regexp"

// grammarKind identifies one of the supported line-start grammars.
type grammarKind int

const (
	// grammarCompact: DD.MM.YYYY HH:MM:SS <single-letter code> <rest>
	grammarCompact grammarKind = iota
	// grammarISO: YYYY-MM-DD HH:MM:SS.mmm [LEVEL] <rest>
	grammarISO
	// grammarWeekday: <weekday> DD.Mon. HH:MM:SS.mmm LEVEL <rest>
	grammarWeekday
)

// lineMatch is the decomposed head of an entry line.
type lineMatch struct {
	kind grammarKind
	date string
	time string
	code string
	rest string
}

type grammar struct {
	kind grammarKind
	re   *regexp.Regexp
}

// Grammars are tried in this fixed order until one matches.
var grammars = []grammar{
	{grammarCompact, regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})\s+(\d{2}:\d{2}:\d{2})\s+([VIWFCE])\s+(.+)$`)},
	{grammarISO, regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2}:\d{2}\.\d{3})\s+\[(INFO|ERROR|WARN|WARNING|FATAL|CRITICAL)\]\s+(.+)$`)},
	{grammarWeekday, regexp.MustCompile(`^([A-Z][a-z]{2})\s+(\d{2}\.[A-Z][a-z]{2}\.)\s+(\d{2}:\d{2}:\d{2}\.\d{3})\s+(INFO|ERROR|WARN|WARNING|FATAL|CRITICAL)\s+(.+)$`)},
}

// matchEntryLine tests a line against the known grammars. Lines that
// match none are noise: skipped, never an error.
func matchEntryLine(line string) (lineMatch, bool) {
	for _, g := range grammars {
		m := g.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch g.kind {
		case grammarWeekday:
			// Weekday and day-month together form the date field.
			return lineMatch{
				kind: g.kind,
				date: m[1] + " " + m[2],
				time: m[3],
				code: m[4],
				rest: m[5],
			}, true
		default:
			return lineMatch{
				kind: g.kind,
				date: m[1],
				time: m[2],
				code: m[3],
				rest: m[4],
			}, true
		}
	}
	return lineMatch{}, false
}
