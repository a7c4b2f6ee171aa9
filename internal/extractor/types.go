package extractor

import "strings"

// Entry is one filtered record extracted from a log source. Date and
// Time keep the source's native formatting; Severity is the
// normalized name for the severity code, or the code itself when it
// is unknown.
type Entry struct {
	SourceID    string `json:"source_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Code        string `json:"severity_code"`
	Severity    string `json:"severity"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// FirstDescriptionLine returns the first line of the description, or
// the type text when the entry has no description. This is the text
// the dedup key and knowledge-base lookups are built from.
func (e Entry) FirstDescriptionLine() string {
	if e.Description == "" {
		return e.Type
	}
	if idx := strings.IndexByte(e.Description, '\n'); idx >= 0 {
		return e.Description[:idx]
	}
	return e.Description
}

// severityNames maps the single-letter and word codes the supported
// log dialects use onto one closed severity set. Unknown codes pass
// through unchanged.
var severityNames = map[string]string{
	"V":        "verbose",
	"I":        "info",
	"E":        "error",
	"W":        "warning",
	"F":        "fatal",
	"C":        "critical",
	"INFO":     "info",
	"ERROR":    "error",
	"WARN":     "warning",
	"WARNING":  "warning",
	"FATAL":    "fatal",
	"CRITICAL": "critical",
}

// SeverityName resolves a severity code to its normalized name.
func SeverityName(code string) string {
	if name, ok := severityNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// Filter is the set of severity codes an extraction pass retains.
type Filter map[string]struct{}

// NewFilter builds a filter from severity codes. Codes are matched
// case-insensitively.
func NewFilter(codes ...string) Filter {
	f := make(Filter, len(codes))
	for _, c := range codes {
		f[strings.ToUpper(c)] = struct{}{}
	}
	return f
}

// DefaultFilter retains errors, warnings, fatals and criticals in
// both the single-letter and word dialects; verbose and info lines
// are read but discarded.
func DefaultFilter() Filter {
	return NewFilter("E", "W", "F", "C", "ERROR", "WARN", "WARNING", "FATAL", "CRITICAL")
}

// Has reports whether the filter retains the given severity code.
func (f Filter) Has(code string) bool {
	_, ok := f[strings.ToUpper(code)]
	return ok
}
