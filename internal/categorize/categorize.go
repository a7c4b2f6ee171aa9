// Package categorize assigns a coarse category to an extracted error
// so reports can group related failures.
package categorize

import (
	"regexp"
	"strings"
)

// Category names as they appear in reports.
const (
	Network        = "Network"
	File           = "File"
	System         = "System"
	Authentication = "Authentication"
	Media          = "Media"
	Module         = "Module"
	Timing         = "Timing"
	Other          = "Other"
)

type rule struct {
	category string
	patterns []*regexp.Regexp
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile("(?i)"+e))
	}
	return out
}

// Rules are checked in order; the first hit wins, so broader
// categories sit below narrower ones.
var rules = []rule{
	{Network, compile(
		`connection.*closed`,
		`network.*path.*not.*found`,
		`network.*error`,
		`timeout`,
		`connection.*refused`,
		`connection.*reset`,
		`authenticating.*failed`,
		`smb\d+.*failed`,
		`\\\\[\d.]+\\`,
	)},
	{File, compile(
		`file.*not.*found`,
		`transferring.*file.*failed`,
		`copying.*failed`,
		`file.*handle`,
		`end.*of.*file`,
		`cannot.*open.*file`,
		`permission.*denied`,
		`file.*exists`,
	)},
	{System, compile(
		`i/o.*operation.*aborted`,
		`thread.*exit`,
		`application.*request`,
		`memory.*error`,
		`access.*violation`,
		`null.*reference`,
	)},
	{Authentication, compile(
		`authenticating`,
		`authentication.*failed`,
		`login.*failed`,
		`unauthorized`,
		`access.*denied`,
		`permission`,
	)},
	{Media, compile(
		`encoding.*failed`,
		`decoding.*failed`,
		`invalid.*data.*processing.*input`,
		`software.*scaling.*failed`,
		`codec.*error`,
		`frame.*failed`,
	)},
	{Module, compile(
		`loading.*module.*failed`,
		`module.*not.*found`,
		`linking.*shared.*object.*failed`,
		`dll.*not.*found`,
	)},
	{Timing, compile(
		`system.*time.*changed`,
		`timestamp`,
		`timeout`,
	)},
}

// Categorize picks the category for one error. The type and message
// are matched together so either field can carry the signal.
func Categorize(errorType, message string) string {
	combined := strings.ToLower(errorType + " " + message)
	for _, r := range rules {
		for _, p := range r.patterns {
			if p.MatchString(combined) {
				return r.category
			}
		}
	}
	return Other
}

var (
	countPrefixRe = regexp.MustCompile(`(?i)^\d+x\s+`)
	similarToRe   = regexp.MustCompile(`(?i)^similar to\s+`)
)

// ShortType condenses a description into a label of at most 50
// characters, cutting at the first colon when one exists.
func ShortType(description string) string {
	short := description
	if i := strings.Index(short, ":"); i >= 0 {
		short = short[:i]
	} else if len(short) > 50 {
		short = short[:50]
	}
	short = strings.TrimSpace(short)
	short = countPrefixRe.ReplaceAllString(short, "")
	short = similarToRe.ReplaceAllString(short, "")
	if len(short) > 50 {
		short = short[:47] + "..."
	}
	return short
}
