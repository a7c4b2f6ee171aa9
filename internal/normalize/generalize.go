package normalize

import "regexp"

// tokenRule substitutes one class of variable token with a fixed
// placeholder. Rules run in declaration order; each narrows the text
// the following rules see.
type tokenRule struct {
	name string
	re   *regexp.Regexp
	repl string
}

// Token substitution rules. Ordering is load-bearing: UNC paths must
// be replaced before drive paths (a UNC host would otherwise survive
// as a bare token), filenames with digits before the path rules (so
// the filename placeholder is preserved inside path placeholders),
// and hex hashes before the digit-run rules (an all-digit hash would
// otherwise be eaten as a number).
var tokenRules = []tokenRule{
	{"ipv4", regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`), "<IP>"},
	{"media-file", regexp.MustCompile(`\b[\w%+=-]*\d[\w%+=-]*\.(?:mov|mp4|avi|mkv|mxf|jpg|jpeg|png|tif|tiff|bmp|exr|dds|pfm|wav|mp3|aac|flac|pdf|doc|docx|xls|xlsx)\b`), "<FILE>"},
	{"unc-path", regexp.MustCompile(`\\\\[^\s'",;]+`), "<UNC_PATH>"},
	{"drive-path", regexp.MustCompile(`\b[A-Za-z]:[\\/][^\s'",;]*`), "<DRIVE_PATH>"},
	{"srv-url", regexp.MustCompile(`\bsrv:(?://)?[^\s'",;]+`), "<SRV_PATH>"},
	{"slash-path", regexp.MustCompile(`(?:\.{1,2}/|/)?[\w.<>%*+=-]{2,}(?:/[\w.<>%*+=-]{2,})+/?`), "<UNIX_PATH>"},
	{"num-suffix", regexp.MustCompile(`_\d{4,}(?:_\d+)*\b`), "_<NUM>"},
	{"timestamp", regexp.MustCompile(`\b\d{4}[.-]\d{2}[.-]\d{2}[-_T ]\d{2}[.:]\d{2}[.:]\d{2}\b`), "<TIMESTAMP>"},
	{"date", regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{4}\b`), "<TIMESTAMP>"},
	{"clock", regexp.MustCompile(`\b\d{2}:\d{2}:\d{2}(?:\.\d{3})?\b`), "<TIMESTAMP>"},
	{"compact-stamp", regexp.MustCompile(`\b20\d{10,12}\b`), "<TIMESTAMP>"},
	{"hash", regexp.MustCompile(`\b[0-9a-fA-F]{32,}\b`), "<HASH>"},
	{"file-id", regexp.MustCompile(`\b\d{13,}\b`), "<FILE_ID>"},
	{"longnum", regexp.MustCompile(`\b\d{8,}\b`), "<LONGNUM>"},
	{"port", regexp.MustCompile(`:\d{2,5}\b`), ":<PORT>"},
	{"num", regexp.MustCompile(`\b\d{4,}\b`), "<NUM>"},
}

// Generalize replaces file paths, addresses, identifiers and other
// variable tokens in a message with fixed placeholders. It is the
// last substantive stage of the normalization pipeline and runs on
// every message, whether or not a shape pattern matched before it.
func Generalize(s string) string {
	for _, r := range tokenRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}
