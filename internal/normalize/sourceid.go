package normalize

import (
	"path"
	"regexp"
	"strings"
)

// splitSuffixRe matches the short suffixes a log writer appends to
// split or rotated copies of one logical log: "-1", "-27" or the
// "-WRITEABLE" marker. Larger numeric identifiers that are part of
// the base name (e.g. "playback-27103") carry more digits and do not
// match.
var splitSuffixRe = regexp.MustCompile(`(?i)-(?:\d{1,2}|WRITEABLE)$`)

// SourceID reduces a source identifier to the logical log it belongs
// to: only the filename component is kept, and a split suffix before
// the extension is removed. Archive sources ("bundle.zip/inner/x.log")
// reduce the same way as plain paths.
func SourceID(id string) string {
	name := path.Base(strings.ReplaceAll(id, `\`, "/"))
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	stem = splitSuffixRe.ReplaceAllString(stem, "")
	return stem + ext
}
