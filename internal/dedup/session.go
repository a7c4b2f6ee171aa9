// Package dedup decides which extracted entries are new. The index
// and the accumulated entries live in an explicitly owned Session:
// one session spans as many scans as the caller wants (so duplicates
// collapse across directories), and a fresh session starts clean.
package dedup

import (
	"strings"

	"github.com/sift-tools/logsift/internal/extractor"
	"github.com/sift-tools/logsift/internal/normalize"
)

// Session holds the deduplication index and the unique entries
// accumulated so far. Not safe for concurrent use; callers running
// scans in parallel must serialize access.
type Session struct {
	norm    *normalize.Normalizer
	seen    map[string]struct{}
	entries []extractor.Entry
	skipped int
}

// NewSession creates an empty session. A nil normalizer selects the
// default pattern library.
func NewSession(norm *normalize.Normalizer) *Session {
	if norm == nil {
		norm = normalize.Default()
	}
	return &Session{
		norm: norm,
		seen: make(map[string]struct{}),
	}
}

// Add records the entry if its key has not been seen and reports
// whether it was new. Duplicates only bump the skipped counter.
func (s *Session) Add(e extractor.Entry) bool {
	k := s.key(e)
	if _, dup := s.seen[k]; dup {
		s.skipped++
		return false
	}
	s.seen[k] = struct{}{}
	s.entries = append(s.entries, e)
	return true
}

// key builds the composite dedup key. The normalized source id keeps
// distinct logical logs separate while collapsing split and rotated
// copies of the same log; type and first description line are
// normalized so parameter-only variations share a key.
func (s *Session) key(e extractor.Entry) string {
	parts := []string{
		normalize.SourceID(e.SourceID),
		e.Code,
		s.norm.Message(e.Type),
		s.norm.Message(e.FirstDescriptionLine()),
	}
	return strings.Join(parts, "|")
}

// Entries returns the unique entries in insertion order. The slice
// is owned by the session; callers must not mutate it.
func (s *Session) Entries() []extractor.Entry {
	return s.entries
}

// Skipped returns how many duplicate entries were dropped.
func (s *Session) Skipped() int {
	return s.skipped
}

// Normalizer returns the normalizer this session keys with.
func (s *Session) Normalizer() *normalize.Normalizer {
	return s.norm
}

// Reset clears the index, the accumulated entries and the counter.
func (s *Session) Reset() {
	s.seen = make(map[string]struct{})
	s.entries = nil
	s.skipped = 0
}
