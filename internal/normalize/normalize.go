package normalize

import (
	"regexp"
	"strings"
)

var (
	countPrefixRe = regexp.MustCompile(`(?i)^\d+\s*x\s+`)
	similarToRe   = regexp.MustCompile(`(?i)^similar to\s+['"](.*)['"]$`)
	withMatrixRe  = regexp.MustCompile(`\s+with matrix\b.*$`)
	usageNameRe   = regexp.MustCompile(`(current usage ).+?( to computer)`)
)

// Normalizer turns raw log messages into canonical strings used as
// deduplication and match keys. The zero value is not usable; use
// New. A Normalizer is safe for concurrent reads once constructed.
type Normalizer struct {
	shapes []ShapePattern
}

// New creates a Normalizer with the built-in shape-pattern library
// plus any extra patterns, ordered by priority.
func New(extra ...ShapePattern) *Normalizer {
	return &Normalizer{shapes: mergePatterns(extra)}
}

var defaultNormalizer = New()

// Default returns the shared Normalizer with the built-in patterns.
func Default() *Normalizer {
	return defaultNormalizer
}

// Message applies the full normalization pipeline with the default
// pattern library.
func Message(text string) string {
	return defaultNormalizer.Message(text)
}

// Message normalizes a raw message. The stages run in a fixed order:
// count-prefix stripping, "similar to" unwrapping, quote stripping,
// shape patterns, generic token substitution, message cleanups.
// Later stages operate on the output of earlier ones, so reordering
// changes results.
func (n *Normalizer) Message(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return s
	}

	// Repeat counters like "17x " and the "Nx similar to '...'"
	// wrapper collapse to the inner message so counted and plain
	// occurrences share one key.
	s = countPrefixRe.ReplaceAllString(s, "")
	if m := similarToRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = stripQuotes(s)

	s = n.applyShapes(s)
	s = Generalize(s)
	return applyCleanups(s)
}

// applyShapes rewrites the message with the first matching shape
// pattern. A miss is not an error; the generic token rules still run.
func (n *Normalizer) applyShapes(s string) string {
	for i := range n.shapes {
		p := &n.shapes[i]
		if p.Matcher.MatchString(s) {
			return p.Matcher.ReplaceAllString(s, p.Rewrite)
		}
	}
	return s
}

// stripQuotes removes one layer of surrounding matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// applyCleanups holds the message-specific fixups that run after
// token substitution.
func applyCleanups(s string) string {
	s = withMatrixRe.ReplaceAllString(s, "")
	s = usageNameRe.ReplaceAllString(s, "${1}<NAME>${2}")
	s = collapseRepeatedClauses(s)

	// "Pending steps timed out" drags a per-run timing trailer along.
	if strings.HasPrefix(s, "Pending steps timed out") {
		if idx := strings.Index(s, "side A time:"); idx >= 0 {
			s = strings.TrimRight(s[:idx], " ,;(")
		}
	}
	return s
}

// collapseRepeatedClauses reduces a ";"-joined run of identical
// clauses to a single instance.
func collapseRepeatedClauses(s string) string {
	if !strings.Contains(s, ";") {
		return s
	}
	parts := strings.Split(s, ";")
	first := strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) != first {
			return s
		}
	}
	return first
}
