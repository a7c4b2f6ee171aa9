// Package match maps live error texts onto knowledge-base entries
// with a three-stage strategy: exact equality, equality after
// normalization, then fuzzy similarity. The same errors repeat
// heavily across a log corpus, so normalization, similarity and full
// match results are memoized in bounded LRU caches.
package match

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sift-tools/logsift/internal/kb"
	"github.com/sift-tools/logsift/internal/normalize"
)

// DefaultThreshold is the minimum similarity the fuzzy stage accepts.
const DefaultThreshold = 0.85

// DefaultCacheSize bounds each memoization cache.
const DefaultCacheSize = 256

// Type tells which stage produced a match.
type Type string

const (
	TypeExact      Type = "exact"
	TypeNormalized Type = "normalized"
	TypeFuzzy      Type = "fuzzy"
)

// Result is one successful lookup. Similarity is 1.0 for the exact
// and normalized stages.
type Result struct {
	Type       Type     `json:"match_type"`
	Similarity float64  `json:"similarity"`
	Entry      kb.Entry `json:"entry"`
}

// Matcher runs staged lookups against an injected store. Not safe
// for concurrent use.
type Matcher struct {
	store     kb.Store
	norm      *normalize.Normalizer
	threshold float64

	cacheSize int

	normCache   *lru.Cache[string, string]
	simCache    *lru.Cache[string, float64]
	resultCache *lru.Cache[string, cachedResult]
}

type cachedResult struct {
	res *Result
	ok  bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the fuzzy acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) { m.threshold = threshold }
}

// WithNormalizer selects the normalizer shared with the rest of the
// pipeline.
func WithNormalizer(norm *normalize.Normalizer) Option {
	return func(m *Matcher) { m.norm = norm }
}

// WithCacheSize bounds the memoization caches. Non-positive values
// keep the default.
func WithCacheSize(size int) Option {
	return func(m *Matcher) {
		if size > 0 {
			m.cacheSize = size
		}
	}
}

// New creates a Matcher over the given store.
func New(store kb.Store, opts ...Option) *Matcher {
	m := &Matcher{
		store:     store,
		norm:      normalize.Default(),
		threshold: DefaultThreshold,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(m)
	}

	// Sizes are always positive here, lru.New cannot fail.
	m.normCache, _ = lru.New[string, string](m.cacheSize)
	m.simCache, _ = lru.New[string, float64](m.cacheSize)
	m.resultCache, _ = lru.New[string, cachedResult](m.cacheSize)
	return m
}

// Match finds the best knowledge-base entry for an error text, or
// reports false when nothing clears any stage. No match is a normal
// outcome, not an error.
func (m *Matcher) Match(errorText string) (*Result, bool, error) {
	errorText = strings.TrimSpace(errorText)
	if errorText == "" {
		return nil, false, nil
	}

	if cached, ok := m.resultCache.Get(errorText); ok {
		return cached.res, cached.ok, nil
	}

	candidates, err := m.candidates(errorText)
	if err != nil {
		return nil, false, err
	}

	res, ok := m.matchAgainst(errorText, candidates)
	m.resultCache.Add(errorText, cachedResult{res: res, ok: ok})
	return res, ok, nil
}

// candidates asks the store for entries indexed under the normalized
// text and widens to a full scan when the index comes back empty.
func (m *Matcher) candidates(errorText string) ([]kb.Entry, error) {
	found, err := m.store.FindCandidates(m.normalized(errorText))
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		return found, nil
	}
	return m.store.AllEntries()
}

// matchAgainst applies the three stages in order; the first two stop
// at the first hit, the fuzzy stage scans every candidate for the
// best score.
func (m *Matcher) matchAgainst(errorText string, candidates []kb.Entry) (*Result, bool) {
	for _, e := range candidates {
		if matchExact(errorText, e.ErrorText) {
			return &Result{Type: TypeExact, Similarity: 1.0, Entry: e}, true
		}
	}

	normText := m.normalized(errorText)
	for _, e := range candidates {
		if strings.EqualFold(normText, m.normalized(e.ErrorText)) {
			return &Result{Type: TypeNormalized, Similarity: 1.0, Entry: e}, true
		}
	}

	var best *Result
	for _, e := range candidates {
		sim := m.similarity(normText, m.normalized(e.ErrorText))
		if sim < m.threshold {
			continue
		}
		if best == nil || sim > best.Similarity {
			best = &Result{Type: TypeFuzzy, Similarity: sim, Entry: e}
		}
	}
	return best, best != nil
}

// matchExact is a case-insensitive, whitespace-trimmed equality test.
func matchExact(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// normalized memoizes the normalization pipeline per distinct text.
func (m *Matcher) normalized(text string) string {
	if v, ok := m.normCache.Get(text); ok {
		return v
	}
	v := m.norm.Message(text)
	m.normCache.Add(text, v)
	return v
}

// similarity memoizes the ratio per distinct text pair.
func (m *Matcher) similarity(a, b string) float64 {
	key := a + "\x00" + b
	if v, ok := m.simCache.Get(key); ok {
		return v
	}
	v := Ratio(a, b)
	m.simCache.Add(key, v)
	return v
}
