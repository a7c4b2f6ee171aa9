// Package kb defines the knowledge-base boundary: entries pairing a
// known error text with its cause and solution, and the store
// interface the matching engine queries. How entries are persisted is
// the store's business; the engine only sees the entry shape.
package kb

// Entry is one known error with its documented cause and solution.
// Fields beyond ErrorText are opaque passthrough data.
type Entry struct {
	ErrorText string `json:"error_text"`
	Cause     string `json:"cause,omitempty"`
	Solution  string `json:"solution,omitempty"`
	Severity  string `json:"severity,omitempty"`
	Category  string `json:"category,omitempty"`

	// Extra keeps columns the store carried that the engine has no
	// schema for.
	Extra map[string]string `json:"extra,omitempty"`
}

// Store is the query interface the matching engine consumes.
type Store interface {
	// FindCandidates returns entries whose normalized error text
	// equals the given normalized text. An empty result is normal.
	FindCandidates(normalized string) ([]Entry, error)

	// AllEntries returns every entry, for the broader fuzzy scan.
	AllEntries() ([]Entry, error)
}
