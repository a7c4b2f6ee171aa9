package kb

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/sift-tools/logsift/internal/normalize"
)

// Column aliases accepted in the CSV header, first hit wins. Exports
// from older report versions used the display headings.
var (
	errorTextAliases = []string{"error_text", "type/source", "type"}
	causeAliases     = []string{"cause"}
	solutionAliases  = []string{"solution"}
	severityAliases  = []string{"severity"}
	categoryAliases  = []string{"category", "error category"}
)

// CSVStore is a knowledge base backed by a local CSV file. The file
// is read once at open time; lookups run against an in-memory index
// keyed by normalized error text.
type CSVStore struct {
	path    string
	entries []Entry
	byNorm  map[string][]Entry
}

// OpenCSV loads a CSV knowledge base. The normalizer must be the one
// used for live error texts, otherwise the normalized stage never
// matches. A nil normalizer selects the default.
func OpenCSV(path string, norm *normalize.Normalizer) (*CSVStore, error) {
	if norm == nil {
		norm = normalize.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base %s: %w", path, err)
	}
	if len(records) == 0 {
		return &CSVStore{path: path, byNorm: map[string][]Entry{}}, nil
	}

	header := records[0]
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}

	store := &CSVStore{
		path:   path,
		byNorm: make(map[string][]Entry),
	}

	for _, rec := range records[1:] {
		e := Entry{
			ErrorText: pick(rec, cols, errorTextAliases),
			Cause:     pick(rec, cols, causeAliases),
			Solution:  pick(rec, cols, solutionAliases),
			Severity:  pick(rec, cols, severityAliases),
			Category:  pick(rec, cols, categoryAliases),
		}
		if e.ErrorText == "" {
			continue
		}
		for name, idx := range cols {
			if isKnownColumn(name) || idx >= len(rec) || rec[idx] == "" {
				continue
			}
			if e.Extra == nil {
				e.Extra = make(map[string]string)
			}
			e.Extra[name] = rec[idx]
		}
		store.entries = append(store.entries, e)
		key := strings.ToLower(norm.Message(e.ErrorText))
		store.byNorm[key] = append(store.byNorm[key], e)
	}

	return store, nil
}

func pick(rec []string, cols map[string]int, aliases []string) string {
	for _, a := range aliases {
		if idx, ok := cols[a]; ok && idx < len(rec) {
			if v := strings.TrimSpace(rec[idx]); v != "" {
				return v
			}
		}
	}
	return ""
}

func isKnownColumn(name string) bool {
	for _, aliases := range [][]string{
		errorTextAliases, causeAliases, solutionAliases, severityAliases, categoryAliases,
	} {
		for _, a := range aliases {
			if name == a {
				return true
			}
		}
	}
	return false
}

// FindCandidates returns entries indexed under the normalized text.
func (s *CSVStore) FindCandidates(normalized string) ([]Entry, error) {
	return s.byNorm[strings.ToLower(normalized)], nil
}

// AllEntries returns every loaded entry.
func (s *CSVStore) AllEntries() ([]Entry, error) {
	return s.entries, nil
}

// Len reports how many entries the store holds.
func (s *CSVStore) Len() int {
	return len(s.entries)
}
