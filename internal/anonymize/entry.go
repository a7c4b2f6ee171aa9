package anonymize

import "github.com/sift-tools/logsift/internal/extractor"

// Entry returns a scrubbed copy of one extracted entry. The source id
// is treated as a filename; the type and description run through the
// full text pass.
func (a *Anonymizer) Entry(e extractor.Entry) extractor.Entry {
	out := e
	out.SourceID = a.Filename(e.SourceID)
	out.Type = a.Text(e.Type)
	out.Description = a.Text(e.Description)
	return out
}

// Entries scrubs a whole batch with one shared mapping.
func (a *Anonymizer) Entries(entries []extractor.Entry) []extractor.Entry {
	out := make([]extractor.Entry, len(entries))
	for i, e := range entries {
		out[i] = a.Entry(e)
	}
	return out
}
