package scanner

import (
	"archive/zip"
	"path/filepath"
	"strings"
)

// scanArchive treats a zip file as a flat list of virtual sources
// named "<archive>/<inner path>". A corrupt archive or member is
// reported and skipped, never fatal.
func (s *Scanner) scanArchive(path string) {
	s.report("opening archive: %s", filepath.Base(path))

	r, err := zip.OpenReader(path)
	if err != nil {
		s.failures++
		s.report("failed to open archive %s: %v", filepath.Base(path), err)
		return
	}
	defer r.Close()

	s.archiveCount++
	for _, member := range r.File {
		if member.FileInfo().IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(member.Name))
		if !s.hasExt(ext) {
			continue
		}

		sourceID := filepath.Base(path) + "/" + member.Name
		rc, err := member.Open()
		if err != nil {
			s.failures++
			s.report("failed to read %s: %v", sourceID, err)
			continue
		}
		lines, err := readLines(rc)
		rc.Close()
		if err != nil {
			s.failures++
			s.report("failed to read %s: %v", sourceID, err)
			continue
		}

		s.files++
		s.ingest(sourceID, lines)
	}
}
