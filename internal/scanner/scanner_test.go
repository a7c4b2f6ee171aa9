package scanner

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sift-tools/logsift/internal/extractor"
	"github.com/sift-tools/logsift/internal/progress"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// Split copies of one logical log plus one unrelated log carrying the
// same message shapes. The split pair collapses to one entry per
// shape; the unrelated log keeps its own pair because its source id
// normalizes differently.
func TestScanDirSplitLogScenario(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "util-1.log",
		"Sat 04.Oct.  14:08:41.323 ERROR The file handle supplied is not valid.\n"+
			"Sat 04.Oct.  14:08:42.100 ERROR display sync timed out (192.168.210.6 / Output 1)\n")
	writeFile(t, dir, "util-2.log",
		"Sat 04.Oct.  14:09:10.500 ERROR The file handle supplied is not valid.\n"+
			"Sat 04.Oct.  14:09:11.600 ERROR display sync timed out (10.1.20.88 / Output 1)\n")
	writeFile(t, dir, "playback.log",
		"Sat 11.Oct.  08:59:58.100 ERROR The file handle supplied is not valid.\n"+
			"Sat 11.Oct.  08:59:59.200 ERROR display sync timed out (192.168.210.9 / Output 1)\n")

	s := New(nil)
	if err := s.ScanDir(dir); err != nil {
		t.Fatal(err)
	}

	res := s.Result()
	if len(res.Entries) != 4 {
		for _, e := range res.Entries {
			t.Logf("entry: %s | %s", e.SourceID, e.Type)
		}
		t.Fatalf("want 4 unique entries, got %d", len(res.Entries))
	}
	if res.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", res.Skipped)
	}
	if res.Files != 3 {
		t.Errorf("files = %d, want 3", res.Files)
	}
}

func TestScanDirCumulativeAcrossCalls(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	line := "Sat 04.Oct.  14:08:41.323 ERROR The file handle supplied is not valid.\n"
	writeFile(t, dirA, "util.log", line)
	writeFile(t, dirB, "util.log", line)

	s := New(nil)
	if err := s.ScanDir(dirA); err != nil {
		t.Fatal(err)
	}
	if err := s.ScanDir(dirB); err != nil {
		t.Fatal(err)
	}

	res := s.Result()
	if len(res.Entries) != 1 {
		t.Errorf("dedup must span directories: got %d entries", len(res.Entries))
	}
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Skipped)
	}
}

func TestScanDirMissingRoot(t *testing.T) {
	s := New(nil)
	if err := s.ScanDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("nonexistent root must fail immediately")
	}
}

func TestScanDirSkipsNoiseAndEmptyResult(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.log",
		"04.10.2025 14:08:41 I AllGood\nfree-form noise line\n")
	writeFile(t, dir, "notes.md", "ERROR not a log file\n")

	s := New(nil)
	if err := s.ScanDir(dir); err != nil {
		t.Fatal(err)
	}
	// Zero extracted entries is a valid terminal state.
	if res := s.Result(); len(res.Entries) != 0 || res.Files != 1 {
		t.Errorf("got %+v", res)
	}
}

func TestScanArchive(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "bundle.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	inner, err := w.Create("logs/render-4411.log")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := inner.Write([]byte("Sat 04.Oct.  14:08:41.323 ERROR encoding frame failed: software scaling failed\n")); err != nil {
		t.Fatal(err)
	}
	skip, err := w.Create("readme.md")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := skip.Write([]byte("not a log\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s := New(nil)
	if err := s.ScanDir(dir); err != nil {
		t.Fatal(err)
	}

	res := s.Result()
	if res.Archives != 1 || len(res.Entries) != 1 {
		t.Fatalf("got %+v", res)
	}
	if want := "bundle.zip/logs/render-4411.log"; res.Entries[0].SourceID != want {
		t.Errorf("source id = %q, want %q", res.Entries[0].SourceID, want)
	}
}

func TestScanArchiveCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.zip", "this is not a zip archive")
	writeFile(t, dir, "good.log",
		"Sat 04.Oct.  14:08:41.323 ERROR The file handle supplied is not valid.\n")

	var messages []string
	s := New(nil, WithSink(progress.Func(func(m string) { messages = append(messages, m) })))
	if err := s.ScanDir(dir); err != nil {
		t.Fatalf("corrupt archive must not abort the scan: %v", err)
	}

	res := s.Result()
	if res.Failures != 1 || len(res.Entries) != 1 {
		t.Errorf("got %+v", res)
	}
	found := false
	for _, m := range messages {
		if strings.Contains(m, "broken.zip") {
			found = true
		}
	}
	if !found {
		t.Error("failure must be reported through the progress sink")
	}
}

func TestScanCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.log", "Sat 04.Oct.  14:08:41.323 ERROR first\n")
	writeFile(t, dir, "b.log", "Sat 04.Oct.  14:08:41.323 ERROR second\n")

	cancel := &Cancel{}
	cancel.Stop()

	s := New(nil, WithCancel(cancel))
	if err := s.ScanDir(dir); err != nil {
		t.Fatal(err)
	}
	if res := s.Result(); res.Files != 0 {
		t.Errorf("cancelled scan processed %d files", res.Files)
	}
}

func TestScanFilterOption(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.log",
		"04.10.2025 14:08:41 E SomeError\n04.10.2025 14:08:42 W SomeWarning\n")

	s := New(nil, WithFilter(extractor.NewFilter("E")))
	if err := s.ScanDir(dir); err != nil {
		t.Fatal(err)
	}
	res := s.Result()
	if len(res.Entries) != 1 || res.Entries[0].Type != "SomeError" {
		t.Errorf("got %+v", res.Entries)
	}
}
