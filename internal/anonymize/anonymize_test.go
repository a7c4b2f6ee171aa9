package anonymize

import (
	"strings"
	"testing"

	"github.com/sift-tools/logsift/internal/extractor"
)

func TestIPConsistency(t *testing.T) {
	a := New()
	first := a.IP("192.168.210.6")
	second := a.IP("192.168.210.7")
	if first != "10.0.0.1" || second != "10.0.0.2" {
		t.Errorf("got %q, %q", first, second)
	}
	if again := a.IP("192.168.210.6"); again != first {
		t.Errorf("same input must map to same output: %q vs %q", again, first)
	}
}

func TestFilenameKeepsExtension(t *testing.T) {
	a := New()
	if got := a.Filename("show_intro_0001.mov"); got != "file_1.mov" {
		t.Errorf("got %q", got)
	}
	if got := a.Filename("render-27110.log"); got != "file_2.log" {
		t.Errorf("got %q", got)
	}
	if got := a.Filename("show_intro_0001.mov"); got != "file_1.mov" {
		t.Errorf("repeat lookup got %q", got)
	}
}

func TestTextScrubsIPs(t *testing.T) {
	a := New()
	got := a.Text("display sync timed out (192.168.210.6 / Output 1)")
	want := "display sync timed out (10.0.0.1 / Output 1)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	// A second message with the same address reuses the mapping.
	got = a.Text("ping to 192.168.210.6 lost")
	if !strings.Contains(got, "10.0.0.1") {
		t.Errorf("got %q", got)
	}
}

func TestTextScrubsUNCShares(t *testing.T) {
	a := New()
	got := a.Text(`authenticating with \\mediaserver01\assets failed`)
	if got != `authenticating with \\server_1\share failed` {
		t.Errorf("got %q", got)
	}

	got = a.Text(`authenticating with \\192.168.200.5\assets failed`)
	if got != `authenticating with \\10.0.0.1\share failed` {
		t.Errorf("ip server got %q", got)
	}
}

func TestTextSimplifiesPaths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"windows content", `File C:/Content/Show1/intro.mov not found`, "File Content/.../*.mov not found"},
		{"windows no file", `scanning D:\Projects\demo failed`, "scanning Projects/... failed"},
		{"unix logs", "open /var/log/render/current.log failed", "open Logs/.../*.log failed"},
		{"short unix path kept", "read /tmp/a failed", "read /tmp/a failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New().Text(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntryAndStats(t *testing.T) {
	a := New()
	e := extractor.Entry{
		SourceID:    "util-27110.log",
		Severity:    "ERROR",
		Type:        "display sync timed out (192.168.210.6 / Output 1)",
		Description: "display sync timed out (192.168.210.6 / Output 1)",
	}
	got := a.Entry(e)
	if got.SourceID != "file_1.log" {
		t.Errorf("source id = %q", got.SourceID)
	}
	if strings.Contains(got.Type, "192.168") || strings.Contains(got.Description, "192.168") {
		t.Errorf("address leaked: %+v", got)
	}
	if got.Severity != "ERROR" {
		t.Errorf("severity must survive: %q", got.Severity)
	}
	if e.Type == got.Type {
		t.Error("input entry expected to differ from scrubbed copy")
	}

	stats := a.Stats()
	if stats.IPs != 1 || stats.Filenames != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
