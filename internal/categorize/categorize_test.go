package categorize

import (
	"strings"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name    string
		errType string
		message string
		want    string
	}{
		{"connection closed", "", "An existing connection was forcibly closed by the remote host", Network},
		{"network path", "", "The network path was not found.", Network},
		{"unc share", "", `authenticating with \\192.168.210.3\media failed`, Network},
		{"timeout network first", "", "connection timeout while waiting for peer", Network},
		{"file not found", "", "File 'C:/Shows/intro.mov' not found", File},
		{"transfer failed", "TransferError", "transferring file failed", File},
		{"file handle", "", "The file handle supplied is not valid.", File},
		{"io aborted", "", "The I/O operation has been aborted because of either a thread exit or an application request.", System},
		{"access denied mixed", "", "access denied for user", Authentication},
		{"encode frame", "", "encoding frame failed: software scaling failed", Media},
		{"decode", "", "decoding failed: Invalid data found when processing input", Media},
		{"module load", "", "loading module 'libGL.so' failed", Module},
		{"dll", "", "required dll not found", Module},
		{"time change", "", "system time changed by -3600 seconds", Timing},
		{"no match", "", "something entirely different happened", Other},
		{"signal in type only", "NetworkError", "it broke", Network},
		{"empty", "", "", Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.errType, tt.message); got != tt.want {
				t.Errorf("Categorize(%q, %q) = %q, want %q", tt.errType, tt.message, got, tt.want)
			}
		})
	}
}

func TestShortType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cut at colon", "encoding frame failed: software scaling failed", "encoding frame failed"},
		{"count prefix stripped", "7x Transferring file failed", "Transferring file failed"},
		{"similar prefix stripped", "similar to Transferring file failed", "Transferring file failed"},
		{"short passthrough", "file handle invalid", "file handle invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortType(tt.in); got != tt.want {
				t.Errorf("ShortType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestShortTypeTruncation(t *testing.T) {
	// A colon-free description is cut to the 50-char cap outright.
	long := strings.Repeat("a", 80)
	got := ShortType(long)
	if len(got) != 50 || got != strings.Repeat("a", 50) {
		t.Errorf("ShortType(long) = %q (len %d)", got, len(got))
	}

	// The ellipsis applies when the colon cut still leaves an
	// over-long label.
	labeled := strings.Repeat("b", 60) + ": detail"
	got = ShortType(labeled)
	if len(got) != 50 || !strings.HasSuffix(got, "...") {
		t.Errorf("ShortType(labeled) = %q (len %d)", got, len(got))
	}
}
