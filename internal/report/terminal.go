package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// terminalFormatter renders a report for interactive terminals.
type terminalFormatter struct {
	header   lipgloss.Style
	category lipgloss.Style
	source   lipgloss.Style
	severity map[string]lipgloss.Style
	plain    lipgloss.Style
	muted    lipgloss.Style
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	f := &terminalFormatter{
		header:   lipgloss.NewStyle(),
		category: lipgloss.NewStyle(),
		source:   lipgloss.NewStyle(),
		plain:    lipgloss.NewStyle(),
		muted:    lipgloss.NewStyle(),
		severity: map[string]lipgloss.Style{},
	}
	if color {
		f.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		f.category = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		f.source = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		f.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		f.severity = map[string]lipgloss.Style{
			"ERROR":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			"FATAL":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			"CRITICAL": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			"WARNING":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		}
	}
	return f
}

func (f *terminalFormatter) Format(rep *Report) ([]byte, error) {
	var b strings.Builder

	f.writeSummary(&b, rep)
	f.writeCategories(&b, rep)
	f.writeEntries(&b, rep)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, rep *Report) {
	b.WriteString(f.header.Render("Scan Summary") + "\n")
	fmt.Fprintf(b, "├─ Unique errors:     %d\n", len(rep.Rows))
	fmt.Fprintf(b, "├─ Duplicates folded: %d\n", rep.Skipped)
	fmt.Fprintf(b, "├─ Files scanned:     %d\n", rep.Files)
	if rep.Archives > 0 {
		fmt.Fprintf(b, "├─ Archives scanned:  %d\n", rep.Archives)
	}
	fmt.Fprintf(b, "└─ Failures:          %d\n\n", rep.Failures)
}

func (f *terminalFormatter) writeCategories(b *strings.Builder, rep *Report) {
	if len(rep.Rows) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, row := range rep.Rows {
		counts[row.Category]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	b.WriteString(f.header.Render("Errors by Category") + "\n")
	for i, name := range names {
		branch := "├─"
		if i == len(names)-1 {
			branch = "└─"
		}
		fmt.Fprintf(b, "%s %s (%d)\n", branch, f.category.Render(name), counts[name])
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeEntries(b *strings.Builder, rep *Report) {
	if len(rep.Rows) == 0 {
		b.WriteString("No errors found.\n")
		return
	}

	b.WriteString(f.header.Render("Unique Errors") + "\n")
	for _, row := range rep.Rows {
		sev := row.Entry.Severity
		if style, ok := f.severity[strings.ToUpper(sev)]; ok {
			sev = style.Render(sev)
		}
		fmt.Fprintf(b, "%s %s %s\n",
			f.source.Render(row.Entry.SourceID), sev, row.Entry.Type)
		if desc := row.Entry.Description; desc != "" && desc != row.Entry.Type {
			for _, line := range strings.Split(desc, "\n") {
				b.WriteString("    " + f.muted.Render(line) + "\n")
			}
		}
		if row.Match != nil {
			fmt.Fprintf(b, "    cause: %s\n", row.Match.Cause)
			fmt.Fprintf(b, "    solution: %s\n", row.Match.Solution)
		}
	}
}
