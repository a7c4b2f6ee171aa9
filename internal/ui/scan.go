// Package ui renders live scan progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sift-tools/logsift/internal/progress"
	"github.com/sift-tools/logsift/internal/scanner"
)

const recentLines = 8

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ScanModel shows a spinner plus the most recent scan events while a
// scan runs in the background.
type ScanModel struct {
	width  int
	height int

	progressCh <-chan string
	outcomeCh  <-chan scanCompleteMsg
	cancel     *scanner.Cancel

	recent       []string
	found        int
	spinnerFrame int
	cancelling   bool
	done         bool

	result *scanner.Result
	err    error
}

func newScanModel(progressCh <-chan string, outcomeCh <-chan scanCompleteMsg, cancel *scanner.Cancel) *ScanModel {
	return &ScanModel{
		progressCh: progressCh,
		outcomeCh:  outcomeCh,
		cancel:     cancel,
	}
}

// Init initializes the scan model
func (m *ScanModel) Init() tea.Cmd {
	return tea.Batch(
		waitForProgress(m.progressCh),
		waitForOutcome(m.outcomeCh),
		tick(),
	)
}

// Update handles messages
func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// The scan notices the flag between files; wait for the
			// outcome instead of quitting immediately.
			m.cancelling = true
			m.cancel.Stop()
		}

	case progressMsg:
		line := string(msg)
		if strings.HasPrefix(line, "found ") {
			m.found++
		}
		m.recent = append(m.recent, line)
		if len(m.recent) > recentLines {
			m.recent = m.recent[len(m.recent)-recentLines:]
		}
		return m, waitForProgress(m.progressCh)

	case scanCompleteMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
		return m, tick()
	}

	return m, nil
}

// View renders the scan model
func (m *ScanModel) View() string {
	if m.done {
		return ""
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	status := "Scanning logs"
	if m.cancelling {
		status = "Cancelling"
	}
	fmt.Fprintf(&b, "%s %s\n\n", spinnerChars[m.spinnerFrame], header.Render(status))
	fmt.Fprintf(&b, "unique errors so far: %d\n\n", m.found)

	for _, line := range m.recent {
		b.WriteString(muted.Render(line) + "\n")
	}
	b.WriteString("\nPress 'q' to stop\n")
	return b.String()
}

// Run drives a scan under the progress TUI and returns its result.
// The scan function receives a sink wired to the display.
func Run(scan func(progress.Sink) (*scanner.Result, error), cancel *scanner.Cancel) (*scanner.Result, error) {
	progressCh := make(chan string, 64)
	outcomeCh := make(chan scanCompleteMsg, 1)

	go func() {
		res, err := scan(progress.Func(func(line string) {
			progressCh <- line
		}))
		close(progressCh)
		outcomeCh <- scanCompleteMsg{result: res, err: err}
	}()

	model := newScanModel(progressCh, outcomeCh, cancel)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display failed: %w", err)
	}

	m, ok := final.(*ScanModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return m.result, m.err
}
