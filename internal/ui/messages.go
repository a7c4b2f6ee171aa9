package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sift-tools/logsift/internal/scanner"
)

// Common message types shared across UI models
type progressMsg string

type scanCompleteMsg struct {
	result *scanner.Result
	err    error
}

type tickMsg time.Time

// waitForProgress relays one progress line from the scan goroutine.
func waitForProgress(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(line)
	}
}

// waitForOutcome blocks until the scan goroutine finishes.
func waitForOutcome(ch <-chan scanCompleteMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
