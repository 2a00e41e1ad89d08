package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wellsgz/perfreport/internal/logging"
)

// Init starts the first collection
func (m Model) Init() tea.Cmd {
	return loadCmd(m.source)
}

// Run starts the viewer and blocks until the user quits.
// While the alternate screen is active log output goes to logOutput,
// or nowhere when logOutput is nil.
func Run(source Source, logOutput io.Writer) error {
	restore := redirectLogs(logOutput)
	defer restore()

	p := tea.NewProgram(
		NewModel(source),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func redirectLogs(w io.Writer) (restore func()) {
	if w == nil {
		w = io.Discard
	}
	return logging.Redirect(w)
}
