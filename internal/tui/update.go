package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wellsgz/perfreport/internal/report"
)

// DataMsg carries a fresh collection
type DataMsg struct {
	Input    report.Input
	LoadedAt time.Time
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampScroll()
		return m, nil

	case DataMsg:
		m.setInput(msg.Input, msg.LoadedAt)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.loading = true
		return m, loadCmd(m.source)
	}

	switch m.currentView {
	case ListView:
		return m.handleListViewKeys(msg)
	case DetailView:
		return m.handleDetailViewKeys(msg)
	case ReportView:
		return m.handleReportViewKeys(msg)
	}
	return m, nil
}

// handleListViewKeys handles keys in list view
func (m Model) handleListViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}

	case "down", "j":
		if m.selectedIdx < len(m.paths)-1 {
			m.selectedIdx++
		}

	case "home":
		m.selectedIdx = 0

	case "end":
		if len(m.paths) > 0 {
			m.selectedIdx = len(m.paths) - 1
		}

	case "enter", " ":
		if m.SelectedPath() != nil {
			m.currentView = DetailView
		}

	case "tab":
		m.currentView = ReportView
	}

	return m, nil
}

// handleDetailViewKeys handles keys in detail view
func (m Model) handleDetailViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.currentView = ListView

	case "up", "k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}

	case "down", "j":
		if m.selectedIdx < len(m.paths)-1 {
			m.selectedIdx++
		}

	case "tab":
		m.currentView = ReportView
	}

	return m, nil
}

// handleReportViewKeys handles keys in report view
func (m Model) handleReportViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "tab":
		m.currentView = ListView

	case "up", "k":
		m.scroll--

	case "down", "j":
		m.scroll++

	case "pgup", "b":
		m.scroll -= m.pageSize()

	case "pgdown", "f":
		m.scroll += m.pageSize()

	case "home", "g":
		m.scroll = 0

	case "end", "G":
		m.scroll = m.reportLines()
	}

	m.clampScroll()
	return m, nil
}

// loadCmd creates a command that collects fresh analyses
func loadCmd(source Source) tea.Cmd {
	return func() tea.Msg {
		return DataMsg{Input: source.Collect(), LoadedAt: time.Now()}
	}
}
