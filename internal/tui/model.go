package tui

import (
	"time"

	"github.com/wellsgz/perfreport/internal/report"
	"github.com/wellsgz/perfreport/internal/stability"
)

// View represents the current view mode
type View int

const (
	ListView View = iota
	DetailView
	ReportView
)

// String returns a display name for the view
func (v View) String() string {
	switch v {
	case ListView:
		return "Paths"
	case DetailView:
		return "Path detail"
	case ReportView:
		return "Report"
	default:
		return "Unknown"
	}
}

// Source supplies the analyses the viewer displays
type Source interface {
	Collect() report.Input
}

// PathRow is one path of the stability analysis
type PathRow struct {
	Name     string
	Analysis *stability.PathAnalysis
}

// Model holds all application state
type Model struct {
	// View state
	currentView View
	selectedIdx int
	scroll      int

	// Data
	source     Source
	builder    report.Builder
	input      report.Input
	paths      []PathRow
	reportText string
	loadedAt   time.Time
	loading    bool

	// UI state
	width  int
	height int
	ready  bool
}

// NewModel creates a new Model reading from source
func NewModel(source Source) Model {
	return Model{
		currentView: ListView,
		source:      source,
		loading:     true,
	}
}

// WithBuilder replaces the report builder
func (m Model) WithBuilder(b report.Builder) Model {
	m.builder = b
	return m
}

// SelectedPath returns the currently selected path
func (m Model) SelectedPath() *PathRow {
	if m.selectedIdx >= 0 && m.selectedIdx < len(m.paths) {
		return &m.paths[m.selectedIdx]
	}
	return nil
}

// Interruptions returns the interruptions recorded for the named path
func (m Model) Interruptions(name string) []stability.Interruption {
	if m.input.Stability == nil {
		return nil
	}
	var result []stability.Interruption
	for _, i := range m.input.Stability.Interruptions {
		if i.Path == name {
			result = append(result, i)
		}
	}
	return result
}

// setInput replaces the displayed data, keeping the selection in range
func (m *Model) setInput(in report.Input, loadedAt time.Time) {
	m.input = in
	m.loadedAt = loadedAt
	m.loading = false
	m.reportText = m.builder.Build(in)

	m.paths = nil
	if in.Stability != nil && in.Stability.PathsAnalysis != nil {
		for name, analysis := range in.Stability.PathsAnalysis.All() {
			m.paths = append(m.paths, PathRow{Name: name, Analysis: analysis})
		}
	}

	if m.selectedIdx >= len(m.paths) {
		m.selectedIdx = len(m.paths) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
	if len(m.paths) == 0 && m.currentView == DetailView {
		m.currentView = ListView
	}
	m.clampScroll()
}

// reportLines returns the number of lines in the report
func (m Model) reportLines() int {
	if m.reportText == "" {
		return 0
	}
	n := 1
	for _, r := range m.reportText {
		if r == '\n' {
			n++
		}
	}
	return n
}

// pageSize is the number of report lines visible at once
func (m Model) pageSize() int {
	// header, summary bar, blank line, help
	size := m.height - 5
	if size < 1 {
		size = 1
	}
	return size
}

func (m *Model) clampScroll() {
	maxScroll := m.reportLines() - m.pageSize()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
