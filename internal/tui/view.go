package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wellsgz/perfreport/internal/report"
	"github.com/wellsgz/perfreport/internal/stability"
	"github.com/wellsgz/perfreport/internal/tui/components"
)

// View renders the current view
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSummaryBar())
	b.WriteString("\n\n")

	switch m.currentView {
	case DetailView:
		b.WriteString(m.renderDetailView())
	case ReportView:
		b.WriteString(m.renderReportView())
	default:
		b.WriteString(m.renderListView())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderHeader renders the application header
func (m Model) renderHeader() string {
	title := TitleStyle.Render(" perfreport ")
	subtitle := SubtitleStyle.Render("Streaming Performance Report · " + m.currentView.String())

	status := "Loading..."
	if !m.loading {
		status = "Loaded " + m.loadedAt.Format("15:04:05")
	}
	right := LabelStyle.Render(status)

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", subtitle)
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if spacing < 1 {
		spacing = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", spacing), right)
}

// renderSummaryBar renders the scores and the overall status
func (m Model) renderSummaryBar() string {
	var parts []string

	if s := m.input.Stability; s != nil {
		parts = append(parts, LabelStyle.Render("Stability ")+FormatStability(s.StabilityScore))
	}
	if n := m.input.Network; n != nil {
		parts = append(parts, LabelStyle.Render("Failures ")+fmt.Sprintf("%d", n.FailedOperations))
		if n.HasLatency() {
			parts = append(parts, LabelStyle.Render("Latency ")+FormatLatency(*n.AvgLatency))
		}
	}

	if summary, ok := report.Summarize(m.input); ok {
		tier := report.StatusTier(summary.OverallScore)
		parts = append(parts,
			LabelStyle.Render("Overall ")+FormatScore(summary.OverallScore),
			LevelStyle(tier.Level).Render(tier.Icon+" "+tier.Message))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(ColorWarning).Render(report.InsufficientData))
	}

	return " " + strings.Join(parts, "   ")
}

// renderListView renders the per-path table
func (m Model) renderListView() string {
	if len(m.paths) == 0 {
		return m.renderNoPaths()
	}

	columns := components.PathColumns(m.width)
	table := components.NewTable(columns)

	rows := []string{table.RenderHeader(), table.RenderSeparator()}
	for i, path := range m.paths {
		rows = append(rows, table.RenderRow(m.pathRow(path, columns), i == m.selectedIdx))
	}
	return strings.Join(rows, "\n")
}

// pathRow renders the cells of a single path
func (m Model) pathRow(path PathRow, columns []components.Column) []string {
	a := path.Analysis
	return []string{
		components.Truncate(path.Name, columns[0].Width),
		FormatStability(a.StabilityPercentage),
		FormatBytes(a.AvgBytes),
		FormatBytes(float64(a.MaxBytes)),
		fmt.Sprintf("%d", a.Samples),
		components.Sparkline(a.BytesHistory, columns[5].Width),
	}
}

// renderNoPaths explains why there is nothing to list
func (m Model) renderNoPaths() string {
	switch {
	case m.loading:
		return LabelStyle.Render(" Collecting analyses...")
	case !m.input.Sources.HasStability():
		return LabelStyle.Render(" No metrics file found.")
	case m.input.Stability == nil:
		return LabelStyle.Render(" Metrics file " + m.input.Sources.StabilityFile + " could not be analyzed.")
	default:
		return LabelStyle.Render(" No paths were observed in " + m.input.Sources.StabilityFile + ".")
	}
}

// renderDetailView renders the selected path
func (m Model) renderDetailView() string {
	path := m.SelectedPath()
	if path == nil {
		return "No path selected"
	}
	a := path.Analysis

	var b strings.Builder
	b.WriteString(SectionStyle.Render(" " + path.Name))
	b.WriteString("\n\n")

	stat := func(label, value string) {
		b.WriteString(" ")
		b.WriteString(components.Pad(LabelStyle.Render(label), 16, lipgloss.Left))
		b.WriteString(value)
		b.WriteString("\n")
	}
	stat("Stability", FormatStability(a.StabilityPercentage)+"  "+components.Bar(a.StabilityPercentage, 30))
	stat("Ready samples", fmt.Sprintf("%d / %d", a.ReadySamples, a.Samples))
	stat("Average bytes", FormatBytes(a.AvgBytes))
	stat("Max bytes", FormatBytes(float64(a.MaxBytes)))

	config := components.DefaultGraphConfig()
	if m.width > 0 && m.width-4 < config.Width {
		config.Width = m.width - 4
	}
	b.WriteString("\n")
	b.WriteString(SectionStyle.Render(" Bytes received"))
	b.WriteString("\n")
	b.WriteString(components.Graph(graphPoints(a), config))
	b.WriteString("\n\n")

	interruptions := m.Interruptions(path.Name)
	b.WriteString(SectionStyle.Render(fmt.Sprintf(" Interruptions (%d)", len(interruptions))))
	b.WriteString("\n")
	for i, interruption := range interruptions {
		if i == 10 {
			b.WriteString(LabelStyle.Render(fmt.Sprintf("   … %d more", len(interruptions)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString("   " + interruption.Timestamp + "\n")
	}
	return b.String()
}

// graphPoints pairs each byte count with its sample time and ready flag
func graphPoints(a *stability.PathAnalysis) []components.GraphPoint {
	points := make([]components.GraphPoint, len(a.BytesHistory))
	for i, received := range a.BytesHistory {
		points[i].Value = float64(received)
		if i < len(a.SampleTimes) {
			points[i].Label = clockLabel(a.SampleTimes[i])
		}
		if i < len(a.ReadyHistory) {
			points[i].Gap = !a.ReadyHistory[i]
		}
	}
	return points
}

// clockLabel shortens a sample timestamp to its time of day
func clockLabel(raw string) string {
	t, err := stability.ParseTimestamp(raw)
	if err != nil {
		return raw
	}
	return t.Format("15:04:05")
}

// renderReportView renders the visible window of the text report
func (m Model) renderReportView() string {
	if m.reportText == "" {
		return LabelStyle.Render(" Collecting analyses...")
	}

	lines := strings.Split(m.reportText, "\n")
	end := m.scroll + m.pageSize()
	if end > len(lines) {
		end = len(lines)
	}
	return StyleReport(strings.Join(lines[m.scroll:end], "\n"))
}

// renderHelp renders the key bindings of the current view
func (m Model) renderHelp() string {
	var keys [][2]string
	switch m.currentView {
	case DetailView:
		keys = [][2]string{{"↑/↓", "path"}, {"esc", "back"}, {"tab", "report"}, {"r", "reload"}, {"q", "quit"}}
	case ReportView:
		keys = [][2]string{{"↑/↓", "scroll"}, {"pgup/pgdn", "page"}, {"tab", "paths"}, {"r", "reload"}, {"q", "quit"}}
	default:
		keys = [][2]string{{"↑/↓", "select"}, {"enter", "detail"}, {"tab", "report"}, {"r", "reload"}, {"q", "quit"}}
	}

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, HelpKeyStyle.Render(k[0])+" "+k[1])
	}
	return HelpStyle.Render(strings.Join(parts, "  "))
}
