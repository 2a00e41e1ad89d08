package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table renders a simple table
type Table struct {
	Columns       []Column
	HeaderStyle   lipgloss.Style
	RowStyle      lipgloss.Style
	SelectedStyle lipgloss.Style
}

// NewTable creates a new table with the given columns
func NewTable(columns []Column) *Table {
	return &Table{
		Columns: columns,
		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#06B6D4")).
			Padding(0, 1),
		RowStyle: lipgloss.NewStyle().
			Padding(0, 1),
		SelectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(lipgloss.Color("#F9FAFB")).
			Padding(0, 1),
	}
}

// RenderHeader renders the table header
func (t *Table) RenderHeader() string {
	cells := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		cells = append(cells, t.HeaderStyle.Render(Pad(col.Title, col.Width, col.Align)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RenderRow renders a single row; missing values render as blank cells
func (t *Table) RenderRow(values []string, selected bool) string {
	style := t.RowStyle
	if selected {
		style = t.SelectedStyle
	}

	cells := make([]string, 0, len(t.Columns))
	for i, col := range t.Columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cells = append(cells, style.Render(Pad(value, col.Width, col.Align)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RenderSeparator renders a separator line
func (t *Table) RenderSeparator() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Render(strings.Repeat("─", t.Width()))
}

// Width returns the rendered width including cell padding
func (t *Table) Width() int {
	total := 0
	for _, col := range t.Columns {
		total += col.Width + 2
	}
	return total
}

// Pad aligns value within width visible cells. Values already at least
// width wide, ANSI codes excluded, are returned unchanged.
func Pad(value string, width int, align lipgloss.Position) string {
	visible := lipgloss.Width(value)
	if visible >= width {
		return value
	}

	padding := width - visible
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", padding) + value
	case lipgloss.Center:
		left := padding / 2
		return strings.Repeat(" ", left) + value + strings.Repeat(" ", padding-left)
	default:
		return value + strings.Repeat(" ", padding)
	}
}

// Truncate shortens value to width visible cells with an ellipsis
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}

// PathColumns returns the path list columns adapted to the terminal width
func PathColumns(width int) []Column {
	const (
		minPath      = 12
		maxPath      = 24
		minSparkline = 10
	)

	stabilityWidth := 10
	avgWidth := 12
	maxWidth := 12
	samplesWidth := 8

	fixed := stabilityWidth + avgWidth + maxWidth + samplesWidth + 12 // cell padding
	remaining := width - fixed

	pathWidth := remaining / 3
	if pathWidth < minPath {
		pathWidth = minPath
	}
	if pathWidth > maxPath {
		pathWidth = maxPath
	}

	sparklineWidth := remaining - pathWidth
	if sparklineWidth < minSparkline {
		sparklineWidth = minSparkline
	}

	return []Column{
		{Title: "Path", Width: pathWidth, Align: lipgloss.Left},
		{Title: "Stability", Width: stabilityWidth, Align: lipgloss.Right},
		{Title: "Avg bytes", Width: avgWidth, Align: lipgloss.Right},
		{Title: "Max bytes", Width: maxWidth, Align: lipgloss.Right},
		{Title: "Samples", Width: samplesWidth, Align: lipgloss.Right},
		{Title: "Bytes received", Width: sparklineWidth, Align: lipgloss.Left},
	}
}
