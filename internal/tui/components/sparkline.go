package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wellsgz/perfreport/internal/stats"
)

// Sparkline block characters from lowest to highest
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Colors for sparkline and bars
var (
	sparkNormalColor = lipgloss.Color("#06B6D4") // Cyan
	barFillColor     = lipgloss.Color("#10B981") // Green
	barEmptyColor    = lipgloss.Color("#374151") // Gray
)

// Sparkline renders the last width values as block characters scaled
// between their own minimum and maximum. The result is padded to width.
func Sparkline[T stats.Number](values []T, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo := float64(stats.Min(values))
	hi := float64(stats.Max(values))

	style := lipgloss.NewStyle().Foreground(sparkNormalColor)
	var result strings.Builder
	for _, v := range values {
		result.WriteRune(sparkBlocks[blockIndex(float64(v), lo, hi)])
	}

	return style.Render(result.String()) + strings.Repeat(" ", width-len(values))
}

// blockIndex scales v into 0..len(sparkBlocks)-1. A flat series sits on
// the lowest block.
func blockIndex(v, lo, hi float64) int {
	if hi <= lo {
		return 0
	}
	top := len(sparkBlocks) - 1
	idx := int((v - lo) / (hi - lo) * float64(top))
	if idx > top {
		idx = top
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Bar renders a horizontal percentage bar of the given width
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := int(pct / 100 * float64(width))
	fill := lipgloss.NewStyle().Foreground(barFillColor).Render(strings.Repeat("█", filled))
	empty := lipgloss.NewStyle().Foreground(barEmptyColor).Render(strings.Repeat("░", width-filled))
	return fill + empty
}
