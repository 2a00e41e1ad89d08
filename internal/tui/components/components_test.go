package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		width  int
		want   string
	}{
		{"empty pads to width", nil, 4, "    "},
		{"scales between min and max", []int64{0, 7, 14}, 5, "▁▄█  "},
		{"flat series sits low", []int64{500, 500, 500}, 3, "▁▁▁"},
		{"keeps the newest values", []int64{100, 0, 10, 20}, 3, "▁▄█"},
		{"zero width", []int64{1, 2}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sparkline(tt.values, tt.width)
			if got != tt.want {
				t.Errorf("Sparkline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSparkline_Floats(t *testing.T) {
	got := Sparkline([]float64{1.5, 3.0}, 2)
	assert.Equal(t, "▁█", got)
}

func TestBar(t *testing.T) {
	tests := []struct {
		pct   float64
		width int
		want  string
	}{
		{0, 4, "░░░░"},
		{50, 10, "█████░░░░░"},
		{100, 4, "████"},
		{150, 4, "████"},
		{-5, 2, "░░"},
	}

	for _, tt := range tests {
		got := Bar(tt.pct, tt.width)
		if got != tt.want {
			t.Errorf("Bar(%v, %d) = %q, want %q", tt.pct, tt.width, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		value string
		align lipgloss.Position
		want  string
	}{
		{"left", "ab", lipgloss.Left, "ab   "},
		{"right", "ab", lipgloss.Right, "   ab"},
		{"center", "ab", lipgloss.Center, " ab  "},
		{"too wide", "abcdefg", lipgloss.Left, "abcdefg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pad(tt.value, 5, tt.align)
			if got != tt.want {
				t.Errorf("Pad() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "cam1", Truncate("cam1", 10))
	assert.Equal(t, "entrada-…", Truncate("entrada-principal", 9))
	assert.Equal(t, "", Truncate("cam1", 0))
}

func TestPathColumns(t *testing.T) {
	narrow := PathColumns(40)
	assert.Len(t, narrow, 6)
	assert.Equal(t, 12, narrow[0].Width, "path column keeps its minimum")
	assert.Equal(t, 10, narrow[5].Width, "sparkline keeps its minimum")

	wide := PathColumns(200)
	assert.Equal(t, 24, wide[0].Width)
	assert.Equal(t, 200-54-24, wide[5].Width)
	assert.Equal(t, "Bytes received", wide[5].Title)
}

func TestGraph(t *testing.T) {
	config := GraphConfig{Width: 38, Height: 4, ShowYAxis: true, ShowXAxis: true, YAxisWidth: 8}
	points := []GraphPoint{
		{Label: "00:00:00", Value: 0},
		{Label: "00:00:05", Value: 50},
		{Label: "00:00:10", Value: 100, Gap: true},
	}

	got := Graph(points, config)
	lines := strings.Split(got, "\n")

	// plot rows, gap row, axis line, labels
	require.Len(t, lines, config.Height+3)
	assert.True(t, strings.HasPrefix(lines[0], "   150B┤"), "top row carries the highest tick: %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[config.Height-1], "     0B┤"), "bottom row carries zero: %q", lines[config.Height-1])
	assert.Contains(t, lines[config.Height], "×")
	assert.Equal(t, strings.Repeat(" ", 7)+"└"+strings.Repeat("─", 30), lines[config.Height+1])
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[config.Height+2]), "00:00:00"))
	assert.True(t, strings.HasSuffix(lines[config.Height+2], "00:00:10"))
	assert.Equal(t, 1, strings.Count(got, "×"))
}

func TestGraph_WithoutGaps(t *testing.T) {
	config := DefaultGraphConfig()
	got := Graph([]GraphPoint{{Value: 10}, {Value: 20}}, config)

	assert.NotContains(t, got, "×")
	assert.Len(t, strings.Split(got, "\n"), config.Height+2)
}

func TestGraph_Empty(t *testing.T) {
	got := Graph(nil, DefaultGraphConfig())
	assert.Contains(t, got, "No data")
}

func TestColumn(t *testing.T) {
	tests := []struct {
		i, n, width int
		want        int
	}{
		{0, 1, 10, 0},
		{0, 3, 10, 0},
		{1, 3, 11, 5},
		{2, 3, 10, 9},
		{50, 101, 10, 4},
	}

	for _, tt := range tests {
		if got := column(tt.i, tt.n, tt.width); got != tt.want {
			t.Errorf("column(%d, %d, %d) = %d, want %d", tt.i, tt.n, tt.width, got, tt.want)
		}
	}
}

func TestShortBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1536, "1.5K"},
		{20 * 1024, "20K"},
		{3 * 1024 * 1024, "3M"},
	}

	for _, tt := range tests {
		if got := ShortBytes(tt.in); got != tt.want {
			t.Errorf("ShortBytes(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
