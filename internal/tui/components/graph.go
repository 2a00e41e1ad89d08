package components

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GraphPoint is one observation of a plotted series
type GraphPoint struct {
	Label string  // X-axis label, only the first and last are shown
	Value float64 // Bytes received
	Gap   bool    // Observation taken while the path was not ready
}

// GraphConfig configures graph rendering
type GraphConfig struct {
	Width      int // Total width including Y-axis labels
	Height     int // Graph area height (excluding X-axis)
	ShowYAxis  bool
	ShowXAxis  bool
	YAxisWidth int
}

// DefaultGraphConfig returns the detail view layout
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		Width:      60,
		Height:     6,
		ShowYAxis:  true,
		ShowXAxis:  true,
		YAxisWidth: 8,
	}
}

var (
	graphAxisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	graphLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	graphGapStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Graph renders a byte-count series as an ASCII line graph.
// Points are spaced evenly by observation; gaps are marked with × under the plot.
func Graph(points []GraphPoint, config GraphConfig) string {
	if config.Height < 2 {
		config.Height = 2
	}
	graphWidth := config.Width
	if config.ShowYAxis {
		graphWidth -= config.YAxisWidth
	}
	if graphWidth < 10 {
		graphWidth = 10
	}

	if len(points) == 0 {
		return renderEmptyGraph(graphWidth, config)
	}

	minY, maxY, ticks := calculateYRange(points, config.Height)

	// Two vertical dots per row using half-blocks
	canvasHeight := config.Height * 2
	canvas := make([][]rune, config.Height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", graphWidth))
	}
	gaps := make([]bool, graphWidth)

	prevX, prevY := -1, -1
	for i, point := range points {
		x := column(i, len(points), graphWidth)

		yRatio := (point.Value - minY) / (maxY - minY)
		yRatio = math.Max(0, math.Min(1, yRatio))
		y := canvasHeight - 1 - int(yRatio*float64(canvasHeight-1))

		if prevX >= 0 {
			drawLine(canvas, prevX, prevY, x, y)
		} else {
			drawPoint(canvas, x, y)
		}
		prevX, prevY = x, y

		if point.Gap {
			gaps[x] = true
		}
	}

	var result strings.Builder
	for row := 0; row < config.Height; row++ {
		if config.ShowYAxis {
			result.WriteString(graphAxisStyle.Render(formatYLabel(ticks, row, config.Height, config.YAxisWidth)))
		}
		for _, ch := range canvas[row] {
			if ch == ' ' {
				result.WriteRune(' ')
			} else {
				result.WriteString(graphLineStyle.Render(string(ch)))
			}
		}
		result.WriteString("\n")
	}

	if hasGap(gaps) {
		if config.ShowYAxis {
			result.WriteString(strings.Repeat(" ", config.YAxisWidth))
		}
		for _, gap := range gaps {
			if gap {
				result.WriteString(graphGapStyle.Render("×"))
			} else {
				result.WriteRune(' ')
			}
		}
		result.WriteString("\n")
	}

	if config.ShowXAxis {
		result.WriteString(renderXAxis(points[0].Label, points[len(points)-1].Label, graphWidth, config))
	}

	return result.String()
}

// column maps the i-th of n observations onto the graph width
func column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return i * (width - 1) / (n - 1)
}

// calculateYRange returns a zero-based range rounded up to a nice tick spacing
func calculateYRange(points []GraphPoint, numTicks int) (min, max float64, ticks []float64) {
	dataMax := 0.0
	for _, p := range points {
		if p.Value > dataMax {
			dataMax = p.Value
		}
	}

	padding := dataMax * 0.1
	if padding < 1 {
		padding = 1
	}
	max = dataMax + padding

	tickSpacing := niceNum(max/float64(numTicks-1), true)
	max = math.Ceil(max/tickSpacing) * tickSpacing

	ticks = make([]float64, 0, numTicks+1)
	for tick := 0.0; tick <= max+tickSpacing*0.5; tick += tickSpacing {
		ticks = append(ticks, tick)
	}
	return 0, max, ticks
}

// niceNum finds a "nice" number approximately equal to x
func niceNum(x float64, round bool) float64 {
	if x <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}

// drawPoint sets the upper or lower half of a canvas cell
func drawPoint(canvas [][]rune, x, y int) {
	row := y / 2
	if row < 0 || row >= len(canvas) || x < 0 || x >= len(canvas[0]) {
		return
	}

	existing := canvas[row][x]
	if y%2 == 0 {
		if existing == '▄' || existing == '█' {
			canvas[row][x] = '█'
		} else {
			canvas[row][x] = '▀'
		}
	} else {
		if existing == '▀' || existing == '█' {
			canvas[row][x] = '█'
		} else {
			canvas[row][x] = '▄'
		}
	}
}

// drawLine connects two canvas points (Bresenham)
func drawLine(canvas [][]rune, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		drawPoint(canvas, x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// formatYLabel returns the axis label for a row, or a bare axis segment
func formatYLabel(ticks []float64, row, height, width int) string {
	if len(ticks) < 2 {
		return strings.Repeat(" ", width-1) + "│"
	}

	maxTick := ticks[len(ticks)-1]
	minTick := ticks[0]
	for _, tick := range ticks {
		tickRow := int((maxTick - tick) / (maxTick - minTick) * float64(height-1))
		if tickRow == row {
			label := ShortBytes(tick)
			if len(label) > width-1 {
				label = label[:width-1]
			}
			return strings.Repeat(" ", width-len(label)-1) + label + "┤"
		}
	}
	return strings.Repeat(" ", width-1) + "│"
}

// ShortBytes formats a byte count for axis labels: 512B, 1.5K, 12M
func ShortBytes(v float64) string {
	units := []string{"B", "K", "M", "G", "T"}
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	if v == math.Trunc(v) || v >= 10 {
		return strconv.FormatFloat(v, 'f', 0, 64) + units[i]
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + units[i]
}

// renderXAxis renders the axis line with the first and last labels under it
func renderXAxis(fromLabel, toLabel string, width int, config GraphConfig) string {
	var result strings.Builder

	if config.ShowYAxis {
		result.WriteString(strings.Repeat(" ", config.YAxisWidth-1))
		result.WriteString("└")
	}
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	if config.ShowYAxis {
		result.WriteString(strings.Repeat(" ", config.YAxisWidth))
	}

	padding := width - len(fromLabel) - len(toLabel)
	if padding < 1 {
		padding = 1
	}
	result.WriteString(graphAxisStyle.Render(fromLabel))
	result.WriteString(strings.Repeat(" ", padding))
	result.WriteString(graphAxisStyle.Render(toLabel))

	return result.String()
}

// renderEmptyGraph renders an empty graph placeholder
func renderEmptyGraph(graphWidth int, config GraphConfig) string {
	var result strings.Builder

	for row := 0; row < config.Height; row++ {
		if config.ShowYAxis {
			result.WriteString(strings.Repeat(" ", config.YAxisWidth-1))
			result.WriteString("│")
		}
		if row == config.Height/2 {
			msg := "No data"
			padding := (graphWidth - len(msg)) / 2
			result.WriteString(strings.Repeat(" ", padding))
			result.WriteString(graphAxisStyle.Render(msg))
			result.WriteString(strings.Repeat(" ", graphWidth-padding-len(msg)))
		} else {
			result.WriteString(strings.Repeat(" ", graphWidth))
		}
		result.WriteString("\n")
	}

	if config.ShowXAxis {
		if config.ShowYAxis {
			result.WriteString(strings.Repeat(" ", config.YAxisWidth-1))
			result.WriteString("└")
		}
		result.WriteString(strings.Repeat("─", graphWidth))
	}

	return result.String()
}

func hasGap(gaps []bool) bool {
	for _, g := range gaps {
		if g {
			return true
		}
	}
	return false
}
