package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wellsgz/perfreport/internal/report"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorCaution   = lipgloss.Color("#F97316") // Orange
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorBgLight   = lipgloss.Color("#374151") // Lighter background
	ColorText      = lipgloss.Color("#F9FAFB") // Light text
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ruleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// LevelStyle returns the style for a score tier
func LevelStyle(level report.Level) lipgloss.Style {
	switch level {
	case report.LevelExcellent:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	case report.LevelGood:
		return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	case report.LevelFair:
		return lipgloss.NewStyle().Foreground(ColorCaution).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	}
}

// FormatStability formats a stability percentage colored by its tier
func FormatStability(pct float64) string {
	return LevelStyle(report.StabilityTier(pct).Level).Render(fmt.Sprintf("%.1f%%", pct))
}

// FormatLatency formats a latency colored by its tier
func FormatLatency(ms float64) string {
	return LevelStyle(report.LatencyTier(ms).Level).Render(fmt.Sprintf("%.1fms", ms))
}

// FormatScore formats a 0-100 score colored by the status tier
func FormatScore(score float64) string {
	return LevelStyle(report.StatusTier(score).Level).Render(fmt.Sprintf("%.1f", score))
}

// FormatBytes formats a byte count with a binary unit
func FormatBytes(n float64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%.0f B", n)
	}
	div, exp := float64(unit), 0
	for v := n / unit; v >= unit && exp < 4; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", n/div, "KMGTP"[exp])
}

// StyleReport colors the headings and status lines of a text report
func StyleReport(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = styleReportLine(line)
	}
	return strings.Join(lines, "\n")
}

func styleReportLine(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return line
	case line == report.Title:
		return TitleStyle.Render(line)
	case line == report.HeadingStability, line == report.HeadingNetwork,
		line == report.HeadingSummary, line == report.HeadingPaths,
		line == report.HeadingAdvice:
		return SectionStyle.Render(line)
	case strings.Trim(line, "=-") == "":
		return ruleStyle.Render(line)
	case strings.Contains(line, "STATUS:"):
		for _, level := range []report.Level{report.LevelExcellent, report.LevelGood, report.LevelFair, report.LevelPoor} {
			if strings.Contains(line, statusWord(level)) {
				return LevelStyle(level).Render(line)
			}
		}
	case line == report.InsufficientData:
		return lipgloss.NewStyle().Foreground(ColorWarning).Render(line)
	}
	return line
}

func statusWord(level report.Level) string {
	if level == report.LevelPoor {
		return "CRITICAL"
	}
	return strings.ToUpper(string(level))
}
