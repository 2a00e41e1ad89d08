package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wellsgz/perfreport/internal/netlog"
	"github.com/wellsgz/perfreport/internal/stability"
)

const (
	ruleWidth    = 60
	sectionWidth = 40
	timeLayout   = "2006-01-02 15:04:05"
)

// Section headings, also used by the terminal viewer to style the report
const (
	Title            = "📊 STREAMINGPRO PERFORMANCE REPORT"
	HeadingStability = "🧪 STABILITY ANALYSIS"
	HeadingPaths     = "🛤️  PER-PATH ANALYSIS:"
	HeadingAdvice    = "💡 RECOMMENDATIONS:"
	HeadingNetwork   = "🌐 NETWORK ANALYSIS"
	HeadingSummary   = "📋 EXECUTIVE SUMMARY"

	InsufficientData = "⚠️  Insufficient data for a complete evaluation"
)

// Sources names the discovered input files; "" means not discovered
type Sources struct {
	StabilityFile string `json:"stability_file,omitempty"`
	NetworkFile   string `json:"network_file,omitempty"`
}

// HasStability reports whether a metrics file was discovered
func (s Sources) HasStability() bool {
	return s.StabilityFile != ""
}

// HasNetwork reports whether a network log was discovered
func (s Sources) HasNetwork() bool {
	return s.NetworkFile != ""
}

// Complete reports whether both inputs were discovered
func (s Sources) Complete() bool {
	return s.HasStability() && s.HasNetwork()
}

// Input is everything the report is built from.
// A nil analysis means it could not be obtained.
type Input struct {
	Stability *stability.Analysis
	Network   *netlog.Analysis
	Sources   Sources
}

// Builder composes reports
type Builder struct {
	// Now supplies the generation time; time.Now when nil
	Now func() time.Time
}

// Build composes a report with the current wall-clock time
func Build(in Input) string {
	return Builder{}.Build(in)
}

// Build composes the multi-section report text
func (b Builder) Build(in Input) string {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	w := &writer{}
	w.line(strings.Repeat("=", ruleWidth))
	w.line(Title)
	w.line(strings.Repeat("=", ruleWidth))
	w.linef("Generated: %s", now().Format(timeLayout))
	w.line("")

	if in.Sources.HasStability() {
		writeStability(w, in.Sources.StabilityFile, in.Stability)
	}
	if in.Sources.HasNetwork() {
		writeNetwork(w, in.Sources.NetworkFile, in.Network)
	}
	writeSummary(w, in)

	w.line("")
	w.line(strings.Repeat("=", ruleWidth))
	return w.String()
}

func writeStability(w *writer, file string, analysis *stability.Analysis) {
	w.line(HeadingStability)
	w.line(strings.Repeat("-", sectionWidth))
	w.linef("File: %s", file)

	if analysis == nil {
		return
	}

	w.linef("Duration: %.1f seconds", analysis.DurationSeconds)
	w.linef("Total samples: %d", analysis.TotalSamples)
	w.linef("Stability score: %.1f%%", analysis.StabilityScore)
	w.linef("Average bytes: %.0f", analysis.AvgBytesReceived)
	w.linef("Interruptions detected: %d", len(analysis.Interruptions))

	if analysis.PathsAnalysis.Len() > 0 {
		w.line("")
		w.line(HeadingPaths)
		for name, pa := range analysis.PathsAnalysis.All() {
			w.linef("  • %s:", name)
			w.linef("    - Stability: %.1f%%", pa.StabilityPercentage)
			w.linef("    - Average bytes: %.0f", pa.AvgBytes)
			w.linef("    - Samples: %d", pa.Samples)
		}
	}

	tier := StabilityTier(analysis.StabilityScore)
	w.line("")
	w.line(HeadingAdvice)
	w.linef("  %s %s", tier.Icon, tier.Message)
	for _, advice := range tier.Advice {
		w.linef("     - %s", advice)
	}
}

func writeNetwork(w *writer, file string, analysis *netlog.Analysis) {
	w.line("")
	w.line(HeadingNetwork)
	w.line(strings.Repeat("-", sectionWidth))
	w.linef("File: %s", file)

	if analysis == nil {
		return
	}

	w.linef("Successful operations: %d", analysis.SuccessfulOperations)
	w.linef("Failed operations: %d", analysis.FailedOperations)
	w.linef("Warnings: %d", analysis.Warnings)

	if analysis.HasLatency() {
		w.linef("Average latency: %.1fms", *analysis.AvgLatency)
		w.linef("Maximum latency: %dms", *analysis.MaxLatency)
		w.linef("Minimum latency: %dms", *analysis.MinLatency)

		tier := LatencyTier(*analysis.AvgLatency)
		w.linef("  %s %s", tier.Icon, tier.Message)
	}
}

func writeSummary(w *writer, in Input) {
	w.line("")
	w.line(HeadingSummary)
	w.line(strings.Repeat("-", sectionWidth))

	summary, ok := Summarize(in)
	if !ok {
		w.line(InsufficientData)
		return
	}

	tier := StatusTier(summary.OverallScore)
	w.linef("Overall score: %.1f/100", summary.OverallScore)
	w.linef("%s %s", tier.Icon, tier.Message)
}

// WriteFile writes the report to path, replacing any previous content
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// writer accumulates report lines
type writer struct {
	lines []string
}

func (w *writer) line(s string) {
	w.lines = append(w.lines, s)
}

func (w *writer) linef(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *writer) String() string {
	return strings.Join(w.lines, "\n")
}
