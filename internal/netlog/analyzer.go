package netlog

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/wellsgz/perfreport/internal/apperrors"
	"github.com/wellsgz/perfreport/internal/stats"
)

// maxLineSize bounds a single log line; network test logs are short lines
const maxLineSize = 1024 * 1024

// Analysis aggregates a network test log.
// AvgLatency, MaxLatency and MinLatency are nil when no latency was measured.
type Analysis struct {
	TotalLines           int      `json:"total_lines"`
	SuccessfulOperations int      `json:"successful_operations"`
	FailedOperations     int      `json:"failed_operations"`
	Warnings             int      `json:"warnings"`
	LatencyMeasurements  []int    `json:"latency_measurements"`
	ConnectivityTests    []string `json:"connectivity_tests"`
	StreamingTests       []string `json:"streaming_tests"`
	AvgLatency           *float64 `json:"avg_latency,omitempty"`
	MaxLatency           *int     `json:"max_latency,omitempty"`
	MinLatency           *int     `json:"min_latency,omitempty"`
}

// HasLatency reports whether latency statistics are present
func (a *Analysis) HasLatency() bool {
	return a != nil && a.AvgLatency != nil
}

// Analyze classifies every line and aggregates the counters
func Analyze(lines []string) *Analysis {
	analysis := &Analysis{
		TotalLines:          len(lines),
		LatencyMeasurements: []int{},
		ConnectivityTests:   []string{},
		StreamingTests:      []string{},
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		switch Classify(line) {
		case OutcomeSuccess:
			analysis.SuccessfulOperations++
			if latency, ok := ExtractLatency(line); ok {
				analysis.LatencyMeasurements = append(analysis.LatencyMeasurements, latency)
			}
		case OutcomeFailure:
			analysis.FailedOperations++
		case OutcomeWarning:
			analysis.Warnings++
		}

		for _, kind := range Tags(line) {
			switch kind {
			case TestConnectivity:
				analysis.ConnectivityTests = append(analysis.ConnectivityTests, line)
			case TestStreaming:
				analysis.StreamingTests = append(analysis.StreamingTests, line)
			}
		}
	}

	if len(analysis.LatencyMeasurements) > 0 {
		avg := stats.Mean(analysis.LatencyMeasurements)
		maxLatency := stats.Max(analysis.LatencyMeasurements)
		minLatency := stats.Min(analysis.LatencyMeasurements)
		analysis.AvgLatency = &avg
		analysis.MaxLatency = &maxLatency
		analysis.MinLatency = &minLatency
	}

	return analysis
}

// AnalyzeReader reads newline-separated lines from r and analyzes them
func AnalyzeReader(r io.Reader) (*Analysis, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return Analyze(lines), nil
}

// AnalyzeFile analyzes the log at path.
// A missing file yields a NotFound error, an unreadable one a ParseError.
func AnalyzeFile(path string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.NotFound, path, "network log not found", err)
		}
		return nil, apperrors.Wrap(apperrors.ParseError, path, "failed to open network log", err)
	}
	defer f.Close()

	analysis, err := AnalyzeReader(f)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ParseError, path, "failed to read network log", err)
	}
	return analysis, nil
}
