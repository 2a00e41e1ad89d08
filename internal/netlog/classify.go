package netlog

import (
	"strconv"
	"strings"
)

// Marker glyphs and phrases written by the network test scripts.
// The nettest runner writes the same markers so its logs round-trip.
const (
	MarkerSuccess = "✅"
	MarkerFailure = "❌"
	MarkerWarning = "⚠️"

	LatencyPhrase      = "Latencia a"
	LatencyUnit        = "ms"
	ConnectivityPhrase = "prueba de conectividad"
	StreamingPhrase    = "streaming remoto"
)

// Outcome is the status a log line reports
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
	OutcomeWarning
)

// String returns a display name for the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeWarning:
		return "warning"
	default:
		return "none"
	}
}

// TestKind tags a line as belonging to a kind of network test
type TestKind int

const (
	TestConnectivity TestKind = iota
	TestStreaming
)

// String returns a display name for the test kind
func (k TestKind) String() string {
	switch k {
	case TestConnectivity:
		return "connectivity"
	case TestStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Classify returns the outcome of a line. Success wins over failure, which
// wins over warning, when a line carries more than one marker.
func Classify(line string) Outcome {
	switch {
	case strings.Contains(line, MarkerSuccess):
		return OutcomeSuccess
	case strings.Contains(line, MarkerFailure):
		return OutcomeFailure
	case strings.Contains(line, MarkerWarning):
		return OutcomeWarning
	default:
		return OutcomeNone
	}
}

// Tags returns the test kinds a line mentions, matched case-insensitively.
// A line may carry both tags.
func Tags(line string) []TestKind {
	lower := strings.ToLower(line)

	var kinds []TestKind
	if strings.Contains(lower, ConnectivityPhrase) {
		kinds = append(kinds, TestConnectivity)
	}
	if strings.Contains(lower, StreamingPhrase) {
		kinds = append(kinds, TestStreaming)
	}
	return kinds
}

// ExtractLatency parses the milliseconds from a "Latencia a <host>: <n>ms" line.
// The text after the first ": " must be an integer with an optional "ms" suffix.
func ExtractLatency(line string) (int, bool) {
	if !strings.Contains(line, LatencyPhrase) || !strings.Contains(line, LatencyUnit) {
		return 0, false
	}

	_, after, found := strings.Cut(line, ": ")
	if !found {
		return 0, false
	}

	value := strings.TrimSpace(after)
	value = strings.TrimSpace(strings.TrimSuffix(value, LatencyUnit))

	latency, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return latency, true
}
