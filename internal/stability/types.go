package stability

import (
	"fmt"
	"math"
	"strconv"
)

// UnknownPath is the identity given to path entries without a name.
// All unnamed paths are aggregated under this single identity.
const UnknownPath = "unknown"

// MetricSample is one recorded snapshot of the media server's path list.
// Every field is optional in the recorded JSON; accessors apply the defaults.
type MetricSample struct {
	Timestamp *string   `json:"timestamp,omitempty"`
	Paths     *PathList `json:"paths,omitempty"`
}

// PathList wraps the path entries of a snapshot
type PathList struct {
	Items []PathStatus `json:"items"`
}

// PathStatus is the state of one stream path at one instant
type PathStatus struct {
	Name          *string    `json:"name,omitempty"`
	BytesReceived *ByteCount `json:"bytesReceived,omitempty"`
	Ready         *bool      `json:"ready,omitempty"`
}

// ByteCount is a byte counter decoded from any integer-valued JSON number,
// so 100 and 100.0 are the same count
type ByteCount int64

// UnmarshalJSON rejects fractional, out-of-range and non-numeric values
func (b *ByteCount) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		return nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		*b = ByteCount(n)
		return nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("bytesReceived: %s is not a number", text)
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("bytesReceived: %s is not a whole byte count", text)
	}
	*b = ByteCount(f)
	return nil
}

// Time returns the raw timestamp, "" when absent
func (s MetricSample) Time() string {
	if s.Timestamp == nil {
		return ""
	}
	return *s.Timestamp
}

// Items returns the path entries, empty when absent
func (s MetricSample) Items() []PathStatus {
	if s.Paths == nil {
		return nil
	}
	return s.Paths.Items
}

// PathName returns the path name, UnknownPath when absent
func (p PathStatus) PathName() string {
	if p.Name == nil {
		return UnknownPath
	}
	return *p.Name
}

// Bytes returns bytesReceived, 0 when absent
func (p PathStatus) Bytes() int64 {
	if p.BytesReceived == nil {
		return 0
	}
	return int64(*p.BytesReceived)
}

// IsReady returns the ready flag, false when absent
func (p PathStatus) IsReady() bool {
	return p.Ready != nil && *p.Ready
}

// PathAnalysis aggregates every observation of a single path
type PathAnalysis struct {
	Samples             int     `json:"samples"`
	ReadySamples        int     `json:"ready_samples"`
	BytesHistory        []int64 `json:"bytes_history"`
	AvgBytes            float64 `json:"avg_bytes"`
	MaxBytes            int64   `json:"max_bytes"`
	StabilityPercentage float64 `json:"stability_percentage"`

	// Per-observation timestamps and ready flags, aligned with BytesHistory
	SampleTimes  []string `json:"-"`
	ReadyHistory []bool   `json:"-"`
}

// Interruption records a path observed as not ready
type Interruption struct {
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// Analysis is the aggregated result of a stability test run
type Analysis struct {
	TotalSamples     int            `json:"total_samples"`
	DurationSeconds  float64        `json:"duration_seconds"`
	PathsAnalysis    *Paths         `json:"paths_analysis"`
	Interruptions    []Interruption `json:"interruptions"`
	StabilityScore   float64        `json:"stability_score"`
	AvgBytesReceived float64        `json:"avg_bytes_received"`
	MaxBytesReceived int64          `json:"max_bytes_received"`
	MinBytesReceived int64          `json:"min_bytes_received"`
}
