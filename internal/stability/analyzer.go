package stability

import (
	"fmt"
	"strings"
	"time"

	"github.com/wellsgz/perfreport/internal/apperrors"
	"github.com/wellsgz/perfreport/internal/stats"
)

// timestampLayouts are the ISO-8601 forms accepted for sample timestamps.
// Layouts without an offset parse as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"20060102T150405.999999999Z07:00",
	"20060102T150405.999999999Z0700",
	"20060102T150405.999999999",
	"2006-01-02",
	"20060102",
}

// Analyze folds every path observation of every sample into a stability analysis.
// An empty input yields an EmptyData error instead of a zeroed analysis.
func Analyze(samples []MetricSample) (*Analysis, error) {
	if len(samples) == 0 {
		return nil, apperrors.New(apperrors.EmptyData, "", "no metric samples to analyze")
	}

	analysis := &Analysis{
		TotalSamples:  len(samples),
		PathsAnalysis: NewPaths(),
		Interruptions: []Interruption{},
	}

	if len(samples) >= 2 {
		analysis.DurationSeconds = durationSeconds(samples[0].Time(), samples[len(samples)-1].Time())
	}

	var allBytes []int64
	readyCount := 0
	observations := 0

	for _, sample := range samples {
		for _, path := range sample.Items() {
			name := path.PathName()
			received := path.Bytes()

			pa := analysis.PathsAnalysis.getOrCreate(name)
			pa.Samples++
			pa.BytesHistory = append(pa.BytesHistory, received)
			pa.SampleTimes = append(pa.SampleTimes, sample.Time())
			pa.ReadyHistory = append(pa.ReadyHistory, path.IsReady())
			if received > pa.MaxBytes {
				pa.MaxBytes = received
			}

			if path.IsReady() {
				pa.ReadySamples++
				readyCount++
			} else {
				analysis.Interruptions = append(analysis.Interruptions, Interruption{
					Timestamp: sample.Time(),
					Path:      name,
				})
			}

			allBytes = append(allBytes, received)
			observations++
		}
	}

	analysis.AvgBytesReceived = stats.Mean(allBytes)
	analysis.MaxBytesReceived = stats.Max(allBytes)
	analysis.MinBytesReceived = stats.Min(allBytes)
	analysis.StabilityScore = stats.Percentage(readyCount, observations)

	for _, pa := range analysis.PathsAnalysis.All() {
		pa.AvgBytes = stats.Mean(pa.BytesHistory)
		pa.StabilityPercentage = stats.Percentage(pa.ReadySamples, pa.Samples)
	}

	return analysis, nil
}

// durationSeconds returns end-start in seconds, 0 if either timestamp is unparsable
func durationSeconds(start, end string) float64 {
	startTime, err := ParseTimestamp(start)
	if err != nil {
		return 0
	}
	endTime, err := ParseTimestamp(end)
	if err != nil {
		return 0
	}
	return endTime.Sub(startTime).Seconds()
}

// ParseTimestamp parses an ISO-8601 timestamp; a trailing "Z" means UTC
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", value)
}
