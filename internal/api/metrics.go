package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wellsgz/perfreport/internal/collector"
	"github.com/wellsgz/perfreport/internal/report"
)

const namespace = "perfreport"

// MetricsCollector exposes the newest analyses as Prometheus gauges.
// Every scrape performs a fresh collection.
type MetricsCollector struct {
	collector *collector.Collector

	discovered        *prometheus.Desc
	stabilityScore    *prometheus.Desc
	samples           *prometheus.Desc
	interruptions     *prometheus.Desc
	durationSeconds   *prometheus.Desc
	pathStability     *prometheus.Desc
	pathAvgBytes      *prometheus.Desc
	networkOperations *prometheus.Desc
	networkLatency    *prometheus.Desc
	networkScore      *prometheus.Desc
	overallScore      *prometheus.Desc
}

// NewMetricsCollector creates a collector reading artifacts through c
func NewMetricsCollector(c *collector.Collector) *MetricsCollector {
	return &MetricsCollector{
		collector: c,
		discovered: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "input_discovered"),
			"Whether the newest input file of each kind was found (1) or not (0)",
			[]string{"input"}, nil,
		),
		stabilityScore: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "stability", "score"),
			"Percentage of path observations that were ready",
			nil, nil,
		),
		samples: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "stability", "samples"),
			"Number of metric samples in the newest metrics file",
			nil, nil,
		),
		interruptions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "stability", "interruptions"),
			"Number of not-ready path observations",
			nil, nil,
		),
		durationSeconds: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "stability", "duration_seconds"),
			"Time between the first and last sample",
			nil, nil,
		),
		pathStability: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "path", "stability_percentage"),
			"Percentage of ready observations per path",
			[]string{"path"}, nil,
		),
		pathAvgBytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "path", "avg_bytes_received"),
			"Mean bytes received per path",
			[]string{"path"}, nil,
		),
		networkOperations: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "network", "operations"),
			"Network log lines by outcome",
			[]string{"outcome"}, nil,
		),
		networkLatency: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "network", "latency_ms"),
			"Latency statistics from the newest network log",
			[]string{"stat"}, nil,
		),
		networkScore: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "network", "score"),
			"Network score of the executive summary",
			nil, nil,
		),
		overallScore: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "overall_score"),
			"Overall score of the executive summary",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (m *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.discovered
	ch <- m.stabilityScore
	ch <- m.samples
	ch <- m.interruptions
	ch <- m.durationSeconds
	ch <- m.pathStability
	ch <- m.pathAvgBytes
	ch <- m.networkOperations
	ch <- m.networkLatency
	ch <- m.networkScore
	ch <- m.overallScore
}

// Collect implements prometheus.Collector
func (m *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	in := m.collector.Collect()

	ch <- prometheus.MustNewConstMetric(m.discovered, prometheus.GaugeValue, boolValue(in.Sources.HasStability()), "stability")
	ch <- prometheus.MustNewConstMetric(m.discovered, prometheus.GaugeValue, boolValue(in.Sources.HasNetwork()), "network")

	if s := in.Stability; s != nil {
		ch <- prometheus.MustNewConstMetric(m.stabilityScore, prometheus.GaugeValue, s.StabilityScore)
		ch <- prometheus.MustNewConstMetric(m.samples, prometheus.GaugeValue, float64(s.TotalSamples))
		ch <- prometheus.MustNewConstMetric(m.interruptions, prometheus.GaugeValue, float64(len(s.Interruptions)))
		ch <- prometheus.MustNewConstMetric(m.durationSeconds, prometheus.GaugeValue, s.DurationSeconds)
		if s.PathsAnalysis != nil {
			for name, path := range s.PathsAnalysis.All() {
				ch <- prometheus.MustNewConstMetric(m.pathStability, prometheus.GaugeValue, path.StabilityPercentage, name)
				ch <- prometheus.MustNewConstMetric(m.pathAvgBytes, prometheus.GaugeValue, path.AvgBytes, name)
			}
		}
	}

	if n := in.Network; n != nil {
		ch <- prometheus.MustNewConstMetric(m.networkOperations, prometheus.GaugeValue, float64(n.SuccessfulOperations), "success")
		ch <- prometheus.MustNewConstMetric(m.networkOperations, prometheus.GaugeValue, float64(n.FailedOperations), "failure")
		ch <- prometheus.MustNewConstMetric(m.networkOperations, prometheus.GaugeValue, float64(n.Warnings), "warning")
		if n.HasLatency() {
			ch <- prometheus.MustNewConstMetric(m.networkLatency, prometheus.GaugeValue, *n.AvgLatency, "avg")
			ch <- prometheus.MustNewConstMetric(m.networkLatency, prometheus.GaugeValue, float64(*n.MaxLatency), "max")
			ch <- prometheus.MustNewConstMetric(m.networkLatency, prometheus.GaugeValue, float64(*n.MinLatency), "min")
		}
	}

	if summary, ok := report.Summarize(in); ok {
		ch <- prometheus.MustNewConstMetric(m.networkScore, prometheus.GaugeValue, summary.NetworkScore)
		ch <- prometheus.MustNewConstMetric(m.overallScore, prometheus.GaugeValue, summary.OverallScore)
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
