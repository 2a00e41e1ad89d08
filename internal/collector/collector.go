package collector

import (
	"path/filepath"

	"github.com/wellsgz/perfreport/internal/apperrors"
	"github.com/wellsgz/perfreport/internal/discovery"
	"github.com/wellsgz/perfreport/internal/logging"
	"github.com/wellsgz/perfreport/internal/netlog"
	"github.com/wellsgz/perfreport/internal/report"
	"github.com/wellsgz/perfreport/internal/stability"
)

const component = "Collector"

// Collector discovers the newest test artifacts and analyzes them.
// Every call performs an independent batch collection.
type Collector struct {
	layout  *discovery.Layout
	builder report.Builder
}

// NewCollector creates a collector over the given layout
func NewCollector(layout *discovery.Layout) *Collector {
	return &Collector{layout: layout}
}

// WithBuilder replaces the report builder, mostly to pin the clock in tests
func (c *Collector) WithBuilder(b report.Builder) *Collector {
	c.builder = b
	return c
}

// Layout returns the layout the collector scans
func (c *Collector) Layout() *discovery.Layout {
	return c.layout
}

// Collect discovers and analyzes both inputs. Failures on either input are
// logged and leave the corresponding analysis nil; they never abort.
func (c *Collector) Collect() report.Input {
	var in report.Input

	stabilityPath := c.discover("metrics file", c.layout.LatestMetrics)
	if stabilityPath != "" {
		in.Sources.StabilityFile = filepath.Base(stabilityPath)
		analysis, err := LoadStability(stabilityPath)
		if err != nil {
			c.diagnose("stability analysis unavailable", err)
		} else {
			in.Stability = analysis
		}
	}

	networkPath := c.discover("network log", c.layout.LatestNetworkLog)
	if networkPath != "" {
		in.Sources.NetworkFile = filepath.Base(networkPath)
		analysis, err := netlog.AnalyzeFile(networkPath)
		if err != nil {
			c.diagnose("network analysis unavailable", err)
		} else {
			in.Network = analysis
		}
	}

	return in
}

// Report collects and renders the text report
func (c *Collector) Report() string {
	return c.builder.Build(c.Collect())
}

// Stability returns the analysis of the newest metrics file and its path.
// It returns a NotFound error when no metrics file exists.
func (c *Collector) Stability() (*stability.Analysis, string, error) {
	path, err := c.layout.LatestMetrics()
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.NotFound, c.layout.StabilityPath(), "metrics discovery failed", err)
	}
	if path == "" {
		return nil, "", apperrors.New(apperrors.NotFound, c.layout.StabilityPath(), "no metrics file found")
	}
	analysis, err := LoadStability(path)
	return analysis, path, err
}

// Network returns the analysis of the newest network log and its path.
// It returns a NotFound error when no network log exists.
func (c *Collector) Network() (*netlog.Analysis, string, error) {
	path, err := c.layout.LatestNetworkLog()
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.NotFound, c.layout.NetworkPath(), "network log discovery failed", err)
	}
	if path == "" {
		return nil, "", apperrors.New(apperrors.NotFound, c.layout.NetworkPath(), "no network log found")
	}
	analysis, err := netlog.AnalyzeFile(path)
	return analysis, path, err
}

// LoadStability loads a metrics file and analyzes it
func LoadStability(path string) (*stability.Analysis, error) {
	samples, err := stability.LoadFile(path)
	if err != nil {
		return nil, err
	}
	analysis, err := stability.Analyze(samples)
	if err != nil {
		if apperrors.Is(err, apperrors.EmptyData) {
			return nil, apperrors.Wrap(apperrors.EmptyData, path, "no samples in metrics file", err)
		}
		return nil, err
	}
	return analysis, nil
}

func (c *Collector) discover(what string, latest func() (string, error)) string {
	path, err := latest()
	if err != nil {
		logging.Error(component, "discovery of "+what+" failed", err)
		return ""
	}
	if path == "" {
		logging.Debug(component, "no "+what+" found", c.layout.String())
		return ""
	}
	logging.Debug(component, what+" discovered", map[string]string{"path": path})
	return path
}

func (c *Collector) diagnose(message string, err error) {
	logging.Warn(component, message, map[string]string{
		"kind":  string(apperrors.KindOf(err)),
		"error": err.Error(),
	})
}
