package probe

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/wellsgz/perfreport/internal/config"
	"github.com/wellsgz/perfreport/internal/stats"
)

// Probe types
const (
	TypeICMP = "icmp"
	TypeTCP  = "tcp"
)

// Result is the outcome of one probe burst against a target
type Result struct {
	Target    string    `json:"target"`
	Host      string    `json:"host"`
	Type      string    `json:"probe_type"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`

	LatencyMs float64 `json:"latency_ms"` // Median RTT, -1 when nothing answered
	MinMs     float64 `json:"min_ms,omitempty"`
	MaxMs     float64 `json:"max_ms,omitempty"`
	AvgMs     float64 `json:"avg_ms,omitempty"`
	LossPct   float64 `json:"loss_pct"`
	Sent      int     `json:"sent"`
	Received  int     `json:"received"`
}

// LatencyMillis returns the median latency rounded to whole milliseconds
func (r Result) LatencyMillis() int {
	return int(math.Round(r.LatencyMs))
}

// Probe measures reachability and latency of one target
type Probe interface {
	Name() string
	Host() string
	Type() string
	Execute(ctx context.Context) Result
}

// New creates the probe configured for target
func New(target config.Target, timeout time.Duration, pings int) (Probe, error) {
	switch target.Probe {
	case TypeICMP:
		return NewICMPProbe(target.Name, target.Host, timeout, pings), nil
	case TypeTCP:
		return NewTCPProbe(target.Name, target.Host, target.Port, timeout, pings), nil
	default:
		return nil, fmt.Errorf("unknown probe type %q for target %q", target.Probe, target.Name)
	}
}

// base holds what every probe needs
type base struct {
	name    string
	host    string
	timeout time.Duration
	pings   int
}

func newBase(name, host string, timeout time.Duration, pings int) base {
	if pings < 1 {
		pings = 1
	}
	return base{name: name, host: host, timeout: timeout, pings: pings}
}

// Name returns the target name
func (b *base) Name() string {
	return b.name
}

// Host returns the target host
func (b *base) Host() string {
	return b.host
}

// result summarizes a burst of sent probes that produced rtts
func (b *base) result(probeType string, rtts []time.Duration, sent int, err error) Result {
	r := Result{
		Target:    b.name,
		Host:      b.host,
		Type:      probeType,
		Timestamp: time.Now(),
		Sent:      sent,
		Received:  len(rtts),
		LossPct:   100,
		LatencyMs: -1,
	}
	if sent > 0 {
		r.LossPct = stats.Percentage(sent-len(rtts), sent)
	}

	if len(rtts) == 0 {
		switch {
		case err != nil:
			r.Error = err.Error()
		case sent == 0:
			r.Error = "no probes sent"
		default:
			r.Error = "no response"
		}
		return r
	}

	r.Success = true
	r.LatencyMs = millis(median(rtts))
	r.MinMs = millis(stats.Min(rtts))
	r.MaxMs = millis(stats.Max(rtts))
	r.AvgMs = stats.Mean(rtts) / float64(time.Millisecond)
	return r
}

// median returns the median of rtts without modifying it
func median(rtts []time.Duration) time.Duration {
	if len(rtts) == 0 {
		return 0
	}

	sorted := slices.Clone(rtts)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
