package nettest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wellsgz/perfreport/internal/config"
	"github.com/wellsgz/perfreport/internal/discovery"
	"github.com/wellsgz/perfreport/internal/logging"
	"github.com/wellsgz/perfreport/internal/netlog"
	"github.com/wellsgz/perfreport/internal/probe"
)

const component = "NetTest"

const headerTimeLayout = "2006-01-02 15:04:05"

// Check is one probe run under a test kind
type Check struct {
	Probe probe.Probe
	Kind  netlog.TestKind
}

// Runner executes network checks and writes a network test log
type Runner struct {
	checks  []Check
	timeout time.Duration
	now     func() time.Time
}

// NewRunner creates a runner for the configured targets
func NewRunner(cfg config.NetTestConfig) (*Runner, error) {
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no nettest targets configured")
	}

	checks := make([]Check, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		p, err := probe.New(target, cfg.Timeout, cfg.Pings)
		if err != nil {
			return nil, err
		}
		kind := netlog.TestConnectivity
		if target.TestKind() == config.KindStreaming {
			kind = netlog.TestStreaming
		}
		checks = append(checks, Check{Probe: p, Kind: kind})
		logging.Debug(component, "created probe", map[string]string{
			"target": target.Name,
			"host":   target.Host,
			"probe":  target.Probe,
			"kind":   kind.String(),
		})
	}

	return NewRunnerWithChecks(checks, cfg.Timeout), nil
}

// NewRunnerWithChecks creates a runner over prepared checks
func NewRunnerWithChecks(checks []Check, timeout time.Duration) *Runner {
	return &Runner{checks: checks, timeout: timeout, now: time.Now}
}

// Run executes all checks concurrently and writes their log lines to w in
// check order. It returns the results in the same order.
func (r *Runner) Run(ctx context.Context, w io.Writer) ([]probe.Result, error) {
	started := r.now()
	results := make([]probe.Result, len(r.checks))

	var wg sync.WaitGroup
	for i, check := range r.checks {
		wg.Add(1)
		go func(i int, check Check) {
			defer wg.Done()
			results[i] = r.runCheck(ctx, check)
		}(i, check)
	}
	wg.Wait()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "=== Prueba de red %s ===\n", started.Format(headerTimeLayout))

	failed := 0
	for i, check := range r.checks {
		for _, line := range FormatResult(check, results[i]) {
			fmt.Fprintln(bw, line)
		}
		if !results[i].Success {
			failed++
		}
	}
	fmt.Fprintf(bw, "=== Fin de la prueba: %d objetivos, %d sin respuesta ===\n", len(r.checks), failed)

	if err := bw.Flush(); err != nil {
		return results, fmt.Errorf("failed to write network log: %w", err)
	}
	return results, nil
}

// RunToFile runs the checks and writes a new network test log under layout.
// It returns the log path.
func (r *Runner) RunToFile(ctx context.Context, layout *discovery.Layout) (string, []probe.Result, error) {
	if err := layout.EnsureDirectories(); err != nil {
		return "", nil, err
	}

	path := layout.NewNetworkLogPath(r.now())
	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create network log: %w", err)
	}
	defer f.Close()

	results, err := r.Run(ctx, f)
	if err != nil {
		return path, results, err
	}
	if err := f.Close(); err != nil {
		return path, results, fmt.Errorf("failed to close network log: %w", err)
	}

	logging.Info(component, "network log written", map[string]interface{}{
		"path":    path,
		"targets": len(results),
	})
	return path, results, nil
}

func (r *Runner) runCheck(ctx context.Context, check Check) probe.Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := check.Probe.Execute(ctx)
	logging.ProbeResult(result.Target, result.LatencyMs, result.Success, result.Error)
	return result
}

// FormatResult renders the log lines for one check.
// The first line names the test kind; a latency line follows on success,
// plus a warning when some probes went unanswered.
func FormatResult(check Check, result probe.Result) []string {
	name := logName(check.Probe.Name())

	var lines []string
	switch check.Kind {
	case netlog.TestStreaming:
		lines = append(lines, fmt.Sprintf("🎥 Iniciando prueba de %s: %s (%s, %s)",
			netlog.StreamingPhrase, name, check.Probe.Host(), check.Probe.Type()))
	default:
		lines = append(lines, fmt.Sprintf("🔍 Iniciando %s: %s (%s, %s)",
			netlog.ConnectivityPhrase, name, check.Probe.Host(), check.Probe.Type()))
	}

	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "no response"
		}
		lines = append(lines, fmt.Sprintf("%s Sin respuesta de %s: %s", netlog.MarkerFailure, name, reason))
		return lines
	}

	lines = append(lines, fmt.Sprintf("%s %s %s: %d%s",
		netlog.MarkerSuccess, netlog.LatencyPhrase, name, result.LatencyMillis(), netlog.LatencyUnit))
	if result.LossPct > 0 {
		lines = append(lines, fmt.Sprintf("%s Pérdida de paquetes en %s: %.1f%%", netlog.MarkerWarning, name, result.LossPct))
	}
	return lines
}

// logName keeps a target name from splitting the "<name>: <n>ms" field
func logName(name string) string {
	return strings.ReplaceAll(name, ": ", " ")
}
