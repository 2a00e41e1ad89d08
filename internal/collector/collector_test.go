package collector

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellsgz/perfreport/internal/apperrors"
	"github.com/wellsgz/perfreport/internal/discovery"
	"github.com/wellsgz/perfreport/internal/logging"
	"github.com/wellsgz/perfreport/internal/report"
)

const metricsRun = `[
	{"timestamp":"2024-01-01T00:00:00Z","paths":{"items":[{"name":"cam1","bytesReceived":100,"ready":true}]}},
	{"timestamp":"2024-01-01T00:00:10Z","paths":{"items":[{"name":"cam1","bytesReceived":150,"ready":false}]}}
]`

const networkRun = "✅ Latencia a 8.8.8.8: 20ms\n❌ Timeout\n✅ Puerto abierto\n"

func newLayout(t *testing.T) *discovery.Layout {
	t.Helper()
	logging.SetWriter(io.Discard)
	t.Cleanup(func() { logging.SetWriter(os.Stderr) })

	layout := discovery.DefaultLayout(t.TempDir())
	require.NoError(t, layout.EnsureDirectories())
	return layout
}

func write(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestCollect_BothInputs(t *testing.T) {
	layout := newLayout(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	write(t, filepath.Join(layout.StabilityPath(), "metrics-old.json"), "[]", base)
	write(t, filepath.Join(layout.StabilityPath(), "metrics-new.json"), metricsRun, base.Add(time.Hour))
	write(t, filepath.Join(layout.NetworkPath(), "network-test-1.log"), networkRun, base)

	in := NewCollector(layout).Collect()

	assert.Equal(t, report.Sources{StabilityFile: "metrics-new.json", NetworkFile: "network-test-1.log"}, in.Sources)
	require.NotNil(t, in.Stability)
	assert.Equal(t, 50.0, in.Stability.StabilityScore)
	require.NotNil(t, in.Network)
	assert.Equal(t, 1, in.Network.FailedOperations)
	assert.Equal(t, []int{20}, in.Network.LatencyMeasurements)
}

func TestCollect_Degradation(t *testing.T) {
	tests := []struct {
		name          string
		metrics       string
		network       string
		wantStability bool
		wantNetwork   bool
		wantSources   report.Sources
	}{
		{
			name:        "nothing discovered",
			wantSources: report.Sources{},
		},
		{
			name:        "only network log",
			network:     networkRun,
			wantNetwork: true,
			wantSources: report.Sources{NetworkFile: "network-test-1.log"},
		},
		{
			name:        "malformed metrics stays discovered",
			metrics:     "{not json",
			network:     networkRun,
			wantNetwork: true,
			wantSources: report.Sources{StabilityFile: "metrics-1.json", NetworkFile: "network-test-1.log"},
		},
		{
			name:        "empty metrics array",
			metrics:     "[]",
			wantSources: report.Sources{StabilityFile: "metrics-1.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := newLayout(t)
			mod := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			if tt.metrics != "" {
				write(t, filepath.Join(layout.StabilityPath(), "metrics-1.json"), tt.metrics, mod)
			}
			if tt.network != "" {
				write(t, filepath.Join(layout.NetworkPath(), "network-test-1.log"), tt.network, mod)
			}

			in := NewCollector(layout).Collect()

			assert.Equal(t, tt.wantSources, in.Sources)
			if (in.Stability != nil) != tt.wantStability {
				t.Errorf("Collect() stability = %v, want present %v", in.Stability, tt.wantStability)
			}
			if (in.Network != nil) != tt.wantNetwork {
				t.Errorf("Collect() network = %v, want present %v", in.Network, tt.wantNetwork)
			}
		})
	}
}

func TestStabilityAndNetwork_ErrorKinds(t *testing.T) {
	layout := newLayout(t)
	c := NewCollector(layout)

	_, _, err := c.Stability()
	assert.True(t, apperrors.Is(err, apperrors.NotFound), "got %v", err)
	_, _, err = c.Network()
	assert.True(t, apperrors.Is(err, apperrors.NotFound), "got %v", err)

	mod := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	write(t, filepath.Join(layout.StabilityPath(), "metrics-1.json"), "[]", mod)
	_, path, err := c.Stability()
	assert.True(t, apperrors.Is(err, apperrors.EmptyData), "got %v", err)
	assert.Equal(t, filepath.Join(layout.StabilityPath(), "metrics-1.json"), path)

	write(t, filepath.Join(layout.StabilityPath(), "metrics-2.json"), `{"broken":`, mod.Add(time.Minute))
	_, _, err = c.Stability()
	assert.True(t, apperrors.Is(err, apperrors.ParseError), "got %v", err)

	write(t, filepath.Join(layout.NetworkPath(), "network-test-1.log"), networkRun, mod)
	network, _, err := c.Network()
	require.NoError(t, err)
	assert.Equal(t, 2, network.SuccessfulOperations)
}

func TestReport_UsesBuilder(t *testing.T) {
	layout := newLayout(t)
	clock := func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	got := NewCollector(layout).WithBuilder(report.Builder{Now: clock}).Report()

	assert.Contains(t, got, "Generated: 2024-05-06 07:08:09")
	assert.Contains(t, got, report.InsufficientData)
}
