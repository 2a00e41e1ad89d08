package discovery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	touch(t, filepath.Join(dir, "metrics-a.json"), base)
	touch(t, filepath.Join(dir, "metrics-b.json"), base.Add(2*time.Hour))
	touch(t, filepath.Join(dir, "metrics-c.json"), base.Add(time.Hour))
	touch(t, filepath.Join(dir, "other-z.json"), base.Add(5*time.Hour))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "metrics-dir.json"), 0755))

	got, err := Latest(dir, "metrics-*.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "metrics-b.json"), got)
}

func TestLatest_TieBreaksOnName(t *testing.T) {
	dir := t.TempDir()
	mod := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	touch(t, filepath.Join(dir, "network-test-1.log"), mod)
	touch(t, filepath.Join(dir, "network-test-2.log"), mod)

	got, err := Latest(dir, "network-test-*.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "network-test-2.log"), got)
}

func TestLatest_NoMatches(t *testing.T) {
	got, err := Latest(filepath.Join(t.TempDir(), "missing"), "metrics-*.json")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestLatest_BadPattern(t *testing.T) {
	_, err := Latest(t.TempDir(), "metrics-[.json")
	assert.Error(t, err)
}

func TestLayout(t *testing.T) {
	root := t.TempDir()
	layout := DefaultLayout(root)

	assert.Equal(t, filepath.Join(root, "stability-tests"), layout.StabilityPath())
	assert.Equal(t, filepath.Join(root, "network-tests"), layout.NetworkPath())

	require.NoError(t, layout.EnsureDirectories())
	assert.DirExists(t, layout.StabilityPath())
	assert.DirExists(t, layout.NetworkPath())

	started := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	path := layout.NewNetworkLogPath(started)
	assert.Equal(t, filepath.Join(root, "network-tests", "network-test-20240304-050607.log"), path)

	touch(t, path, started)
	latest, err := layout.LatestNetworkLog()
	require.NoError(t, err)
	assert.Equal(t, path, latest)

	metrics, err := layout.LatestMetrics()
	require.NoError(t, err)
	assert.Equal(t, "", metrics)
}
