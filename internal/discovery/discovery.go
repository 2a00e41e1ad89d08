package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default layout under the logs directory
const (
	DefaultStabilityDir   = "stability-tests"
	DefaultNetworkDir     = "network-tests"
	DefaultMetricsPattern = "metrics-*.json"
	DefaultNetworkPattern = "network-test-*.log"
)

// fileStampLayout is substituted for "*" when naming new network logs
const fileStampLayout = "20060102-150405"

// Layout holds the resolved locations of the test artifacts
type Layout struct {
	LogsDir        string
	StabilityDir   string
	NetworkDir     string
	MetricsPattern string
	NetworkPattern string
}

// DefaultLayout returns the default layout rooted at logsDir
func DefaultLayout(logsDir string) *Layout {
	return &Layout{
		LogsDir:        logsDir,
		StabilityDir:   DefaultStabilityDir,
		NetworkDir:     DefaultNetworkDir,
		MetricsPattern: DefaultMetricsPattern,
		NetworkPattern: DefaultNetworkPattern,
	}
}

// StabilityPath returns the directory holding metrics files
func (l *Layout) StabilityPath() string {
	return filepath.Join(l.LogsDir, l.StabilityDir)
}

// NetworkPath returns the directory holding network test logs
func (l *Layout) NetworkPath() string {
	return filepath.Join(l.LogsDir, l.NetworkDir)
}

// LatestMetrics returns the most recent metrics file, "" if there is none
func (l *Layout) LatestMetrics() (string, error) {
	return Latest(l.StabilityPath(), l.MetricsPattern)
}

// LatestNetworkLog returns the most recent network test log, "" if there is none
func (l *Layout) LatestNetworkLog() (string, error) {
	return Latest(l.NetworkPath(), l.NetworkPattern)
}

// NewNetworkLogPath returns the path for a network log started at t
func (l *Layout) NewNetworkLogPath(t time.Time) string {
	name := strings.Replace(l.NetworkPattern, "*", t.Format(fileStampLayout), 1)
	return filepath.Join(l.NetworkPath(), name)
}

// EnsureDirectories creates the artifact directories if they don't exist
func (l *Layout) EnsureDirectories() error {
	for _, dir := range []string{l.StabilityPath(), l.NetworkPath()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// String returns a human-readable representation of the layout
func (l *Layout) String() string {
	return fmt.Sprintf("Stability: %s, Network: %s",
		filepath.Join(l.StabilityPath(), l.MetricsPattern),
		filepath.Join(l.NetworkPath(), l.NetworkPattern))
}

// Latest returns the regular file in dir matching pattern with the most
// recent modification time. Ties go to the lexically last name. It returns
// "" and no error when nothing matches or dir does not exist.
func Latest(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var latest string
	var latestMod time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		mod := info.ModTime()
		if latest == "" || mod.After(latestMod) || (mod.Equal(latestMod) && match > latest) {
			latest = match
			latestMod = mod
		}
	}
	return latest, nil
}
