package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellsgz/perfreport/internal/logging"
	"github.com/wellsgz/perfreport/internal/netlog"
	"github.com/wellsgz/perfreport/internal/report"
	"github.com/wellsgz/perfreport/internal/stability"
	"github.com/wellsgz/perfreport/internal/tui/components"
)

const twoPathRun = `[
	{"timestamp":"2024-01-01T00:00:00Z","paths":{"items":[
		{"name":"cam1","bytesReceived":1000,"ready":true},
		{"name":"cam2","bytesReceived":2000,"ready":false}]}},
	{"timestamp":"2024-01-01T00:00:10Z","paths":{"items":[
		{"name":"cam1","bytesReceived":3000,"ready":true},
		{"name":"cam2","bytesReceived":4000,"ready":false}]}}
]`

type fakeSource struct {
	in    report.Input
	calls int
}

func (f *fakeSource) Collect() report.Input {
	f.calls++
	return f.in
}

func newSource(t *testing.T) *fakeSource {
	t.Helper()
	samples, err := stability.Parse([]byte(twoPathRun))
	require.NoError(t, err)
	analysis, err := stability.Analyze(samples)
	require.NoError(t, err)

	return &fakeSource{in: report.Input{
		Stability: analysis,
		Network:   netlog.Analyze([]string{"✅ Latencia a 8.8.8.8: 20ms"}),
		Sources:   report.Sources{StabilityFile: "metrics-1.json", NetworkFile: "network-test-1.log"},
	}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// loaded runs Init and feeds the resulting message back into the model
func loaded(t *testing.T, source Source) Model {
	t.Helper()
	m := NewModel(source).WithBuilder(report.Builder{Now: func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}})

	msg := m.Init()()
	data, ok := msg.(DataMsg)
	require.True(t, ok, "Init() produced %T", msg)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	next, _ = next.(Model).Update(data)
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestInit_LoadsPathsInOrder(t *testing.T) {
	source := newSource(t)
	m := loaded(t, source)

	assert.Equal(t, 1, source.calls)
	require.Len(t, m.paths, 2)
	assert.Equal(t, "cam1", m.paths[0].Name)
	assert.Equal(t, "cam2", m.paths[1].Name)
	assert.Contains(t, m.reportText, "Generated: 2024-01-02 03:04:05")
	assert.False(t, m.loading)
}

func TestNavigation(t *testing.T) {
	m := loaded(t, newSource(t))

	m = press(m, "down", "down", "down")
	assert.Equal(t, 1, m.selectedIdx, "selection stops at the last path")

	m = press(m, "up", "up")
	assert.Equal(t, 0, m.selectedIdx)

	m = press(m, "enter")
	assert.Equal(t, DetailView, m.currentView)
	assert.Equal(t, "cam1", m.SelectedPath().Name)

	m = press(m, "down")
	assert.Equal(t, "cam2", m.SelectedPath().Name)

	m = press(m, "esc")
	assert.Equal(t, ListView, m.currentView)

	m = press(m, "tab")
	assert.Equal(t, ReportView, m.currentView)

	m = press(m, "tab")
	assert.Equal(t, ListView, m.currentView)
}

func TestReportScrollIsClamped(t *testing.T) {
	m := loaded(t, newSource(t))
	m = press(m, "tab")

	m = press(m, "up")
	assert.Equal(t, 0, m.scroll)

	m = press(m, "end")
	assert.Equal(t, m.reportLines()-m.pageSize(), m.scroll)

	m = press(m, "down")
	assert.Equal(t, m.reportLines()-m.pageSize(), m.scroll)

	view := m.View()
	assert.Contains(t, view, strings.Repeat("=", 60), "last page shows the closing rule")
}

func TestReloadKeyCollectsAgain(t *testing.T) {
	source := newSource(t)
	m := loaded(t, source)

	next, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).loading)

	msg := cmd()
	_, ok := msg.(DataMsg)
	assert.True(t, ok)
	assert.Equal(t, 2, source.calls)
}

func TestQuit(t *testing.T) {
	m := loaded(t, newSource(t))

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestInterruptions(t *testing.T) {
	m := loaded(t, newSource(t))

	assert.Empty(t, m.Interruptions("cam1"))
	got := m.Interruptions("cam2")
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-01T00:00:10Z", got[1].Timestamp)
}

func TestView(t *testing.T) {
	m := loaded(t, newSource(t))

	list := m.View()
	assert.Contains(t, list, "perfreport")
	assert.Contains(t, list, "cam1")
	assert.Contains(t, list, "cam2")
	assert.Contains(t, list, "Bytes received")

	detail := press(m, "down", "enter").View()
	assert.Contains(t, detail, "Interruptions (2)")
	assert.Contains(t, detail, "0 / 2")
	assert.Contains(t, detail, "00:00:10")
	assert.Contains(t, detail, "×", "not-ready samples are marked under the graph")
}

func TestView_NothingDiscovered(t *testing.T) {
	m := loaded(t, &fakeSource{})

	view := m.View()
	assert.Contains(t, view, "No metrics file found.")
	assert.Contains(t, view, report.InsufficientData)

	m = press(m, "enter")
	assert.Equal(t, ListView, m.currentView, "no detail view without paths")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedirectLogs(t *testing.T) {
	var terminal bytes.Buffer
	logging.SetWriter(&terminal)
	t.Cleanup(func() { logging.SetWriter(os.Stderr) })

	restore := redirectLogs(nil)
	logging.Warn("Collector", "discarded while viewing", nil)
	restore()
	assert.Empty(t, terminal.String())

	var logFile bytes.Buffer
	restore = redirectLogs(&logFile)
	logging.Warn("Collector", "kept in the log file", nil)
	restore()
	assert.Contains(t, logFile.String(), "kept in the log file")
	assert.Empty(t, terminal.String())

	logging.Warn("Collector", "back on the terminal", nil)
	assert.Contains(t, terminal.String(), "back on the terminal")
}

func TestGraphPoints(t *testing.T) {
	m := loaded(t, newSource(t))
	cam2 := m.paths[1].Analysis

	points := graphPoints(cam2)
	require.Len(t, points, 2)
	assert.Equal(t, components.GraphPoint{Label: "00:00:00", Value: 2000, Gap: true}, points[0])
	assert.Equal(t, components.GraphPoint{Label: "00:00:10", Value: 4000, Gap: true}, points[1])

	assert.Equal(t, "not a time", clockLabel("not a time"))
}
