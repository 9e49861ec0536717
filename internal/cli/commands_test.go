package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/session"
	"github.com/mrz1836/cutline/internal/timescale"
	"github.com/mrz1836/cutline/internal/tui"
)

func TestRulerCmd_JSON(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "ruler", "--output", "json")
	require.NoError(t, err)

	var report RulerReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.InDelta(t, 50.0, report.Zoom, 0)
	assert.False(t, report.ZoomClamped)
	assert.Equal(t, 30, report.FPS)
	assert.InDelta(t, 1100.0, report.ContentWidth, 0)
	assert.Equal(t, timescale.GranularitySecond, report.Ruler.Scale.Granularity)
	assert.InDelta(t, 1.0, report.Ruler.Scale.Interval, 0)
	assert.Equal(t, 0, report.Ruler.Range.First)
	require.NotEmpty(t, report.Ruler.Ticks)
	assert.True(t, report.Ruler.Ticks[0].Major)
}

func TestRulerCmd_Text(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "ruler", "--zoom", "250", "--cols", "80", "--list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "frame ticks every")
	assert.Contains(t, stdout, "┃")
	assert.Contains(t, stdout, "major")
	assert.Contains(t, stdout, "minor")
}

func TestRulerCmd_ClampsZoom(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "ruler", "--zoom", "9000", "--output", "json")
	require.NoError(t, err)

	var report RulerReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.InDelta(t, 500.0, report.Zoom, 0)
	assert.True(t, report.ZoomClamped)
}

func TestRulerCmd_Errors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "ruler", "--scroll", "-10")
	require.ErrorIs(t, err, errors.ErrInvalidViewport)

	_, _, err = execute(t, "ruler", "--zoom", "-2")
	require.ErrorIs(t, err, errors.ErrInvalidZoom)

	_, _, err = execute(t, "ruler", "--project", "missing.yaml")
	require.ErrorIs(t, err, errors.ErrProjectLoad)
}

func TestZoomCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantZoom    float64
		wantScroll  float64
		wantClamped bool
	}{
		{name: "to", args: []string{"--to", "100", "--center", "10"}, wantZoom: 100, wantScroll: 500},
		{name: "scroll floors at zero", args: []string{"--to", "100", "--center", "1"}, wantZoom: 100, wantScroll: 0},
		{name: "clamped high", args: []string{"--to", "1000"}, wantZoom: 500, wantClamped: true},
		{name: "clamped low", args: []string{"--to", "1"}, wantZoom: 5, wantClamped: true},
		{name: "step in", args: []string{"--step", "in"}, wantZoom: 60},
		{name: "step out", args: []string{"--step", "out", "--from", "100"}, wantZoom: 80},
		{name: "step reset", args: []string{"--step", "reset", "--center", "20"}, wantZoom: 50, wantScroll: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			stdout, _, err := execute(t, append([]string{"zoom", "--output", "json"}, tt.args...)...)
			require.NoError(t, err)

			var report ZoomReport
			require.NoError(t, json.Unmarshal([]byte(stdout), &report))
			assert.InDelta(t, tt.wantZoom, report.Zoom, 1e-9)
			assert.InDelta(t, tt.wantScroll, report.ScrollOffset, 1e-9)
			assert.Equal(t, tt.wantClamped, report.Clamped)
			assert.InDelta(t, report.ScrollOffset/report.Zoom, report.VisibleFrom, 1e-9)
		})
	}
}

func TestZoomCmd_Text(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "zoom", "--to", "1000")
	require.NoError(t, err)
	assert.Contains(t, stdout, "zoom clamped")
	assert.Contains(t, stdout, "zoom 500.00 px/s")
}

func TestZoomCmd_Errors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "zoom", "--step", "sideways")
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))

	_, _, err = execute(t, "zoom")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))

	_, _, err = execute(t, "zoom", "--to", "100", "--step", "in")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))

	_, _, err = execute(t, "zoom", "--to", "100", "--center", "-1")
	require.ErrorIs(t, err, errors.ErrNegativeTime)
}

func TestWidthCmd(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantContent float64
		wantScroll  float64
	}{
		{name: "defaults", wantContent: 1100, wantScroll: 100},
		{name: "viewport wider than content", args: []string{"--zoom", "10"}, wantContent: 1000, wantScroll: 0},
		{name: "wider viewport flag", args: []string{"--width", "1500"}, wantContent: 1500, wantScroll: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			stdout, _, err := execute(t, append([]string{"width", "--output", "json"}, tt.args...)...)
			require.NoError(t, err)

			var report WidthReport
			require.NoError(t, json.Unmarshal([]byte(stdout), &report))
			assert.InDelta(t, tt.wantContent, report.ContentWidth, 1e-9)
			assert.InDelta(t, tt.wantScroll, report.MaxScroll, 1e-9)
			assert.InDelta(t, 18.0, report.MaxClipEnd, 0)
		})
	}
}

func TestWidthCmd_Project(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir, shortProject)

	stdout, _, err := execute(t, "width", "--project", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "content width 1000.0 px")
	assert.Contains(t, stdout, "last clip ends at 0.200s")
}

func TestPlayCmd_ReachesEnd(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir, shortProject)

	stdout, stderr, err := execute(t, "play", "--project", path, "--tick-interval", "1ms", "--output", "json")
	require.NoError(t, err)

	var report PlayReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, StopReasonEnd, report.Reason)
	assert.Equal(t, 6, report.Ticks)
	assert.InDelta(t, 0.0, report.CurrentTime, 0)
	assert.Equal(t, "0:00:00", report.Timecode)
	assert.Contains(t, stderr, "playback stopped")
}

func TestPlayCmd_For(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "play", "--for", "30ms", "--from", "2", "--tick-interval", "1ms", "--output", "json")
	require.NoError(t, err)

	var report PlayReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, StopReasonDuration, report.Reason)
	assert.Positive(t, report.Ticks)
	assert.Greater(t, report.CurrentTime, 2.0)
	assert.InDelta(t, 2.0+float64(report.Ticks)/30, report.CurrentTime, 1e-9)
	assert.InDelta(t, report.CurrentTime*50, report.PlayheadPx, 1e-9)
}

func TestPlayCmd_Text(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir, shortProject)

	stdout, _, err := execute(t, "play", "--project", path, "--tick-interval", "1ms")
	require.NoError(t, err)
	assert.Contains(t, stdout, "reached the end after 6 frames")
}

func TestPlayCmd_Errors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "play", "--for", "-1s")
	require.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, _, err = execute(t, "play", "--from", "-3")
	require.ErrorIs(t, err, errors.ErrNegativeTime)
}

func TestMonitorCmd_RequiresTerminal(t *testing.T) {
	isolate(t)
	original := terminalCheck
	terminalCheck = func() bool { return false }
	t.Cleanup(func() { terminalCheck = original })

	_, _, err := execute(t, "monitor")
	require.ErrorIs(t, err, errors.ErrInteractiveRequired)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestMonitorCmd_Runs(t *testing.T) {
	isolate(t)
	originalCheck, originalRun := terminalCheck, runMonitorFunc
	t.Cleanup(func() { terminalCheck, runMonitorFunc = originalCheck, originalRun })

	var got tui.MonitorConfig
	terminalCheck = func() bool { return true }
	runMonitorFunc = func(_ context.Context, sess *session.Session, cfg tui.MonitorConfig) error {
		require.NotNil(t, sess)
		got = cfg
		return nil
	}

	_, _, err := execute(t, "monitor", "--fps", "24")
	require.NoError(t, err)
	assert.Equal(t, 24, got.FPS)
	assert.Contains(t, got.Title, "demo project")
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	t.Setenv("CUTLINE_TIMELINE_MAX_ZOOM", "800")

	stdout, _, err := execute(t, "config", "show", "--fps", "24")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fps: 24")
	assert.Contains(t, stdout, "max_zoom: 800")
	assert.Contains(t, stdout, "default_zoom: 50")
	assert.Contains(t, stdout, "# project: (none)")
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	original := terminalCheck
	terminalCheck = func() bool { return false }
	t.Cleanup(func() { terminalCheck = original })

	stdout, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote")

	path := filepath.Join(dir, ".cutline", "config.yaml")
	data, err := os.ReadFile(path) //#nosec G304 -- test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "playback:")

	_, _, err = execute(t, "config", "init")
	require.ErrorIs(t, err, errors.ErrConfigExists)

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	stdout, _, err = execute(t, "config", "show", "--output", "json")
	require.NoError(t, err)
	var report ConfigShowReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.NotEmpty(t, report.ProjectFile)
	assert.Equal(t, 30, report.Config.Playback.FPS)
}

func TestConfigInit_Confirm(t *testing.T) {
	dir := isolate(t)
	originalCheck, originalConfirm := terminalCheck, confirmOverwriteFunc
	t.Cleanup(func() { terminalCheck, confirmOverwriteFunc = originalCheck, originalConfirm })
	terminalCheck = func() bool { return true }

	path := filepath.Join(dir, ".cutline", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("playback:\n  fps: 24\n"), 0o600))

	tests := []struct {
		name      string
		answer    bool
		wantFPS24 bool
	}{
		{"declined keeps the file", false, true},
		{"accepted writes defaults", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var asked string
			confirmOverwriteFunc = func(p string) (bool, error) {
				asked = p
				return tt.answer, nil
			}

			_, _, err := execute(t, "config", "init")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(".cutline", "config.yaml"), asked)

			data, err := os.ReadFile(path) //#nosec G304 -- test path
			require.NoError(t, err)
			assert.Equal(t, tt.wantFPS24, strings.Contains(string(data), "fps: 24"))
		})
	}

	_, _, err := execute(t, "config", "init", "--output", "json")
	require.ErrorIs(t, err, errors.ErrConfigExists)
}
