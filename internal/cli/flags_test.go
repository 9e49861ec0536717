package cli

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/cutline/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()
	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestGlobalFlags_Overrides(t *testing.T) {
	t.Parallel()

	f := &GlobalFlags{FPS: 24, Width: 1600, TickInterval: time.Millisecond, LogFile: "/tmp/x.log"}
	o := f.overrides()
	assert.Equal(t, 24, o.Playback.FPS)
	assert.Equal(t, time.Millisecond, o.Playback.TickInterval)
	assert.InDelta(t, 1600.0, o.Timeline.ViewportWidth, 0)
	assert.Equal(t, "/tmp/x.log", o.Log.File)
	assert.Zero(t, o.Timeline.DefaultZoom)
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "exit code 2 wrapper", err: errors.NewExitCode2Error(errors.ErrInteractiveRequired), want: ExitInvalidInput},
		{name: "output format", err: fmt.Errorf("%w: xml", errors.ErrInvalidOutputFormat), want: ExitInvalidInput},
		{name: "domain error", err: errors.NewDomainError("ZoomAround", "zoom", 0, errors.ErrInvalidZoom), want: ExitInvalidInput},
		{name: "invalid config", err: errors.Wrap(errors.ErrConfigInvalidTimeline, "bad"), want: ExitInvalidInput},
		{name: "unknown flag", err: stderrors.New("unknown flag: --zom"), want: ExitInvalidInput},
		{name: "missing required group", err: stderrors.New("at least one of the flags in the group [to step] is required"), want: ExitInvalidInput},
		{name: "project load", err: errors.Wrap(errors.ErrProjectLoad, "missing.yaml"), want: ExitError},
		{name: "other", err: stderrors.New("boom"), want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
