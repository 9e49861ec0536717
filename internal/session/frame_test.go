package session

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cutline/internal/viewport"
)

func TestFrame_Layout(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetViewportWidth(1000))

	f, err := s.Frame()
	require.NoError(t, err)

	assert.InDelta(t, 1100.0, f.ContentWidth, 0)
	assert.Equal(t, "0:00:00", f.Timecode)
	assert.Equal(t, int64(0), f.Frame)
	require.Len(t, f.Lanes, 4)

	main := f.Lanes[0]
	assert.Equal(t, "v2", main.Track.ID)
	require.Len(t, main.Clips, 2)
	assert.InDelta(t, 250.0, main.Clips[1].Left, 0)
	assert.InDelta(t, 400.0, main.Clips[1].Width, 0)
	assert.True(t, main.Clips[1].Visible)

	assert.Empty(t, f.Lanes[3].Clips)
	assert.NotEmpty(t, f.Ruler.Ticks)
	assert.Len(t, f.Minimap.Clips, 4)
}

func TestFrame_ClipVisibility(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetViewportWidth(200))
	s.ScrollTo(500)

	f, err := s.Frame()
	require.NoError(t, err)

	main := f.Lanes[0]
	assert.False(t, main.Clips[0].Visible, "clip1 ends at 250px")
	assert.True(t, main.Clips[1].Visible, "clip2 spans 250..650px")
	assert.False(t, f.Lanes[1].Clips[0].Visible, "clip3 spans 100..300px")
}

// Every view that draws the playhead must agree after any zoom or scroll.
func TestFrame_PlayheadAlignedAcrossViews(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetViewportWidth(640))

	steps := []func(){
		func() { s.Seek(3.3) },
		func() { _, _ = s.ZoomIn() },
		func() { _, _ = s.ZoomTo(437) },
		func() { s.ScrollTo(2000) },
		func() { s.Seek(17.9) },
		func() { _, _ = s.ZoomOut() },
		func() { s.ScrollTo(0) },
		func() { _, _ = s.ResetZoom() },
		func() { require.NoError(t, s.SetViewportWidth(2000)) },
	}

	for i, step := range steps {
		step()
		f, err := s.Frame()
		require.NoError(t, err)

		want := f.Playback.CurrentTime * f.Viewport.Zoom
		assert.InDelta(t, want, f.Playhead.ContentPx, 1e-9, "step %d", i)
		assert.InDelta(t, math.Min(1, want/f.ContentWidth), f.Minimap.Playhead, 1e-12, "step %d", i)

		vp := f.Minimap.Viewport
		inMinimap := f.Minimap.Playhead >= vp.Start-1e-12 && f.Minimap.Playhead <= vp.Start+vp.Width+1e-12
		if want <= f.ContentWidth {
			assert.Equal(t, f.Playhead.Visible, inMinimap, "step %d", i)
		}
		assert.Equal(t, f.Playhead.Visible, f.Playhead.ViewPx >= 0 && f.Playhead.ViewPx <= f.ViewportWidth, "step %d", i)
	}
}

func TestDerive_InvalidZoom(t *testing.T) {
	snap := Snapshot{Timeline: fixture(), FPS: 30, ViewportWidth: 100}
	_, err := Derive(snap, viewport.DefaultLimits())
	require.Error(t, err)
}

func TestDerive_DoesNotClampScroll(t *testing.T) {
	s, err := New(fixture(), Options{Logger: zerolog.Nop()})
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Viewport.ScrollOffset = 99999
	f, err := Derive(snap, s.Limits())
	require.NoError(t, err)
	assert.InDelta(t, 99999.0, f.Viewport.ScrollOffset, 0)
	assert.False(t, f.Playhead.Visible)
}
