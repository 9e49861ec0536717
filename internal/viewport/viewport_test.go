package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
)

func twoClips() []domain.Clip {
	return []domain.Clip{
		{ID: "a", TrackID: "v", Start: 0, Duration: 5},
		{ID: "b", TrackID: "v", Start: 5, Duration: 8},
	}
}

func TestContentWidth_ViewportWins(t *testing.T) {
	// 50*13 + 200 = 850 < 1000
	got, err := ContentWidth(twoClips(), 50, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, got, 0)
}

func TestContentWidth_ContentWins(t *testing.T) {
	got, err := ContentWidth(twoClips(), 100, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 1500.0, got, 0)
}

func TestContentWidth_NoClips(t *testing.T) {
	got, err := ContentWidth(nil, 50, 100)
	require.NoError(t, err)
	assert.InDelta(t, constants.ContentPaddingPx, got, 0)
}

func TestContentWidth_Bounds(t *testing.T) {
	clips := twoClips()
	for _, zoom := range []float64{0.5, 5, 50, 137, 500} {
		for _, vw := range []float64{0, 320, 1000, 4000} {
			got, err := ContentWidth(clips, zoom, vw)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, vw)
			assert.GreaterOrEqual(t, got, zoom*domain.MaxClipEnd(clips))
		}
	}
}

func TestContentWidth_InvalidZoom(t *testing.T) {
	_, err := ContentWidth(twoClips(), 0, 1000)
	require.ErrorIs(t, err, errors.ErrInvalidZoom)
}

func TestContentWidth_InvalidViewportWidth(t *testing.T) {
	for _, vw := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := ContentWidth(twoClips(), 50, vw)
		require.ErrorIs(t, err, errors.ErrDomain)
		require.ErrorIs(t, err, errors.ErrInvalidViewport)
	}
}

func TestZoomAround_Example(t *testing.T) {
	got, err := ZoomAround(100, 10, 800)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.Zoom, 0)
	assert.InDelta(t, 600.0, got.ScrollOffset, 0)
	assert.False(t, got.Clamped)
}

func TestZoomAround_ScrollNeverNegative(t *testing.T) {
	got, err := ZoomAround(50, 1, 800)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.ScrollOffset, 0)
}

func TestZoomAround_Clamps(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"below min", 1, constants.MinZoom},
		{"above max", 10000, constants.MaxZoom},
		{"infinite", math.Inf(1), constants.MaxZoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ZoomAround(tt.raw, 4, 800)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Zoom, 0)
			assert.True(t, got.Clamped)
			assert.InDelta(t, math.Max(0, 4*tt.want-400), got.ScrollOffset, 1e-9)
		})
	}
}

func TestZoomAround_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		zoom    float64
		center  float64
		width   float64
		wantErr error
	}{
		{"zero zoom", 0, 1, 800, errors.ErrInvalidZoom},
		{"negative zoom", -50, 1, 800, errors.ErrInvalidZoom},
		{"nan zoom", math.NaN(), 1, 800, errors.ErrInvalidZoom},
		{"negative center", 50, -1, 800, errors.ErrNegativeTime},
		{"negative width", 50, 1, -800, errors.ErrInvalidViewport},
		{"infinite center", 50, math.Inf(1), 800, errors.ErrNegativeTime},
		{"nan center", 50, math.NaN(), 800, errors.ErrNegativeTime},
		{"infinite width", 50, 1, math.Inf(1), errors.ErrInvalidViewport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ZoomAround(tt.zoom, tt.center, tt.width)
			require.ErrorIs(t, err, errors.ErrDomain)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestZoomAround_Idempotent(t *testing.T) {
	first, err := ZoomAround(137, 12.5, 900)
	require.NoError(t, err)
	second, err := ZoomAround(137, 12.5, 900)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestZoomAround_StableAtCurrentCenter(t *testing.T) {
	v := domain.ViewportState{Zoom: 80, ScrollOffset: 1234}
	const width = 700.0

	center, err := CenterTime(v, width)
	require.NoError(t, err)

	got, err := ZoomAround(v.Zoom, center, width)
	require.NoError(t, err)
	assert.InDelta(t, v.ScrollOffset, got.ScrollOffset, 1)
	assert.InDelta(t, v.Zoom, got.Zoom, 0)
}

func TestZoomSteps(t *testing.T) {
	l := DefaultLimits()

	in, err := l.ZoomIn(50, 10, 800)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, in.Zoom, 1e-9)

	out, err := l.ZoomOut(50, 10, 800)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, out.Zoom, 1e-9)

	reset, err := l.ResetZoom(10, 800)
	require.NoError(t, err)
	assert.InDelta(t, constants.DefaultZoom, reset.Zoom, 0)

	top, err := l.ZoomIn(constants.MaxZoom, 10, 800)
	require.NoError(t, err)
	assert.InDelta(t, constants.MaxZoom, top.Zoom, 0)
	assert.True(t, top.Clamped)
}

func TestLimits_CustomRange(t *testing.T) {
	l := DefaultLimits()
	l.MinZoom, l.MaxZoom = 10, 100

	got, err := l.ZoomAround(5, 0, 800)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, got.Zoom, 0)

	z, clamped := l.ClampZoom(55)
	assert.InDelta(t, 55.0, z, 0)
	assert.False(t, clamped)
}

func TestClampScroll(t *testing.T) {
	tests := []struct {
		name    string
		offset  float64
		width   float64
		content float64
		want    float64
	}{
		{"inside", 100, 800, 2000, 100},
		{"negative", -50, 800, 2000, 0},
		{"overscroll", 1500, 800, 2000, 1200},
		{"content narrower than viewport", 300, 800, 500, 0},
		{"nan", math.NaN(), 800, 2000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ClampScroll(tt.offset, tt.width, tt.content), 0)
		})
	}
}

func TestVisible(t *testing.T) {
	v := domain.ViewportState{Zoom: 100, ScrollOffset: 500}
	assert.True(t, Visible(5, v, 800))
	assert.True(t, Visible(13, v, 800))
	assert.False(t, Visible(4.9, v, 800))
	assert.False(t, Visible(13.1, v, 800))
}

func TestZoomResult_State(t *testing.T) {
	z := ZoomResult{Zoom: 75, ScrollOffset: 30, Clamped: true}
	assert.Equal(t, domain.ViewportState{Zoom: 75, ScrollOffset: 30}, z.State())
}
