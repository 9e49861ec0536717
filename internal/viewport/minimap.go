package viewport

import (
	"math"

	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/timescale"
)

// Span is a range expressed as fractions of the content width.
type Span struct {
	Start float64 `json:"start"`
	Width float64 `json:"width"`
}

// MinimapClip places one clip on the minimap.
type MinimapClip struct {
	ID      string `json:"id"`
	TrackID string `json:"track_id"`
	Span    Span   `json:"span"`
}

// Minimap is the overview strip: the visible window, every clip, and the
// playhead, all as fractions in [0, 1] of the content width.
type Minimap struct {
	Viewport Span          `json:"viewport"`
	Clips    []MinimapClip `json:"clips"`
	Playhead float64       `json:"playhead"`
}

// BuildMinimap maps clips and the playhead through TimeToPixel at the
// current zoom, the same mapping the ruler and tracks use, so the playhead
// marker sits inside the viewport window exactly when the main view shows it.
func BuildMinimap(clips []domain.Clip, currentTime float64, v domain.ViewportState, viewportWidth, contentWidth float64) Minimap {
	m := Minimap{Clips: make([]MinimapClip, 0, len(clips))}
	if !(contentWidth > 0) {
		return m
	}

	frac := func(px float64) float64 {
		return math.Min(1, math.Max(0, px/contentWidth))
	}

	start := frac(v.ScrollOffset)
	m.Viewport = Span{Start: start, Width: frac(v.ScrollOffset+viewportWidth) - start}
	m.Playhead = frac(timescale.TimeToPixel(currentTime, v.Zoom))

	for _, c := range clips {
		s := frac(timescale.TimeToPixel(c.Start, v.Zoom))
		e := frac(timescale.TimeToPixel(c.End(), v.Zoom))
		m.Clips = append(m.Clips, MinimapClip{ID: c.ID, TrackID: c.TrackID, Span: Span{Start: s, Width: e - s}})
	}
	return m
}
