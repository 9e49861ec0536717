package session

import (
	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/timescale"
	"github.com/mrz1836/cutline/internal/viewport"
)

// Playhead is the playhead position shared by the ruler and every track
// lane. ContentPx is in content coordinates; ViewPx is relative to the left
// edge of the viewport.
type Playhead struct {
	Time      float64 `json:"time"`
	ContentPx float64 `json:"content_px"`
	ViewPx    float64 `json:"view_px"`
	Visible   bool    `json:"visible"`
}

// ClipBox is a clip laid out in content pixels.
type ClipBox struct {
	Clip    domain.Clip `json:"clip"`
	Left    float64     `json:"left"`
	Width   float64     `json:"width"`
	Visible bool        `json:"visible"`
}

// Lane is one track row.
type Lane struct {
	Track domain.Track `json:"track"`
	Clips []ClipBox    `json:"clips"`
}

// Frame is everything a host needs to draw one refresh of the timeline.
type Frame struct {
	Playback      domain.PlaybackState `json:"playback"`
	Viewport      domain.ViewportState `json:"viewport"`
	ViewportWidth float64              `json:"viewport_width"`
	ContentWidth  float64              `json:"content_width"`
	Playhead      Playhead             `json:"playhead"`
	Ruler         viewport.Ruler       `json:"ruler"`
	Minimap       viewport.Minimap     `json:"minimap"`
	Lanes         []Lane               `json:"lanes"`
	Timecode      string               `json:"timecode"`
	Frame         int64                `json:"frame"`
}

// Derive computes a Frame from snap alone. The ruler playhead, the lane
// playhead and the minimap marker all come from the same time and zoom.
func Derive(snap Snapshot, limits viewport.Limits) (Frame, error) {
	v := snap.Viewport
	content, err := limits.ContentWidth(snap.Timeline.Clips, v.Zoom, snap.ViewportWidth)
	if err != nil {
		return Frame{}, err
	}

	ruler, err := limits.Ruler(v, snap.ViewportWidth, content, snap.FPS)
	if err != nil {
		return Frame{}, err
	}

	now := snap.Playback.CurrentTime
	px := timescale.TimeToPixel(now, v.Zoom)
	playhead := Playhead{
		Time:      now,
		ContentPx: px,
		ViewPx:    px - v.ScrollOffset,
		Visible:   viewport.Visible(now, v, snap.ViewportWidth),
	}

	return Frame{
		Playback:      snap.Playback,
		Viewport:      v,
		ViewportWidth: snap.ViewportWidth,
		ContentWidth:  content,
		Playhead:      playhead,
		Ruler:         ruler,
		Minimap:       viewport.BuildMinimap(snap.Timeline.Clips, now, v, snap.ViewportWidth, content),
		Lanes:         lanes(snap.Timeline, v, snap.ViewportWidth),
		Timecode:      timescale.FormatTimecode(now, snap.FPS, true),
		Frame:         timescale.FrameAt(now, snap.FPS),
	}, nil
}

func lanes(tl domain.Timeline, v domain.ViewportState, width float64) []Lane {
	byTrack := tl.ClipsByTrack()
	left, right := v.ScrollOffset, v.ScrollOffset+width

	out := make([]Lane, 0, len(tl.Tracks))
	for _, track := range tl.Tracks {
		clips := byTrack[track.ID]
		boxes := make([]ClipBox, 0, len(clips))
		for _, c := range clips {
			x := timescale.TimeToPixel(c.Start, v.Zoom)
			w := timescale.TimeToPixel(c.Duration, v.Zoom)
			boxes = append(boxes, ClipBox{
				Clip:    c,
				Left:    x,
				Width:   w,
				Visible: x < right && x+w > left,
			})
		}
		out = append(out, Lane{Track: track, Clips: boxes})
	}
	return out
}
