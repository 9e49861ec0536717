package domain

import "github.com/mrz1836/cutline/internal/constants"

// PlaybackState is the playhead position and transport status.
// CurrentTime stays within [0, project duration].
type PlaybackState struct {
	CurrentTime float64 `json:"current_time"`
	Playing     bool    `json:"playing"`
}

// Status returns the transport status matching Playing.
func (s PlaybackState) Status() constants.TransportStatus {
	if s.Playing {
		return constants.TransportPlaying
	}
	return constants.TransportStopped
}

// ViewportState is the horizontal view onto the timeline.
// Zoom is in pixels per second and lies in [MinZoom, MaxZoom].
// ScrollOffset may briefly exceed the content width; it is clamped on the
// next layout.
type ViewportState struct {
	Zoom         float64 `json:"zoom"`
	ScrollOffset float64 `json:"scroll_offset"`
}

// DefaultViewportState returns the view a timeline opens with.
func DefaultViewportState() ViewportState {
	return ViewportState{Zoom: constants.DefaultZoom}
}

// ClampedAdjustment reports a value the engine accepted after forcing it into
// range, so the caller can reconcile its UI with what was applied.
type ClampedAdjustment struct {
	Requested float64 `json:"requested"`
	Applied   float64 `json:"applied"`
	Clamped   bool    `json:"clamped"`
}
