// Package viewport computes the scrollable geometry of the timeline: content
// width, zoom focused on a time, scroll clamping, and which ruler ticks fall
// inside the visible window.
package viewport

import (
	"math"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/timescale"
)

// Limits bounds zoom and virtualization. The zero value is not usable; start
// from DefaultLimits.
type Limits struct {
	// MinZoom and MaxZoom bound the zoom in pixels per second.
	MinZoom float64
	MaxZoom float64
	// PaddingPx is the room added after the last clip.
	PaddingPx float64
	// BufferPx is rendered on each side of the visible ruler window.
	BufferPx float64
	// MaxTicks caps the ticks emitted for one ruler render.
	MaxTicks int
}

// DefaultLimits returns the stock zoom range and virtualization bounds.
func DefaultLimits() Limits {
	return Limits{
		MinZoom:   constants.MinZoom,
		MaxZoom:   constants.MaxZoom,
		PaddingPx: constants.ContentPaddingPx,
		BufferPx:  constants.RulerBufferPx,
		MaxTicks:  constants.MaxTicks,
	}
}

// ZoomResult is the viewport after a zoom. Clamped is set when the requested
// zoom was outside [MinZoom, MaxZoom] and had to be adjusted.
type ZoomResult struct {
	Zoom         float64 `json:"zoom"`
	ScrollOffset float64 `json:"scroll_offset"`
	Clamped      bool    `json:"clamped"`
}

// State returns the result as a ViewportState.
func (z ZoomResult) State() domain.ViewportState {
	return domain.ViewportState{Zoom: z.Zoom, ScrollOffset: z.ScrollOffset}
}

// ContentWidth returns the pixel width of the scrollable area: the end of the
// last clip plus padding, but never narrower than the viewport.
func (l Limits) ContentWidth(clips []domain.Clip, zoom, viewportWidth float64) (float64, error) {
	const op = "ContentWidth"
	if err := timescale.ValidateZoom(op, zoom); err != nil {
		return 0, err
	}
	if err := validateWidth(op, "viewport_width", viewportWidth); err != nil {
		return 0, err
	}
	content := timescale.TimeToPixel(domain.MaxClipEnd(clips), zoom) + l.PaddingPx
	return math.Max(content, viewportWidth), nil
}

// ClampZoom limits zoom to [MinZoom, MaxZoom] and reports whether it moved.
func (l Limits) ClampZoom(zoom float64) (float64, bool) {
	switch {
	case zoom < l.MinZoom:
		return l.MinZoom, true
	case zoom > l.MaxZoom:
		return l.MaxZoom, true
	}
	return zoom, false
}

// ZoomAround applies newZoomRaw, clamped to the zoom range, and scrolls so
// centerTime sits in the middle of the viewport. Calling it again with the
// same arguments returns the same result.
func (l Limits) ZoomAround(newZoomRaw, centerTime, viewportWidth float64) (ZoomResult, error) {
	const op = "ZoomAround"
	if err := timescale.ValidateZoom(op, newZoomRaw); err != nil {
		return ZoomResult{}, err
	}
	if centerTime < 0 || math.IsNaN(centerTime) || math.IsInf(centerTime, 1) {
		return ZoomResult{}, errors.NewDomainError(op, "center_time", centerTime, errors.ErrNegativeTime)
	}
	if err := validateWidth(op, "viewport_width", viewportWidth); err != nil {
		return ZoomResult{}, err
	}

	zoom, clamped := l.ClampZoom(newZoomRaw)
	scroll := math.Max(0, timescale.TimeToPixel(centerTime, zoom)-viewportWidth/2)
	return ZoomResult{Zoom: zoom, ScrollOffset: scroll, Clamped: clamped}, nil
}

// ZoomIn multiplies the current zoom by ZoomInFactor around centerTime.
func (l Limits) ZoomIn(current, centerTime, viewportWidth float64) (ZoomResult, error) {
	return l.ZoomAround(current*constants.ZoomInFactor, centerTime, viewportWidth)
}

// ZoomOut multiplies the current zoom by ZoomOutFactor around centerTime.
func (l Limits) ZoomOut(current, centerTime, viewportWidth float64) (ZoomResult, error) {
	return l.ZoomAround(current*constants.ZoomOutFactor, centerTime, viewportWidth)
}

// ResetZoom returns to DefaultZoom around centerTime.
func (l Limits) ResetZoom(centerTime, viewportWidth float64) (ZoomResult, error) {
	return l.ZoomAround(constants.DefaultZoom, centerTime, viewportWidth)
}

// ClampScroll resolves overscroll: the result lies in
// [0, max(0, contentWidth-viewportWidth)].
func ClampScroll(offset, viewportWidth, contentWidth float64) float64 {
	if math.IsNaN(offset) {
		return 0
	}
	maxOffset := math.Max(0, contentWidth-viewportWidth)
	return math.Min(math.Max(0, offset), maxOffset)
}

// CenterTime returns the time at the middle of the viewport.
func CenterTime(v domain.ViewportState, viewportWidth float64) (float64, error) {
	return timescale.PixelToTime(v.ScrollOffset+viewportWidth/2, v.Zoom)
}

// Visible reports whether t is drawn inside the viewport.
func Visible(t float64, v domain.ViewportState, viewportWidth float64) bool {
	px := timescale.TimeToPixel(t, v.Zoom)
	return px >= v.ScrollOffset && px <= v.ScrollOffset+viewportWidth
}

func validateWidth(op, field string, w float64) error {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 1) {
		return errors.NewDomainError(op, field, w, errors.ErrInvalidViewport)
	}
	return nil
}

// ContentWidth uses DefaultLimits.
func ContentWidth(clips []domain.Clip, zoom, viewportWidth float64) (float64, error) {
	return DefaultLimits().ContentWidth(clips, zoom, viewportWidth)
}

// ZoomAround uses DefaultLimits.
func ZoomAround(newZoomRaw, centerTime, viewportWidth float64) (ZoomResult, error) {
	return DefaultLimits().ZoomAround(newZoomRaw, centerTime, viewportWidth)
}
