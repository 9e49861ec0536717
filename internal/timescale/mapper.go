// Package timescale converts between timeline seconds and pixel offsets and
// chooses the ruler tick scale for a zoom level.
//
// Every view that places something at a time (ruler playhead, track playhead,
// clip edges, ticks) goes through TimeToPixel with the same zoom, which is
// what keeps them pixel-aligned.
package timescale

import (
	"math"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/errors"
)

// TimeToPixel returns the pixel offset of t seconds at zoom pixels per second.
func TimeToPixel(t, zoom float64) float64 {
	return t * zoom
}

// PixelToTime returns the time under pixel offset px at zoom pixels per second.
// The result is not clamped; see ClampTime.
func PixelToTime(px, zoom float64) (float64, error) {
	if err := ValidateZoom("PixelToTime", zoom); err != nil {
		return 0, err
	}
	return px / zoom, nil
}

// ClampTime limits t to [0, duration] and reports whether it had to move.
// NaN clamps to 0.
func ClampTime(t, duration float64) (float64, bool) {
	switch {
	case math.IsNaN(t) || t < 0:
		return 0, true
	case t > duration:
		return duration, true
	}
	return t, false
}

// ValidateZoom returns a DomainError for op when zoom is not a positive number.
func ValidateZoom(op string, zoom float64) error {
	if !(zoom > 0) {
		return errors.NewDomainError(op, "zoom", zoom, errors.ErrInvalidZoom)
	}
	return nil
}

// ValidateFPS returns a DomainError for op when fps is outside [1, MaxFPS].
func ValidateFPS(op string, fps int) error {
	if fps <= 0 || fps > constants.MaxFPS {
		return errors.NewDomainError(op, "fps", float64(fps), errors.ErrInvalidFPS)
	}
	return nil
}

// FrameDuration returns the length of one frame in seconds.
func FrameDuration(fps int) (float64, error) {
	if err := ValidateFPS("FrameDuration", fps); err != nil {
		return 0, err
	}
	return 1 / float64(fps), nil
}

// frameTolerance absorbs float error when t is an exact frame boundary
// computed as n/fps.
const frameTolerance = 1e-6

// FrameAt returns the index of the frame that contains t.
func FrameAt(t float64, fps int) int64 {
	if t <= 0 {
		return 0
	}
	return int64(math.Floor(t*float64(fps) + frameTolerance))
}

// SnapToFrame rounds t to the nearest frame boundary when zoom is high enough
// for single frames to be visible. At lower zooms t is returned unchanged.
func SnapToFrame(t, zoom float64, fps int) (float64, error) {
	if err := ValidateFPS("SnapToFrame", fps); err != nil {
		return 0, err
	}
	if zoom <= constants.FrameLegibleZoom {
		return t, nil
	}
	f := float64(fps)
	return math.Round(t*f) / f, nil
}
