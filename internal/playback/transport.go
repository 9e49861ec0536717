// Package playback advances the playhead. Transport is the Stopped/Playing
// state machine; Runner drives any Advancer from a periodic ticker with
// deterministic cancellation.
package playback

import (
	"math"

	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/timescale"
)

// endTolerance is how close to a duration that is not a whole number of
// frames the playhead must come to count as the end.
const endTolerance = 1e-9

// alignTolerance decides whether duration*fps is a whole number of frames.
const alignTolerance = 1e-6

// Transport holds the playback state for one project.
//
// Transport is not safe for concurrent use; the host serializes access
// (see session.Session).
//
// The playhead is kept as a whole frame index plus a sub-frame remainder in
// seconds, and CurrentTime is derived from them, so long runs of ticks do
// not accumulate rounding error.
type Transport struct {
	duration float64
	fps      int
	state    domain.PlaybackState

	frame int64
	rem   float64

	// endFrame is round(duration*fps); aligned is set when that is exact.
	endFrame int64
	aligned  bool
}

// NewTransport returns a stopped transport at time zero.
func NewTransport(duration float64, fps int) (*Transport, error) {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, errors.NewDomainError("NewTransport", "duration", duration, errors.ErrInvalidDuration)
	}
	if err := timescale.ValidateFPS("NewTransport", fps); err != nil {
		return nil, err
	}
	frames := duration * float64(fps)
	endFrame := int64(math.Round(frames))
	return &Transport{
		duration: duration,
		fps:      fps,
		endFrame: endFrame,
		aligned:  math.Abs(frames-float64(endFrame)) < alignTolerance,
	}, nil
}

// State returns a copy of the playback state.
func (t *Transport) State() domain.PlaybackState {
	return t.state
}

// Duration returns the media length in seconds.
func (t *Transport) Duration() float64 {
	return t.duration
}

// FPS returns the frame rate.
func (t *Transport) FPS() int {
	return t.fps
}

// FrameDuration returns the time one tick advances.
func (t *Transport) FrameDuration() float64 {
	return 1 / float64(t.fps)
}

// Frame returns the index of the frame under the playhead.
func (t *Transport) Frame() int64 {
	return t.frame
}

// position derives the playhead time from the frame index and remainder.
func (t *Transport) position() float64 {
	return float64(t.frame)/float64(t.fps) + t.rem
}

// atEnd compares frame indices when the duration is a whole number of
// frames, and falls back to comparing times otherwise.
func (t *Transport) atEnd() bool {
	if t.aligned {
		return t.frame >= t.endFrame
	}
	return t.position() >= t.duration-endTolerance
}

// setPosition splits pos into a frame index and remainder.
func (t *Transport) setPosition(pos float64) {
	t.frame = timescale.FrameAt(pos, t.fps)
	t.rem = pos - float64(t.frame)/float64(t.fps)
	if t.rem < 0 {
		t.rem = 0
	}
}

func (t *Transport) rewind() {
	t.frame, t.rem = 0, 0
	t.state.CurrentTime = 0
}

// Play starts playback. Playing from the very end rewinds first so play
// always has media to run through.
func (t *Transport) Play() domain.PlaybackState {
	if t.atEnd() {
		t.rewind()
	}
	t.state.Playing = true
	return t.state
}

// Pause stops playback, leaving the playhead where it is.
func (t *Transport) Pause() domain.PlaybackState {
	t.state.Playing = false
	return t.state
}

// Toggle flips between Play and Pause.
func (t *Transport) Toggle() domain.PlaybackState {
	if t.state.Playing {
		return t.Pause()
	}
	return t.Play()
}

// Seek moves the playhead to target, clamped to [0, duration]. The play
// state is unchanged.
func (t *Transport) Seek(target float64) domain.ClampedAdjustment {
	applied, clamped := timescale.ClampTime(target, t.duration)
	t.setPosition(applied)
	t.state.CurrentTime = applied
	return domain.ClampedAdjustment{Requested: target, Applied: applied, Clamped: clamped}
}

// Step moves the playhead by frames whole frames from the frame it is on,
// clamped to the media. The play state is unchanged.
func (t *Transport) Step(frames int) domain.ClampedAdjustment {
	target := float64(t.Frame()+int64(frames)) / float64(t.fps)
	return t.Seek(target)
}

// Tick advances the playhead by dt seconds while playing. Reaching the end
// stops playback and rewinds to zero. A stopped transport ignores ticks.
func (t *Transport) Tick(dt float64) (domain.PlaybackState, error) {
	if dt < 0 || math.IsNaN(dt) {
		return t.state, errors.NewDomainError("Tick", "dt", dt, errors.ErrNegativeTime)
	}
	if !t.state.Playing {
		return t.state, nil
	}

	if dt >= t.duration {
		t.stopAtEnd()
		return t.state, nil
	}

	fps := float64(t.fps)
	total := t.rem + dt
	whole := math.Floor(total*fps + alignTolerance)
	t.frame += int64(whole)
	t.rem = total - whole/fps
	if t.rem < 0 {
		t.rem = 0
	}

	if t.atEnd() {
		t.stopAtEnd()
		return t.state, nil
	}
	t.state.CurrentTime = t.position()
	return t.state, nil
}

func (t *Transport) stopAtEnd() {
	t.rewind()
	t.state.Playing = false
}
