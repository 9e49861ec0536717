// Package session owns the timeline state a host renders from: the project,
// playback, viewport and viewport width. Every mutation goes through one
// mutex, and every derived view position is computed from one snapshot.
package session

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/playback"
	"github.com/mrz1836/cutline/internal/timescale"
	"github.com/mrz1836/cutline/internal/viewport"
)

// Options configures a Session. Zero fields fall back to the package defaults.
type Options struct {
	FPS           int
	Limits        viewport.Limits
	DefaultZoom   float64
	ViewportWidth float64
	Logger        zerolog.Logger
}

// Snapshot is a value copy of the session state at one instant.
type Snapshot struct {
	Timeline      domain.Timeline      `json:"timeline"`
	Playback      domain.PlaybackState `json:"playback"`
	Viewport      domain.ViewportState `json:"viewport"`
	ViewportWidth float64              `json:"viewport_width"`
	FPS           int                  `json:"fps"`
	Magnet        bool                 `json:"magnet"`
	Snapping      bool                 `json:"snapping"`
}

// Session is the single source of truth for one open timeline.
// It is safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	limits      viewport.Limits
	defaultZoom float64
	timeline    domain.Timeline
	transport   *playback.Transport
	view        domain.ViewportState
	width       float64
	magnet      bool
	snapping    bool
	logger      zerolog.Logger
}

var _ playback.Advancer = (*Session)(nil)

// New validates tl and opens a stopped session at time zero.
func New(tl domain.Timeline, opts Options) (*Session, error) {
	if err := tl.Validate(); err != nil {
		return nil, errors.Wrap(err, "open session")
	}

	fps := opts.FPS
	if fps == 0 {
		fps = constants.DefaultFPS
	}
	transport, err := playback.NewTransport(tl.Project.Duration, fps)
	if err != nil {
		return nil, err
	}

	limits := opts.Limits
	if limits == (viewport.Limits{}) {
		limits = viewport.DefaultLimits()
	}

	defaultZoom := opts.DefaultZoom
	if defaultZoom == 0 {
		defaultZoom = constants.DefaultZoom
	}
	if err = timescale.ValidateZoom("New", defaultZoom); err != nil {
		return nil, err
	}
	defaultZoom, _ = limits.ClampZoom(defaultZoom)

	width := opts.ViewportWidth
	if width == 0 {
		width = constants.DefaultViewportWidthPx
	}
	if width < 0 || math.IsNaN(width) {
		return nil, errors.NewDomainError("New", "viewport_width", width, errors.ErrInvalidViewport)
	}

	return &Session{
		limits:      limits,
		defaultZoom: defaultZoom,
		timeline:    tl.Clone(),
		transport:   transport,
		view:        domain.ViewportState{Zoom: defaultZoom},
		width:       width,
		snapping:    true,
		logger:      opts.Logger.With().Str("component", "session").Logger(),
	}, nil
}

// Limits returns the zoom and virtualization bounds in effect.
func (s *Session) Limits() viewport.Limits {
	return s.limits
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Timeline:      s.timeline.Clone(),
		Playback:      s.transport.State(),
		Viewport:      s.view,
		ViewportWidth: s.width,
		FPS:           s.transport.FPS(),
		Magnet:        s.magnet,
		Snapping:      s.snapping,
	}
}

// Play starts playback.
func (s *Session) Play() domain.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.transport.Play()
	s.logger.Debug().Float64("current_time", st.CurrentTime).Msg("play")
	return st
}

// Pause stops playback in place.
func (s *Session) Pause() domain.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.transport.Pause()
	s.logger.Debug().Float64("current_time", st.CurrentTime).Msg("pause")
	return st
}

// TogglePlay flips between playing and paused.
func (s *Session) TogglePlay() domain.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.Toggle()
}

// Tick advances playback by dt seconds. It implements playback.Advancer so a
// Runner can drive the session directly.
func (s *Session) Tick(dt float64) (domain.PlaybackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.Tick(dt)
}

// Seek moves the playhead, clamped to the project.
func (s *Session) Seek(t float64) domain.ClampedAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	adj := s.transport.Seek(t)
	s.logAdjustment("seek", adj)
	return adj
}

// Step moves the playhead by whole frames.
func (s *Session) Step(frames int) domain.ClampedAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	adj := s.transport.Step(frames)
	s.logAdjustment("step", adj)
	return adj
}

// SeekPixel handles a click on the ruler at content pixel px: the pixel is
// mapped to a time, snapped to a frame when frames are legible, and clamped.
func (s *Session) SeekPixel(px float64) (domain.ClampedAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := timescale.PixelToTime(px, s.view.Zoom)
	if err != nil {
		return domain.ClampedAdjustment{}, err
	}
	if s.snapping {
		if t, err = timescale.SnapToFrame(t, s.view.Zoom, s.transport.FPS()); err != nil {
			return domain.ClampedAdjustment{}, err
		}
	}
	adj := s.transport.Seek(t)
	s.logAdjustment("seek_pixel", adj)
	return adj, nil
}

// ZoomTo sets the zoom, keeping the playhead at the center of the viewport.
func (s *Session) ZoomTo(zoom float64) (viewport.ZoomResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoomLocked("zoom_to", func(center float64) (viewport.ZoomResult, error) {
		return s.limits.ZoomAround(zoom, center, s.width)
	})
}

// ZoomIn zooms one step in around the playhead.
func (s *Session) ZoomIn() (viewport.ZoomResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoomLocked("zoom_in", func(center float64) (viewport.ZoomResult, error) {
		return s.limits.ZoomIn(s.view.Zoom, center, s.width)
	})
}

// ZoomOut zooms one step out around the playhead.
func (s *Session) ZoomOut() (viewport.ZoomResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoomLocked("zoom_out", func(center float64) (viewport.ZoomResult, error) {
		return s.limits.ZoomOut(s.view.Zoom, center, s.width)
	})
}

// ResetZoom returns to the configured default zoom around the playhead.
func (s *Session) ResetZoom() (viewport.ZoomResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zoomLocked("reset_zoom", func(center float64) (viewport.ZoomResult, error) {
		return s.limits.ZoomAround(s.defaultZoom, center, s.width)
	})
}

func (s *Session) zoomLocked(op string, apply func(center float64) (viewport.ZoomResult, error)) (viewport.ZoomResult, error) {
	res, err := apply(s.transport.State().CurrentTime)
	if err != nil {
		return viewport.ZoomResult{}, err
	}
	s.view = res.State()
	s.layoutLocked()
	res.ScrollOffset = s.view.ScrollOffset

	s.logger.Debug().
		Str("op", op).
		Float64("zoom", res.Zoom).
		Float64("scroll_offset", res.ScrollOffset).
		Bool("clamped", res.Clamped).
		Msg("zoom applied")
	return res, nil
}

// ScrollTo sets the scroll offset, clamped to the content.
func (s *Session) ScrollTo(px float64) domain.ClampedAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ScrollOffset = px
	s.layoutLocked()
	adj := domain.ClampedAdjustment{
		Requested: px,
		Applied:   s.view.ScrollOffset,
		Clamped:   s.view.ScrollOffset != px,
	}
	s.logAdjustment("scroll", adj)
	return adj
}

// ScrollBy moves the viewport by dx pixels.
func (s *Session) ScrollBy(dx float64) domain.ClampedAdjustment {
	s.mu.Lock()
	target := s.view.ScrollOffset + dx
	s.mu.Unlock()
	return s.ScrollTo(target)
}

// SetViewportWidth records the width the host is drawing into and re-clamps
// the scroll offset.
func (s *Session) SetViewportWidth(w float64) error {
	if w < 0 || math.IsNaN(w) {
		return errors.NewDomainError("SetViewportWidth", "viewport_width", w, errors.ErrInvalidViewport)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = w
	s.layoutLocked()
	return nil
}

// ToggleTrack flips one flag on a track and returns its new value.
func (s *Session) ToggleTrack(id string, p domain.TrackProperty) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	track, err := s.timeline.Track(id)
	if err != nil {
		return false, err
	}
	v, err := track.Toggle(p)
	if err != nil {
		return false, err
	}
	s.logger.Debug().Str("track_id", id).Str("property", string(p)).Bool("value", v).Msg("track toggled")
	return v, nil
}

// SetMagnet stores the magnet (ripple attach) flag. Editing operations
// that honor it live outside the engine.
func (s *Session) SetMagnet(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.magnet = on
}

// SetSnapping turns frame snapping of ruler clicks on or off.
func (s *Session) SetSnapping(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapping = on
}

// Frame resolves any pending overscroll and derives every view position
// from a single snapshot.
func (s *Session) Frame() (Frame, error) {
	s.mu.Lock()
	s.layoutLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return Derive(snap, s.limits)
}

// layoutLocked clamps the scroll offset to the current content width.
func (s *Session) layoutLocked() {
	content, err := s.limits.ContentWidth(s.timeline.Clips, s.view.Zoom, s.width)
	if err != nil {
		return
	}
	s.view.ScrollOffset = viewport.ClampScroll(s.view.ScrollOffset, s.width, content)
}

func (s *Session) logAdjustment(op string, adj domain.ClampedAdjustment) {
	ev := s.logger.Debug()
	if !adj.Clamped {
		ev = s.logger.Trace()
	}
	ev.Str("op", op).
		Float64("requested", adj.Requested).
		Float64("applied", adj.Applied).
		Bool("clamped", adj.Clamped).
		Msg("adjustment")
}
