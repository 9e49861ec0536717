package config

import (
	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Zoom bounds must be positive with min_zoom <= default_zoom <= max_zoom
//   - Padding and ruler buffer must not be negative
//   - max_ticks and viewport_width must be positive
//   - fps must be between 1 and constants.MaxFPS; tick_interval must not be negative
//   - Log rotation values must not be negative, and max_size_mb must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateTimelineConfig(&cfg.Timeline); err != nil {
		return err
	}

	if err := validatePlaybackConfig(&cfg.Playback); err != nil {
		return err
	}

	return validateLogConfig(&cfg.Log)
}

func validateTimelineConfig(cfg *TimelineConfig) error {
	if !(cfg.MinZoom > 0) {
		return errors.Wrapf(errors.ErrConfigInvalidTimeline,
			"timeline.min_zoom must be positive, got %g", cfg.MinZoom)
	}
	if !(cfg.MaxZoom >= cfg.MinZoom) {
		return errors.Wrapf(errors.ErrConfigInvalidTimeline,
			"timeline.max_zoom (%g) must not be below timeline.min_zoom (%g)", cfg.MaxZoom, cfg.MinZoom)
	}
	if cfg.DefaultZoom < cfg.MinZoom || cfg.DefaultZoom > cfg.MaxZoom {
		return errors.Wrapf(errors.ErrConfigInvalidTimeline,
			"timeline.default_zoom must be within [%g, %g], got %g", cfg.MinZoom, cfg.MaxZoom, cfg.DefaultZoom)
	}
	if cfg.PaddingPx < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidTimeline,
			"timeline.padding_px must not be negative, got %g", cfg.PaddingPx)
	}
	if cfg.RulerBufferPx < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidTimeline,
			"timeline.ruler_buffer_px must not be negative, got %g", cfg.RulerBufferPx)
	}
	if cfg.MaxTicks < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidTimeline,
			"timeline.max_ticks must be positive, got %d", cfg.MaxTicks)
	}
	if !(cfg.ViewportWidth > 0) {
		return errors.Wrapf(errors.ErrConfigInvalidTimeline,
			"timeline.viewport_width must be positive, got %g", cfg.ViewportWidth)
	}
	return nil
}

func validatePlaybackConfig(cfg *PlaybackConfig) error {
	if cfg.FPS < 1 || cfg.FPS > constants.MaxFPS {
		return errors.Wrapf(errors.ErrConfigInvalidPlayback,
			"playback.fps must be between 1 and %d, got %d", constants.MaxFPS, cfg.FPS)
	}
	if cfg.TickInterval < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidPlayback,
			"playback.tick_interval must not be negative, got %s", cfg.TickInterval)
	}
	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	if cfg.MaxSizeMB < 1 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_size_mb must be positive, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_backups must not be negative, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAge < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_age must not be negative, got %s", cfg.MaxAge)
	}
	return nil
}
