package config

import (
	"github.com/mrz1836/cutline/internal/constants"
)

// DefaultConfig returns a new Config with the built-in defaults.
// These are the base layer that config files, environment variables,
// and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Timeline: TimelineConfig{
			DefaultZoom:   constants.DefaultZoom,
			MinZoom:       constants.MinZoom,
			MaxZoom:       constants.MaxZoom,
			PaddingPx:     constants.ContentPaddingPx,
			RulerBufferPx: constants.RulerBufferPx,
			MaxTicks:      constants.MaxTicks,
			ViewportWidth: constants.DefaultViewportWidthPx,
		},
		Playback: PlaybackConfig{
			FPS: constants.DefaultFPS,
		},
		Log: LogConfig{
			MaxSizeMB:  constants.LogMaxSizeMB,
			MaxBackups: constants.LogMaxBackups,
			MaxAge:     constants.LogMaxAge,
		},
	}
}
