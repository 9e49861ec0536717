// Package config provides configuration management for cutline with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (CUTLINE_* prefix)
//  3. Project config (.cutline/config.yaml)
//  4. Global config (~/.cutline/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for cutline.
type Config struct {
	// Timeline contains zoom limits and virtualization bounds.
	Timeline TimelineConfig `json:"timeline" yaml:"timeline" mapstructure:"timeline"`

	// Playback contains frame rate settings for the playback clock.
	Playback PlaybackConfig `json:"playback" yaml:"playback" mapstructure:"playback"`

	// Log contains settings for the rotating log file.
	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`
}

// TimelineConfig bounds the viewport.
type TimelineConfig struct {
	// DefaultZoom is the zoom a timeline opens at and resets to, in pixels per second.
	// Default: 50
	DefaultZoom float64 `json:"default_zoom" yaml:"default_zoom" mapstructure:"default_zoom"`

	// MinZoom is the lower zoom bound.
	// Default: 5
	MinZoom float64 `json:"min_zoom" yaml:"min_zoom" mapstructure:"min_zoom"`

	// MaxZoom is the upper zoom bound.
	// Default: 500
	MaxZoom float64 `json:"max_zoom" yaml:"max_zoom" mapstructure:"max_zoom"`

	// PaddingPx is the room added after the last clip.
	// Default: 200
	PaddingPx float64 `json:"padding_px" yaml:"padding_px" mapstructure:"padding_px"`

	// RulerBufferPx is rendered on each side of the visible ruler window.
	// Default: 500
	RulerBufferPx float64 `json:"ruler_buffer_px" yaml:"ruler_buffer_px" mapstructure:"ruler_buffer_px"`

	// MaxTicks caps the ticks emitted for one ruler render.
	// Default: 2000
	MaxTicks int `json:"max_ticks" yaml:"max_ticks" mapstructure:"max_ticks"`

	// ViewportWidth is the width assumed before a host reports one, in pixels.
	// Default: 1000
	ViewportWidth float64 `json:"viewport_width" yaml:"viewport_width" mapstructure:"viewport_width"`
}

// PlaybackConfig controls the playback clock.
type PlaybackConfig struct {
	// FPS is the frame rate. Each tick advances one frame.
	// Default: 30
	FPS int `json:"fps" yaml:"fps" mapstructure:"fps"`

	// TickInterval overrides the wall-clock time between ticks. Zero means
	// one frame period, which plays in real time.
	// Default: 0
	TickInterval time.Duration `json:"tick_interval" yaml:"tick_interval" mapstructure:"tick_interval"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// File is the log file path. Empty means ~/.cutline/logs/cutline.log.
	File string `json:"file" yaml:"file" mapstructure:"file"`

	// MaxSizeMB is the size at which the file is rotated.
	// Default: 10
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	// Default: 3
	MaxBackups int `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAge is how long rotated files are kept.
	// Default: 672h
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
}
