// Package constants provides centralized constant values used throughout cutline.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory and file names used by cutline.
const (
	// CutlineHome is the hidden directory name where cutline stores its data.
	// This directory is created in the user's home directory.
	CutlineHome = ".cutline"

	// ConfigFileName is the name of the configuration file in CutlineHome
	// and in a project's .cutline directory.
	ConfigFileName = "config.yaml"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// LogFileName is the name of the rotating log file inside LogsDir.
	LogFileName = "cutline.log"
)

// Zoom limits and defaults, in pixels per second.
const (
	// MinZoom is the smallest zoom the viewport accepts.
	MinZoom = 5.0

	// MaxZoom is the largest zoom the viewport accepts.
	MaxZoom = 500.0

	// DefaultZoom is the zoom a fresh timeline opens at and the target of a zoom reset.
	DefaultZoom = 50.0

	// ZoomInFactor scales the zoom for one zoom-in step (keyboard or wheel).
	ZoomInFactor = 1.2

	// ZoomOutFactor scales the zoom for one zoom-out step.
	ZoomOutFactor = 0.8

	// FrameLegibleZoom is the zoom above which individual frames are wide
	// enough to draw as ticks and to snap the playhead to.
	FrameLegibleZoom = 200.0
)

// Layout and virtualization limits.
const (
	// ContentPaddingPx is added after the last clip so there is room to drop
	// material past the end of the timeline.
	ContentPaddingPx = 200.0

	// RulerBufferPx is rendered on each side of the visible ruler window.
	RulerBufferPx = 500.0

	// MaxTicks bounds the number of ticks emitted for a single ruler render.
	MaxTicks = 2000

	// MajorTickEpsilon is the absolute tolerance used to decide whether a tick
	// time falls on a major interval.
	MajorTickEpsilon = 1e-4

	// DefaultViewportWidthPx is used when the host has not reported a width yet.
	DefaultViewportWidthPx = 1000.0
)

// Playback defaults.
const (
	// DefaultFPS is the frame rate used when none is configured.
	DefaultFPS = 30

	// MaxFPS is the highest frame rate the playback clock accepts.
	MaxFPS = 240

	// DefaultProjectDuration is the length of the demo project, in seconds.
	DefaultProjectDuration = 20.0
)

// Log rotation defaults.
const (
	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAge is how long rotated log files are kept.
	LogMaxAge = 28 * 24 * time.Hour
)
