// Package logging builds the zerolog loggers cutline writes through: a
// console or JSON stream on stderr plus an optional rotating log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// zerologGlobalMu protects writes to the zerolog global logger.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.DurationFieldUnit = time.Millisecond
	})
}

// Options configures New.
type Options struct {
	Verbose bool
	Quiet   bool

	// File is the rotating log file. Empty disables file output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAge     time.Duration

	// Console overrides the stderr writer. Nil selects a console writer on
	// a TTY and JSON otherwise.
	Console io.Writer
}

// New creates the process logger and installs it as the zerolog global.
//
// Log levels are set as follows:
//   - Verbose: Debug level
//   - Quiet: Warn level
//   - default: Info level
//
// If the log file cannot be opened the logger falls back to console-only
// output and the error is returned alongside it. The returned closer is
// never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	configureZerologGlobals()

	console := opts.Console
	if console == nil {
		console = SelectOutput(os.Stderr)
	}

	var closer io.Closer = nopCloser{}
	writer := console
	var fileErr error
	if opts.File != "" {
		fw, err := newFileWriter(opts)
		if err != nil {
			fileErr = err
		} else {
			closer = fw
			writer = zerolog.MultiLevelWriter(console, fw)
		}
	}

	logger := zerolog.New(writer).Level(SelectLevel(opts.Verbose, opts.Quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger, closer, fileErr
}

// NewWithWriter creates a logger writing only to w. Intended for tests.
func NewWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	configureZerologGlobals()
	logger := zerolog.New(w).Level(SelectLevel(verbose, quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// SelectLevel maps the verbosity flags to a level.
func SelectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// SelectOutput returns a human-readable console writer when f is a terminal
// and NO_COLOR is unset, and f itself (JSON lines) otherwise.
func SelectOutput(f *os.File) io.Writer {
	if term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.Kitchen,
		}
	}
	return f
}

// PerFrame returns a child of l that keeps one event in every n. Playback
// logs from the tick loop go through it so a 60 fps run does not write
// sixty lines a second.
func PerFrame(l zerolog.Logger, n uint32) zerolog.Logger {
	if n <= 1 {
		return l
	}
	return l.Sample(&zerolog.BasicSampler{N: n})
}

func newFileWriter(opts Options) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     int(opts.MaxAge.Hours() / 24),
	}, nil
}

func setGlobalLogger(l zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
