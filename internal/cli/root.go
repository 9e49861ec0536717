// Package cli provides the command-line interface for cutline.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/cutline/internal/config"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/logging"
	"github.com/mrz1836/cutline/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

func setLogger(l zerolog.Logger) {
	globalLoggerMu.Lock()
	globalLogger = l
	globalLoggerMu.Unlock()
}

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	flags  *GlobalFlags
	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
}

// newRootCmd creates and returns the root command for the cutline CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()
	a := &app{flags: flags}

	cmd := &cobra.Command{
		Use:   "cutline",
		Short: "cutline - timeline engine for video editors",
		Long: `cutline maps time to pixels for a multi-track editing timeline, keeps the
viewport and ruler in sync as you zoom and scroll, and drives a frame-accurate
playhead.

Features:
  • Adaptive ruler ticks from single frames to 30 second marks
  • Zoom anchored on the playhead with clamped scrolling
  • Frame-accurate playback clock with deterministic stop
  • Interactive terminal monitor`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			return a.init(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddRulerCommand(cmd, a)
	AddZoomCommand(cmd, a)
	AddWidthCommand(cmd, a)
	AddPlayCommand(cmd, a)
	AddMonitorCommand(cmd, a)
	AddConfigCommand(cmd, a)

	return cmd
}

// init loads the configuration with flag overrides and starts logging.
func (a *app) init(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadWithOverrides(ctx, a.flags.overrides())
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := logging.Options{
		Verbose:    a.flags.Verbose,
		Quiet:      a.flags.Quiet,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		opts.Console = logging.SelectOutput(f)
	} else {
		opts.Console = cmd.ErrOrStderr()
	}
	if !a.flags.NoLogFile {
		if opts.File, err = config.LogFilePath(cfg.Log); err != nil {
			return err
		}
	}

	logger, closer, fileErr := logging.New(opts)
	a.logger, a.closer = logger, closer
	setLogger(logger)
	if fileErr != nil {
		logger.Warn().Err(fileErr).Msg("log file unavailable, logging to console only")
	}

	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// A failing command's error is printed to stderr in the selected output
// format before it is returned.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		format := flags.Output
		if !IsValidOutputFormat(format) {
			format = OutputText
		}
		tui.NewOutput(cmd.ErrOrStderr(), format).Error(err)
	}
	return err
}
