package cli

import (
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/cutline/internal/config"
	"github.com/mrz1836/cutline/internal/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input.
	ExitInvalidInput = 2
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = "text"
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = "json"
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// Project is a YAML project file. Empty opens the demo project.
	Project string
	// FPS overrides playback.fps.
	FPS int
	// Width overrides timeline.viewport_width.
	Width float64
	// TickInterval overrides playback.tick_interval.
	TickInterval time.Duration
	// LogFile overrides log.file.
	LogFile string
	// NoLogFile disables the rotating log file.
	NoLogFile bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	pf.StringVarP(&flags.Project, "project", "p", "", "project YAML file (default: built-in demo)")
	pf.IntVar(&flags.FPS, "fps", 0, "frame rate (overrides playback.fps)")
	pf.Float64Var(&flags.Width, "width", 0, "viewport width in pixels (overrides timeline.viewport_width)")
	pf.DurationVar(&flags.TickInterval, "tick-interval", 0, "wall-clock time between playback ticks (overrides playback.tick_interval)")
	pf.StringVar(&flags.LogFile, "log-file", "", "log file path (overrides log.file)")
	pf.BoolVar(&flags.NoLogFile, "no-log-file", false, "do not write a log file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagsMutuallyExclusive("log-file", "no-log-file")
}

// BindGlobalFlags binds global flags to Viper for configuration file and
// environment variable support. The CUTLINE_ prefix is used for environment
// variables (e.g., CUTLINE_OUTPUT, CUTLINE_VERBOSE).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet", "project"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("CUTLINE")
	v.AutomaticEnv()

	return nil
}

// overrides returns the config values set on the command line. Zero values
// are ignored by config.LoadWithOverrides.
func (f *GlobalFlags) overrides() *config.Config {
	o := &config.Config{}
	o.Playback.FPS = f.FPS
	o.Playback.TickInterval = f.TickInterval
	o.Timeline.ViewportWidth = f.Width
	o.Log.File = f.LogFile
	return o
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// ExitCodeForError returns the appropriate exit code for the given error.
// Returns ExitSuccess (0) for nil errors, ExitInvalidInput (2) for user input
// errors (invalid flags, bad arguments, out-of-range values), and ExitError
// (1) for all other errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}

	for _, sentinel := range []error{
		errors.ErrInvalidOutputFormat,
		errors.ErrDomain,
		errors.ErrConfigInvalidTimeline,
		errors.ErrConfigInvalidPlayback,
		errors.ErrConfigInvalidLog,
	} {
		if stderrors.Is(err, sentinel) {
			return ExitInvalidInput
		}
	}

	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
		"at least one of the flags in the group",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
