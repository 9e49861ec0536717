package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/tui"
)

// AddMonitorCommand adds the monitor command to the root command.
func AddMonitorCommand(root *cobra.Command, a *app) {
	root.AddCommand(newMonitorCmd(a))
}

// runMonitorFunc runs the interactive monitor. Tests replace it.
//
//nolint:gochecknoglobals // Required for test injection of the full-screen program
var runMonitorFunc = tui.RunMonitor

func newMonitorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Open the interactive timeline monitor",
		Long: `Open a full-screen timeline with ruler, track lanes, minimap and a live
playhead.

Keys:
  space     play / pause
  ← →       step one frame
  + - 0     zoom in, zoom out, reset zoom
  h l       scroll left, scroll right
  g G       jump to start, jump to end
  s m       toggle snapping, toggle magnet
  ?         full help
  q         quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMonitor(cmd, a)
		},
	}
}

func runMonitor(cmd *cobra.Command, a *app) error {
	if a.flags.Output == OutputJSON || !terminalCheck() {
		return errors.NewExitCode2Error(errors.Wrap(errors.ErrInteractiveRequired, "monitor needs a terminal"))
	}

	sess, err := a.openSession()
	if err != nil {
		return err
	}

	a.logger.Info().Str("project", a.projectTitle()).Msg("monitor opened")
	err = runMonitorFunc(cmd.Context(), sess, tui.MonitorConfig{
		FPS:      a.cfg.Playback.FPS,
		Interval: a.cfg.Playback.TickInterval,
		Title:    "cutline · " + a.projectTitle(),
		Logger:   a.logger,
	})
	if err != nil {
		return errors.Wrap(err, "monitor")
	}
	a.logger.Info().Msg("monitor closed")
	return nil
}
