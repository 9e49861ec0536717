package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/logging"
	"github.com/mrz1836/cutline/internal/playback"
	"github.com/mrz1836/cutline/internal/session"
	"github.com/mrz1836/cutline/internal/signal"
	"github.com/mrz1836/cutline/internal/timescale"
)

// Reasons a play run ended.
const (
	StopReasonEnd         = "end"
	StopReasonDuration    = "duration"
	StopReasonInterrupted = "interrupted"
)

// PlayFlags holds flags specific to the play command.
type PlayFlags struct {
	For  time.Duration
	From float64
}

// PlayReport is the play command's JSON output.
type PlayReport struct {
	Reason      string  `json:"reason"`
	Ticks       int     `json:"ticks"`
	CurrentTime float64 `json:"current_time"`
	Frame       int64   `json:"frame"`
	Timecode    string  `json:"timecode"`
	PlayheadPx  float64 `json:"playhead_px"`
}

// AddPlayCommand adds the play command to the root command.
func AddPlayCommand(root *cobra.Command, a *app) {
	root.AddCommand(newPlayCmd(a, &PlayFlags{}))
}

func newPlayCmd(a *app, flags *PlayFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the project in real time and log the playhead",
		Long: `Run the playback clock, advancing one frame per tick and logging the
playhead position about once a second. Playback stops at the end of the
project, after --for, or on Ctrl+C. No tick is applied after the stop.

Examples:
  cutline play
  cutline play --for 5s --from 2.5
  cutline play --fps 60 --tick-interval 1ms --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, a, flags)
		},
	}

	cmd.Flags().DurationVar(&flags.For, "for", 0, "stop after this much wall-clock time (default: play to the end)")
	cmd.Flags().Float64Var(&flags.From, "from", 0, "start time in seconds")

	return cmd
}

func runPlay(cmd *cobra.Command, a *app, flags *PlayFlags) error {
	if flags.For < 0 {
		return errors.NewExitCode2Error(fmt.Errorf("%w: --for must not be negative, got %s", errors.ErrInvalidArgument, flags.For))
	}

	sess, err := a.openSession()
	if err != nil {
		return err
	}
	if flags.From != 0 {
		if flags.From < 0 || math.IsNaN(flags.From) {
			return errors.NewDomainError("play", "from", flags.From, errors.ErrNegativeTime)
		}
		sess.Seek(flags.From)
	}

	h := signal.NewHandler(cmd.Context())
	defer h.Stop()

	runCtx := h.Context()
	if flags.For > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, flags.For)
		defer cancel()
	}

	fps := a.cfg.Playback.FPS
	frameLog := logging.PerFrame(a.logger.With().Str("component", "play").Logger(), uint32(fps)) //nolint:gosec // fps is validated to [1, MaxFPS]
	ticks := 0
	runner, err := playback.NewRunner(sess, playback.RunnerConfig{
		FPS:      fps,
		Interval: a.cfg.Playback.TickInterval,
		Logger:   a.logger,
		OnTick: func(st domain.PlaybackState) {
			ticks++
			frameLog.Info().
				Float64("time", st.CurrentTime).
				Float64("playhead_px", timescale.TimeToPixel(st.CurrentTime, a.cfg.Timeline.DefaultZoom)).
				Msg("playhead")
		},
	})
	if err != nil {
		return err
	}

	sess.Play()
	if err = runner.Start(runCtx); err != nil {
		return err
	}
	a.logger.Info().
		Float64("from", sess.Snapshot().Playback.CurrentTime).
		Int("fps", fps).
		Dur("interval", runner.Interval()).
		Msg("playback started")

	runErr := runner.Wait()
	if stopErr := runner.Stop(); runErr == nil {
		runErr = stopErr
	}
	sess.Pause()
	if runErr != nil {
		return runErr
	}

	report := playReport(sess.Snapshot(), ticks, a.cfg.Timeline.DefaultZoom)
	switch {
	case signal.WasInterrupted(h.Context()):
		report.Reason = StopReasonInterrupted
	case runCtx.Err() != nil:
		report.Reason = StopReasonDuration
	default:
		report.Reason = StopReasonEnd
	}
	a.logger.Info().
		Str("reason", report.Reason).
		Int("ticks", report.Ticks).
		Float64("time", report.CurrentTime).
		Msg("playback stopped")

	out := a.output(cmd)
	if a.flags.Output == OutputJSON {
		return out.JSON(report)
	}
	switch report.Reason {
	case StopReasonInterrupted:
		out.Warning(fmt.Sprintf("interrupted at %s (frame %d)", report.Timecode, report.Frame))
	case StopReasonDuration:
		out.Success(fmt.Sprintf("stopped at %s (frame %d) after %s", report.Timecode, report.Frame, flags.For))
	default:
		out.Success(fmt.Sprintf("reached the end after %d frames; playhead back at %s", report.Ticks, report.Timecode))
	}
	return nil
}

func playReport(snap session.Snapshot, ticks int, zoom float64) PlayReport {
	t := snap.Playback.CurrentTime
	return PlayReport{
		Ticks:       ticks,
		CurrentTime: t,
		Frame:       timescale.FrameAt(t, snap.FPS),
		Timecode:    timescale.FormatTimecode(t, snap.FPS, true),
		PlayheadPx:  timescale.TimeToPixel(t, zoom),
	}
}
