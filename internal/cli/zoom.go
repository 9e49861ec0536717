package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/viewport"
)

// Zoom steps accepted by --step.
const (
	zoomStepIn    = "in"
	zoomStepOut   = "out"
	zoomStepReset = "reset"
)

// ZoomFlags holds flags specific to the zoom command.
type ZoomFlags struct {
	To     float64
	Step   string
	From   float64
	Center float64
}

// ZoomReport is the zoom command's JSON output.
type ZoomReport struct {
	viewport.ZoomResult
	CenterTime    float64 `json:"center_time"`
	ViewportWidth float64 `json:"viewport_width"`
	VisibleFrom   float64 `json:"visible_from"`
	VisibleTo     float64 `json:"visible_to"`
}

// AddZoomCommand adds the zoom command to the root command.
func AddZoomCommand(root *cobra.Command, a *app) {
	root.AddCommand(newZoomCmd(a, &ZoomFlags{}))
}

func newZoomCmd(a *app, flags *ZoomFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zoom",
		Short: "Zoom around a time and show the resulting viewport",
		Long: `Apply a zoom level, clamped to the configured range, and scroll so the
center time sits in the middle of the viewport.

Either set the zoom directly with --to, or take one step from --from with
--step in, out or reset.

Examples:
  cutline zoom --to 100 --center 5
  cutline zoom --from 400 --step in --center 12.5
  cutline zoom --step reset --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runZoom(cmd, a, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.To, "to", 0, "target zoom in pixels per second")
	cmd.Flags().StringVar(&flags.Step, "step", "", "zoom step from --from: in, out or reset")
	cmd.Flags().Float64Var(&flags.From, "from", 0, "current zoom for --step (default: timeline.default_zoom)")
	cmd.Flags().Float64Var(&flags.Center, "center", 0, "time in seconds to keep centered")
	cmd.MarkFlagsMutuallyExclusive("to", "step")
	cmd.MarkFlagsOneRequired("to", "step")

	return cmd
}

func runZoom(cmd *cobra.Command, a *app, flags *ZoomFlags) error {
	ctx := cmd.Context()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	limits := a.limits()
	width := a.cfg.Timeline.ViewportWidth

	var res viewport.ZoomResult
	var err error
	switch flags.Step {
	case "":
		res, err = limits.ZoomAround(flags.To, flags.Center, width)
	case zoomStepIn, zoomStepOut:
		var from float64
		if from, _, err = a.zoomOrDefault("zoom", flags.From); err != nil {
			return err
		}
		if flags.Step == zoomStepIn {
			res, err = limits.ZoomIn(from, flags.Center, width)
		} else {
			res, err = limits.ZoomOut(from, flags.Center, width)
		}
	case zoomStepReset:
		res, err = limits.ZoomAround(a.cfg.Timeline.DefaultZoom, flags.Center, width)
	default:
		return errors.NewExitCode2Error(fmt.Errorf("%w: --step must be in, out or reset, got %q", errors.ErrInvalidArgument, flags.Step))
	}
	if err != nil {
		return err
	}

	report := ZoomReport{
		ZoomResult:    res,
		CenterTime:    flags.Center,
		ViewportWidth: width,
		VisibleFrom:   res.ScrollOffset / res.Zoom,
		VisibleTo:     (res.ScrollOffset + width) / res.Zoom,
	}
	a.logger.Debug().
		Float64("zoom", res.Zoom).
		Float64("scroll_offset", res.ScrollOffset).
		Bool("clamped", res.Clamped).
		Msg("zoom applied")

	out := a.output(cmd)
	if a.flags.Output == OutputJSON {
		return out.JSON(report)
	}
	if res.Clamped {
		out.Warning(fmt.Sprintf("zoom clamped to the range [%g, %g]", limits.MinZoom, limits.MaxZoom))
	}
	out.Success(fmt.Sprintf("zoom %.2f px/s, scroll %.1f px", res.Zoom, res.ScrollOffset))
	out.Info(fmt.Sprintf("visible %.3fs to %.3fs around %.3fs", report.VisibleFrom, report.VisibleTo, flags.Center))
	return nil
}
