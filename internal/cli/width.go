package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
)

// WidthFlags holds flags specific to the width command.
type WidthFlags struct {
	Zoom float64
}

// WidthReport is the width command's JSON output.
type WidthReport struct {
	Zoom          float64 `json:"zoom"`
	ZoomClamped   bool    `json:"zoom_clamped"`
	ViewportWidth float64 `json:"viewport_width"`
	MaxClipEnd    float64 `json:"max_clip_end"`
	PaddingPx     float64 `json:"padding_px"`
	ContentWidth  float64 `json:"content_width"`
	MaxScroll     float64 `json:"max_scroll"`
}

// AddWidthCommand adds the width command to the root command.
func AddWidthCommand(root *cobra.Command, a *app) {
	root.AddCommand(newWidthCmd(a, &WidthFlags{}))
}

func newWidthCmd(a *app, flags *WidthFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "width",
		Short: "Show the scrollable content width of a project",
		Long: `Compute the scrollable width of the timeline: the end of the last clip at
the given zoom plus padding, never narrower than the viewport.

Examples:
  cutline width
  cutline width --zoom 120 --width 1600
  cutline width --project edit.yaml --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWidth(cmd, a, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.Zoom, "zoom", 0, "zoom in pixels per second (default: timeline.default_zoom)")

	return cmd
}

func runWidth(cmd *cobra.Command, a *app, flags *WidthFlags) error {
	ctx := cmd.Context()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	zoom, clamped, err := a.zoomOrDefault("width", flags.Zoom)
	if err != nil {
		return err
	}
	tl, err := a.timeline()
	if err != nil {
		return err
	}

	limits := a.limits()
	width := a.cfg.Timeline.ViewportWidth
	content, err := limits.ContentWidth(tl.Clips, zoom, width)
	if err != nil {
		return err
	}

	report := WidthReport{
		Zoom:          zoom,
		ZoomClamped:   clamped,
		ViewportWidth: width,
		MaxClipEnd:    tl.MaxClipEnd(),
		PaddingPx:     limits.PaddingPx,
		ContentWidth:  content,
		MaxScroll:     math.Max(0, content-width),
	}

	a.logger.Debug().
		Float64("zoom", zoom).
		Float64("content_width", content).
		Msg("content width computed")

	out := a.output(cmd)
	if a.flags.Output == OutputJSON {
		return out.JSON(report)
	}
	if clamped {
		out.Warning(fmt.Sprintf("zoom %g is outside [%g, %g]; using %g", flags.Zoom, limits.MinZoom, limits.MaxZoom, zoom))
	}
	out.Success(fmt.Sprintf("content width %.1f px at %.2f px/s", content, zoom))
	out.Info(fmt.Sprintf("last clip ends at %.3fs, padding %.0f px, scroll range 0 to %.1f px",
		report.MaxClipEnd, report.PaddingPx, report.MaxScroll))
	return nil
}
