package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/session"
	"github.com/mrz1836/cutline/internal/tui"
	"github.com/mrz1836/cutline/internal/viewport"
)

// RulerFlags holds flags specific to the ruler command.
type RulerFlags struct {
	Zoom   float64
	Scroll float64
	List   bool
	Cols   int
}

// RulerReport is the ruler command's JSON output.
type RulerReport struct {
	Zoom          float64        `json:"zoom"`
	ZoomClamped   bool           `json:"zoom_clamped"`
	ScrollOffset  float64        `json:"scroll_offset"`
	ViewportWidth float64        `json:"viewport_width"`
	ContentWidth  float64        `json:"content_width"`
	FPS           int            `json:"fps"`
	Ruler         viewport.Ruler `json:"ruler"`
}

// AddRulerCommand adds the ruler command to the root command.
func AddRulerCommand(root *cobra.Command, a *app) {
	root.AddCommand(newRulerCmd(a, &RulerFlags{}))
}

func newRulerCmd(a *app, flags *RulerFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ruler",
		Short: "Show the tick scale and visible ruler ticks",
		Long: `Choose the ruler tick scale for a zoom level and list the ticks covering
the viewport plus its render buffer.

Examples:
  cutline ruler
  cutline ruler --zoom 250 --scroll 1200
  cutline ruler --zoom 12 --list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuler(cmd, a, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.Zoom, "zoom", 0, "zoom in pixels per second (default: timeline.default_zoom)")
	cmd.Flags().Float64Var(&flags.Scroll, "scroll", 0, "scroll offset in pixels")
	cmd.Flags().BoolVar(&flags.List, "list", false, "list every tick")
	cmd.Flags().IntVar(&flags.Cols, "cols", 0, "columns to draw the ruler in (default: terminal width)")

	return cmd
}

func runRuler(cmd *cobra.Command, a *app, flags *RulerFlags) error {
	ctx := cmd.Context()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if flags.Scroll < 0 || math.IsNaN(flags.Scroll) {
		return errors.NewDomainError("ruler", "scroll", flags.Scroll, errors.ErrInvalidViewport)
	}
	zoom, clamped, err := a.zoomOrDefault("ruler", flags.Zoom)
	if err != nil {
		return err
	}
	tl, err := a.timeline()
	if err != nil {
		return err
	}

	snap := session.Snapshot{
		Timeline:      tl,
		Viewport:      domain.ViewportState{Zoom: zoom, ScrollOffset: flags.Scroll},
		ViewportWidth: a.cfg.Timeline.ViewportWidth,
		FPS:           a.cfg.Playback.FPS,
	}
	f, err := session.Derive(snap, a.limits())
	if err != nil {
		return err
	}

	a.logger.Debug().
		Float64("zoom", zoom).
		Str("granularity", string(f.Ruler.Scale.Granularity)).
		Int("ticks", len(f.Ruler.Ticks)).
		Msg("ruler computed")

	out := a.output(cmd)
	if a.flags.Output == OutputJSON {
		return out.JSON(RulerReport{
			Zoom:          zoom,
			ZoomClamped:   clamped,
			ScrollOffset:  flags.Scroll,
			ViewportWidth: f.ViewportWidth,
			ContentWidth:  f.ContentWidth,
			FPS:           snap.FPS,
			Ruler:         f.Ruler,
		})
	}

	if clamped {
		out.Warning(fmt.Sprintf("zoom %g is outside [%g, %g]; using %g", flags.Zoom, a.cfg.Timeline.MinZoom, a.cfg.Timeline.MaxZoom, zoom))
	}
	scale := f.Ruler.Scale
	out.Info(fmt.Sprintf("%s ticks every %s, labelled every %s at %.1f px/s",
		scale.Granularity, formatSeconds(scale.Interval), formatSeconds(scale.Major), zoom))
	out.Info(fmt.Sprintf("ticks %d to %d (%d) over %.1f px of content",
		f.Ruler.Range.First, f.Ruler.Range.Last, f.Ruler.Range.Count(), f.ContentWidth))
	if f.Ruler.Range.Truncated {
		out.Warning(fmt.Sprintf("tick range truncated at %d ticks; zoom out or narrow the viewport", a.cfg.Timeline.MaxTicks))
	}

	cols := flags.Cols
	if cols <= 0 {
		cols = terminalCols(cmd.OutOrStdout())
	}
	r := tui.NewRenderer(snap.FPS)
	labels, ticks := r.Ruler(f, tui.NewCanvas(f, cols))
	out.Text(labels)
	out.Text(ticks)

	if flags.List {
		for _, t := range f.Ruler.Ticks {
			kind := "minor"
			if t.Major {
				kind = "major"
			}
			out.Text(fmt.Sprintf("%6d  %10.4fs  %10.1fpx  %s", t.Index, t.Time, t.Position, kind))
		}
	}
	return nil
}

// formatSeconds prints an interval compactly: 1s, 0.03333s, 30s.
func formatSeconds(s float64) string {
	return fmt.Sprintf("%.4gs", s)
}
