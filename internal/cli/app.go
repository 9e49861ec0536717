package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/project"
	"github.com/mrz1836/cutline/internal/session"
	"github.com/mrz1836/cutline/internal/timescale"
	"github.com/mrz1836/cutline/internal/tui"
	"github.com/mrz1836/cutline/internal/viewport"
)

// defaultTerminalCols is used when stdout is not a terminal.
const defaultTerminalCols = 100

// terminalCheck is a variable for the terminal check function, allowing tests to override it.
//
//nolint:gochecknoglobals // Required for test injection of terminal detection
var terminalCheck = isTerminal

// isTerminal returns true if stdin and stdout are terminals.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalCols returns the width of w when it is a terminal.
func terminalCols(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultTerminalCols
}

// output returns the Output for the selected --output format.
func (a *app) output(cmd *cobra.Command) tui.Output {
	tui.CheckNoColor()
	return tui.NewOutput(cmd.OutOrStdout(), a.flags.Output)
}

// limits converts the timeline config into viewport limits.
func (a *app) limits() viewport.Limits {
	t := a.cfg.Timeline
	return viewport.Limits{
		MinZoom:   t.MinZoom,
		MaxZoom:   t.MaxZoom,
		PaddingPx: t.PaddingPx,
		BufferPx:  t.RulerBufferPx,
		MaxTicks:  t.MaxTicks,
	}
}

// timeline loads --project, or the demo project when it is unset.
func (a *app) timeline() (domain.Timeline, error) {
	return project.LoadOrDemo(a.flags.Project)
}

// projectTitle names the open project for headers.
func (a *app) projectTitle() string {
	if a.flags.Project == "" {
		return "demo project"
	}
	return filepath.Base(a.flags.Project)
}

// openSession opens a session over the project with the configured
// limits, zoom, width and frame rate.
func (a *app) openSession() (*session.Session, error) {
	tl, err := a.timeline()
	if err != nil {
		return nil, err
	}
	return session.New(tl, session.Options{
		FPS:           a.cfg.Playback.FPS,
		Limits:        a.limits(),
		DefaultZoom:   a.cfg.Timeline.DefaultZoom,
		ViewportWidth: a.cfg.Timeline.ViewportWidth,
		Logger:        a.logger,
	})
}

// zoomOrDefault clamps a --zoom flag into the configured range. Zero
// selects timeline.default_zoom; a negative or NaN zoom is a DomainError.
func (a *app) zoomOrDefault(op string, zoom float64) (float64, bool, error) {
	if zoom == 0 {
		return a.cfg.Timeline.DefaultZoom, false, nil
	}
	if err := timescale.ValidateZoom(op, zoom); err != nil {
		return 0, false, err
	}
	z, clamped := a.limits().ClampZoom(zoom)
	return z, clamped, nil
}
