package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/session"
	"github.com/mrz1836/cutline/internal/timescale"
)

// DefaultLabelWidth is the width of the lane label gutter, in cells.
const DefaultLabelWidth = 18

// Canvas maps the viewport's pixel range onto terminal columns. The ruler,
// every lane and the playhead are placed through the same Canvas, so they
// line up cell for cell.
type Canvas struct {
	Cols          int
	ScrollOffset  float64
	ViewportWidth float64
}

// NewCanvas returns the canvas for f drawn cols cells wide.
func NewCanvas(f session.Frame, cols int) Canvas {
	return Canvas{Cols: cols, ScrollOffset: f.Viewport.ScrollOffset, ViewportWidth: f.ViewportWidth}
}

// Column returns the cell holding content pixel px, and false when px is
// outside the viewport.
func (c Canvas) Column(px float64) (int, bool) {
	if c.Cols <= 0 || !(c.ViewportWidth > 0) {
		return 0, false
	}
	rel := px - c.ScrollOffset
	if rel < 0 || rel > c.ViewportWidth {
		return 0, false
	}
	col := int(math.Floor(rel * float64(c.Cols) / c.ViewportWidth))
	return min(col, c.Cols-1), true
}

// span returns the cells covered by [from, to) in content pixels, clipped
// to the viewport.
func (c Canvas) span(from, to float64) (first, last int, ok bool) {
	left := math.Max(from, c.ScrollOffset)
	right := math.Min(to, c.ScrollOffset+c.ViewportWidth)
	if right <= left {
		return 0, 0, false
	}
	first, _ = c.Column(left)
	// The span is half-open, so a clip ending on a cell boundary does not
	// spill into the next cell.
	last, _ = c.Column(math.Max(left, right-1e-9))
	return first, last, true
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

type row []cell

func newRow(n int, fill rune) row {
	r := make(row, n)
	for i := range r {
		r[i].r = fill
	}
	return r
}

func (r row) set(col int, ch rune, st *lipgloss.Style) {
	if col >= 0 && col < len(r) {
		r[col] = cell{r: ch, style: st}
	}
}

func (r row) write(col int, s string, st *lipgloss.Style) {
	for _, ch := range s {
		r.set(col, ch, st)
		col++
	}
}

// String renders runs of equally styled cells together.
func (r row) String() string {
	var b strings.Builder
	for i := 0; i < len(r); {
		j := i
		var run strings.Builder
		for j < len(r) && r[j].style == r[i].style {
			run.WriteRune(r[j].r)
			j++
		}
		if r[i].style != nil {
			b.WriteString(r[i].style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		i = j
	}
	return b.String()
}

// Renderer draws frames with a fixed set of styles.
type Renderer struct {
	Styles     *TimelineStyles
	LabelWidth int
	FPS        int
}

// NewRenderer returns a Renderer with the default styles and gutter.
func NewRenderer(fps int) *Renderer {
	return &Renderer{Styles: NewTimelineStyles(), LabelWidth: DefaultLabelWidth, FPS: fps}
}

// CanvasCols returns the columns left for the timeline in a terminal
// totalCols wide.
func (r *Renderer) CanvasCols(totalCols int) int {
	return max(1, totalCols-r.LabelWidth-1)
}

// Frame renders the status line, ruler, lanes and minimap of f for a
// terminal totalCols wide.
func (r *Renderer) Frame(f session.Frame, totalCols int) string {
	c := NewCanvas(f, r.CanvasCols(totalCols))
	gutter := strings.Repeat(" ", r.LabelWidth+1)

	lines := []string{r.Status(f)}
	labels, ticks := r.Ruler(f, c)
	lines = append(lines, gutter+labels, gutter+ticks)
	lines = append(lines, r.Lanes(f, c)...)
	lines = append(lines, gutter+r.Minimap(f, c.Cols))
	if legend := r.Legend(f); legend != "" {
		lines = append(lines, gutter+legend)
	}
	return strings.Join(lines, "\n")
}

// Status renders the transport readout.
func (r *Renderer) Status(f session.Frame) string {
	st := r.Styles
	state := st.Status.Render("■ stopped")
	if f.Playback.Playing {
		state = st.Playing.Render("▶ playing")
	}
	parts := []string{
		state,
		StyleBold.Render(f.Timecode),
		st.Status.Render(fmt.Sprintf("frame %d", f.Frame)),
		st.Status.Render(fmt.Sprintf("zoom %.1f px/s", f.Viewport.Zoom)),
		st.Status.Render(fmt.Sprintf("ticks %s", f.Ruler.Scale.Granularity)),
	}
	if f.Ruler.Range.Truncated {
		parts = append(parts, st.Truncation.Render(fmt.Sprintf("ruler truncated at %d ticks", f.Ruler.Range.Count())))
	}
	return strings.Join(parts, "  ")
}

// Ruler renders the label line and the tick line. Major ticks carry a
// timecode label when there is room for it; the playhead is drawn over
// the tick line.
func (r *Renderer) Ruler(f session.Frame, c Canvas) (labels, ticks string) {
	st := r.Styles
	labelRow := newRow(c.Cols, ' ')
	tickRow := newRow(c.Cols, ' ')

	withFrames := f.Ruler.Scale.PerFrame()
	nextFree := 0
	for _, t := range f.Ruler.Ticks {
		col, ok := c.Column(t.Position)
		if !ok {
			continue
		}
		if !t.Major {
			if tickRow[col].r == ' ' {
				tickRow.set(col, '╷', &st.MinorTick)
			}
			continue
		}
		tickRow.set(col, '┃', &st.MajorTick)
		label := timescale.FormatTimecode(t.Time, r.FPS, withFrames)
		if col >= nextFree && col+len(label) <= c.Cols {
			labelRow.write(col, label, &st.Label)
			nextFree = col + len(label) + 1
		}
	}

	if f.Playhead.Visible {
		if col, ok := c.Column(f.Playhead.ContentPx); ok {
			tickRow.set(col, '▼', &st.Playhead)
		}
	}
	return labelRow.String(), tickRow.String()
}

// Lanes renders one line per track.
func (r *Renderer) Lanes(f session.Frame, c Canvas) []string {
	st := r.Styles
	playCol, playOK := c.Column(f.Playhead.ContentPx)

	out := make([]string, 0, len(f.Lanes))
	for _, lane := range f.Lanes {
		body := newRow(c.Cols, ' ')
		if lane.Track.Visible {
			for _, box := range lane.Clips {
				first, last, ok := c.span(box.Left, box.Left+box.Width)
				if !ok {
					continue
				}
				clipStyle := st.Clip(box.Clip.Kind)
				for col := first; col <= last; col++ {
					body.set(col, '█', &clipStyle)
				}
			}
		} else {
			for col := range body {
				body.set(col, '·', &st.MinorTick)
			}
		}
		if f.Playhead.Visible && playOK {
			body.set(playCol, '│', &st.Playhead)
		}
		out = append(out, r.laneLabel(lane.Track)+" "+body.String())
	}
	return out
}

func (r *Renderer) laneLabel(t domain.Track) string {
	name := t.Name
	if name == "" {
		name = KindLabel(string(t.Kind))
	}
	flags := []byte("···")
	if t.Muted {
		flags[0] = 'M'
	}
	if t.Solo {
		flags[1] = 'S'
	}
	if t.Locked {
		flags[2] = 'L'
	}

	nameWidth := max(1, r.LabelWidth-len(flags)-3)
	text := TrackKindIcon(t.Kind) + " " + runewidth.FillRight(runewidth.Truncate(name, nameWidth, "…"), nameWidth) + " " + string(flags)
	text = runewidth.FillRight(runewidth.Truncate(text, r.LabelWidth, ""), r.LabelWidth)

	if t.Muted {
		return r.Styles.MutedLane.Render(text)
	}
	return r.Styles.LaneLabel.Render(text)
}

// Minimap renders the overview strip: clips as ▬, the visible window in
// brackets and the playhead as ▲.
func (r *Renderer) Minimap(f session.Frame, cols int) string {
	st := r.Styles
	m := f.Minimap
	strip := newRow(cols, '─')
	for i := range strip {
		strip[i].style = &st.Minimap
	}

	toCol := func(frac float64) int {
		return min(cols-1, int(math.Floor(frac*float64(cols))))
	}

	for _, mc := range m.Clips {
		first, last := toCol(mc.Span.Start), toCol(mc.Span.Start+mc.Span.Width)
		for col := first; col <= last; col++ {
			strip.set(col, '▬', &st.Minimap)
		}
	}
	strip.set(toCol(m.Viewport.Start), '[', &st.Window)
	strip.set(toCol(m.Viewport.Start+m.Viewport.Width), ']', &st.Window)
	strip.set(toCol(m.Playhead), '▲', &st.Playhead)
	return strip.String()
}

// Legend lists the clip kinds present in f with their colors.
func (r *Renderer) Legend(f session.Frame) string {
	seen := make(map[constants.ClipKind]bool)
	for _, lane := range f.Lanes {
		for _, box := range lane.Clips {
			seen[box.Clip.Kind] = true
		}
	}
	kinds := make([]string, 0, len(seen))
	for k := range seen {
		if k != "" {
			kinds = append(kinds, string(k))
		}
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		clipStyle := r.Styles.Clip(constants.ClipKind(k))
		parts = append(parts, clipStyle.Render("█")+" "+KindLabel(k))
	}
	return strings.Join(parts, "  ")
}

// KindLabel turns a kind identifier into a display label: short ids are
// upper-cased, longer ones title-cased.
func KindLabel(kind string) string {
	if len(kind) <= 2 {
		return cases.Upper(language.English).String(kind)
	}
	return cases.Title(language.English).String(kind)
}
