package viewport

import (
	"math"

	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/timescale"
)

// maxTickIndex is the largest tick index whose time is still exact in a
// float64. A window past it cannot be indexed.
const maxTickIndex = 1 << 53

// TickRange is an inclusive range of tick indices; tick i sits at
// i*interval seconds. Truncated is set when the range hit the tick cap and
// the caller should pick a coarser interval.
type TickRange struct {
	First     int  `json:"first"`
	Last      int  `json:"last"`
	Truncated bool `json:"truncated"`
}

// Count returns the number of indices in the range.
func (r TickRange) Count() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Tick is one ruler mark.
type Tick struct {
	Index    int     `json:"index"`
	Time     float64 `json:"time"`
	Position float64 `json:"position"`
	Major    bool    `json:"major"`
}

// VisibleTickRange returns the tick indices covering
// [scroll-bufferPx, scroll+viewportWidth+bufferPx], clipped at zero and
// capped at MaxTicks.
func (l Limits) VisibleTickRange(scroll, viewportWidth, bufferPx, zoom, interval float64) (TickRange, error) {
	const op = "VisibleTickRange"
	if err := timescale.ValidateZoom(op, zoom); err != nil {
		return TickRange{}, err
	}
	if !(interval > 0) {
		return TickRange{}, errors.NewDomainError(op, "interval", interval, errors.ErrInvalidInterval)
	}
	if err := validateWidth(op, "viewport_width", viewportWidth); err != nil {
		return TickRange{}, err
	}
	if err := validateWidth(op, "buffer", bufferPx); err != nil {
		return TickRange{}, err
	}
	if math.IsNaN(scroll) || math.IsInf(scroll, 0) {
		return TickRange{}, errors.NewDomainError(op, "scroll", scroll, errors.ErrInvalidViewport)
	}

	startPx := math.Max(0, scroll-bufferPx)
	endPx := math.Max(startPx, scroll+viewportWidth+bufferPx)

	first := math.Floor(startPx / zoom / interval)
	last := math.Ceil(endPx / zoom / interval)

	truncated := false
	if last-first+1 > float64(l.MaxTicks) {
		last = first + float64(l.MaxTicks) - 1
		truncated = true
	}
	if last > maxTickIndex {
		return TickRange{}, errors.NewDomainError(op, "scroll", scroll, errors.ErrInvalidViewport)
	}
	return TickRange{First: int(first), Last: int(last), Truncated: truncated}, nil
}

// Ticks materializes the ticks of r, stopping at the first tick past
// contentWidth.
func Ticks(r TickRange, scale timescale.TickScale, zoom, contentWidth float64) []Tick {
	ticks := make([]Tick, 0, r.Count())
	for i := r.First; i <= r.Last; i++ {
		t := float64(i) * scale.Interval
		pos := timescale.TimeToPixel(t, zoom)
		if pos > contentWidth {
			break
		}
		ticks = append(ticks, Tick{
			Index:    i,
			Time:     t,
			Position: pos,
			Major:    timescale.IsMajor(t, scale.Major),
		})
	}
	return ticks
}

// Ruler is everything needed to draw the ruler for one viewport.
type Ruler struct {
	Scale timescale.TickScale `json:"scale"`
	Range TickRange           `json:"range"`
	Ticks []Tick              `json:"ticks"`
}

// Ruler chooses the tick scale for v.Zoom and returns the visible ticks.
func (l Limits) Ruler(v domain.ViewportState, viewportWidth, contentWidth float64, fps int) (Ruler, error) {
	scale, err := timescale.ChooseTickScale(v.Zoom, fps)
	if err != nil {
		return Ruler{}, err
	}
	r, err := l.VisibleTickRange(v.ScrollOffset, viewportWidth, l.BufferPx, v.Zoom, scale.Interval)
	if err != nil {
		return Ruler{}, err
	}
	return Ruler{
		Scale: scale,
		Range: r,
		Ticks: Ticks(r, scale, v.Zoom, contentWidth),
	}, nil
}

// VisibleTickRange uses DefaultLimits.
func VisibleTickRange(scroll, viewportWidth, bufferPx, zoom, interval float64) (TickRange, error) {
	return DefaultLimits().VisibleTickRange(scroll, viewportWidth, bufferPx, zoom, interval)
}
