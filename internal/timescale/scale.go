package timescale

import (
	"math"

	"github.com/mrz1836/cutline/internal/constants"
)

// Granularity names a row of the tick scale table.
type Granularity string

// Tick granularities, finest first.
const (
	GranularityFrame      Granularity = "frame"
	GranularityHalfSecond Granularity = "half_second"
	GranularitySecond     Granularity = "second"
	Granularity5Seconds   Granularity = "5s"
	Granularity10Seconds  Granularity = "10s"
	Granularity15Seconds  Granularity = "15s"
	Granularity30Seconds  Granularity = "30s"
)

// TickScale is the ruler spacing chosen for a zoom level.
type TickScale struct {
	// Granularity identifies the table row that was selected.
	Granularity Granularity `json:"granularity"`
	// Interval is the time between adjacent ticks, in seconds.
	Interval float64 `json:"interval"`
	// Major is the time between labelled ticks, in seconds.
	Major float64 `json:"major"`
}

// PerFrame reports whether each tick is a single frame.
func (s TickScale) PerFrame() bool {
	return s.Granularity == GranularityFrame
}

// scaleRow is one candidate spacing. interval 0 means "one frame".
type scaleRow struct {
	granularity Granularity
	interval    float64
	major       float64
	minZoom     float64
}

// scaleTable lists candidate spacings from finest to coarsest. A row is
// usable once zoom reaches its minZoom.
//
//nolint:gochecknoglobals // fixed lookup table
var scaleTable = []scaleRow{
	{GranularityFrame, 0, 1, constants.FrameLegibleZoom},
	{GranularityHalfSecond, 0.5, 1, 80},
	{GranularitySecond, 1, 5, 30},
	{Granularity5Seconds, 5, 15, 10},
	{Granularity10Seconds, 10, 30, 5},
	{Granularity15Seconds, 15, 60, 2},
	{Granularity30Seconds, 30, 60, 0},
}

// ChooseTickScale picks the finest spacing whose zoom threshold has been
// reached, falling back to the coarsest. The per-frame row is skipped when a
// frame is not shorter than the half-second row, so raising the zoom never
// selects a coarser interval.
func ChooseTickScale(zoom float64, fps int) (TickScale, error) {
	if err := ValidateZoom("ChooseTickScale", zoom); err != nil {
		return TickScale{}, err
	}
	if err := ValidateFPS("ChooseTickScale", fps); err != nil {
		return TickScale{}, err
	}

	frame := 1 / float64(fps)
	for i, row := range scaleTable {
		if zoom < row.minZoom {
			continue
		}
		interval := row.interval
		if row.granularity == GranularityFrame {
			if frame >= scaleTable[i+1].interval {
				continue
			}
			interval = frame
		}
		return TickScale{Granularity: row.granularity, Interval: interval, Major: row.major}, nil
	}

	last := scaleTable[len(scaleTable)-1]
	return TickScale{Granularity: last.granularity, Interval: last.interval, Major: last.major}, nil
}

// IsMajor reports whether t lies on a multiple of major, within
// MajorTickEpsilon on either side.
func IsMajor(t, major float64) bool {
	if major <= 0 {
		return false
	}
	r := math.Mod(t, major)
	return math.Abs(r) < constants.MajorTickEpsilon || math.Abs(r-major) < constants.MajorTickEpsilon
}
