package timescale

import (
	"fmt"
	"math"
)

// FormatTimecode renders t as m:ss, or m:ss:ff when withFrames is set.
// The time is first rounded to the nearest frame so ruler labels computed
// from accumulated intervals do not read one second short.
func FormatTimecode(t float64, fps int, withFrames bool) string {
	if fps <= 0 {
		fps = 1
	}
	if t < 0 || math.IsNaN(t) {
		t = 0
	}

	frames := int64(math.Round(t * float64(fps)))
	perSecond := int64(fps)
	secs := frames / perSecond
	m, s, f := secs/60, secs%60, frames%perSecond

	if withFrames {
		return fmt.Sprintf("%d:%02d:%02d", m, s, f)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
