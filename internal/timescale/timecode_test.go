package timescale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimecode(t *testing.T) {
	tests := []struct {
		name       string
		t          float64
		fps        int
		withFrames bool
		want       string
	}{
		{"zero", 0, 30, false, "0:00"},
		{"seconds", 5, 30, false, "0:05"},
		{"minutes", 75, 30, false, "1:15"},
		{"frames", 1.5, 30, true, "0:01:15"},
		{"frames at 60", 2 + 59.0/60, 60, true, "0:02:59"},
		{"accumulated float lands on the second", 3 * 0.1 * 10, 30, false, "0:03"},
		{"last frame never reads as fps", 0.999999, 30, true, "0:01:00"},
		{"negative clamps", -3, 30, false, "0:00"},
		{"long timeline", 3725, 24, false, "62:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimecode(tt.t, tt.fps, tt.withFrames))
		})
	}
}

func TestFormatTimecode_InvalidFPSFallsBack(t *testing.T) {
	assert.Equal(t, "0:02:00", FormatTimecode(2, 0, true))
}
