package domain

import (
	"math"

	"github.com/google/uuid"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/errors"
)

// Clip is a span of material placed on a track.
type Clip struct {
	ID       string             `json:"id" yaml:"id"`
	Name     string             `json:"name" yaml:"name"`
	Kind     constants.ClipKind `json:"kind" yaml:"kind"`
	TrackID  string             `json:"track_id" yaml:"track_id"`
	Start    float64            `json:"start" yaml:"start"`
	Duration float64            `json:"duration" yaml:"duration"`
}

// NewClipID generates a unique clip id.
func NewClipID() string {
	return "clip-" + uuid.NewString()
}

// End returns the time at which the clip finishes.
func (c Clip) End() float64 {
	return c.Start + c.Duration
}

// Contains reports whether t falls within [Start, End).
func (c Clip) Contains(t float64) bool {
	return t >= c.Start && t < c.End()
}

// Validate checks the clip's id, kind and geometry.
func (c Clip) Validate() error {
	if c.ID == "" {
		return errors.Wrap(errors.ErrEmptyValue, "clip id is empty")
	}
	if c.Kind != "" && !c.Kind.Valid() {
		return errors.Wrapf(errors.ErrInvalidClipKind, "clip %q kind %q", c.ID, c.Kind)
	}
	if c.Start < 0 || math.IsNaN(c.Start) {
		return errors.NewDomainError("Clip "+c.ID, "start", c.Start, errors.ErrNegativeTime)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return errors.NewDomainError("Clip "+c.ID, "duration", c.Duration, errors.ErrInvalidDuration)
	}
	return nil
}
