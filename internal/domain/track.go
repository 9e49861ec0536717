package domain

import (
	"github.com/google/uuid"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/errors"
)

// TrackProperty names one of a track's boolean toggles.
type TrackProperty string

// Toggleable track properties.
const (
	TrackMuted   TrackProperty = "muted"
	TrackSolo    TrackProperty = "solo"
	TrackLocked  TrackProperty = "locked"
	TrackVisible TrackProperty = "visible"
)

// Track is a lane of clips of one media kind.
type Track struct {
	ID      string              `json:"id" yaml:"id"`
	Name    string              `json:"name" yaml:"name"`
	Kind    constants.TrackKind `json:"kind" yaml:"kind"`
	Muted   bool                `json:"muted" yaml:"muted"`
	Solo    bool                `json:"solo" yaml:"solo"`
	Locked  bool                `json:"locked" yaml:"locked"`
	Visible bool                `json:"visible" yaml:"visible"`
}

// NewTrack returns a visible, unmuted track with a generated id.
func NewTrack(name string, kind constants.TrackKind) Track {
	return Track{
		ID:      NewTrackID(),
		Name:    name,
		Kind:    kind,
		Visible: true,
	}
}

// NewTrackID generates a unique track id.
func NewTrackID() string {
	return "track-" + uuid.NewString()
}

// Validate checks the id and kind.
func (t Track) Validate() error {
	if t.ID == "" {
		return errors.Wrap(errors.ErrEmptyValue, "track id is empty")
	}
	if !t.Kind.Valid() {
		return errors.Wrapf(errors.ErrInvalidTrackKind, "track %q kind %q", t.ID, t.Kind)
	}
	return nil
}

// Toggle flips the named property and returns its new value.
func (t *Track) Toggle(p TrackProperty) (bool, error) {
	switch p {
	case TrackMuted:
		t.Muted = !t.Muted
		return t.Muted, nil
	case TrackSolo:
		t.Solo = !t.Solo
		return t.Solo, nil
	case TrackLocked:
		t.Locked = !t.Locked
		return t.Locked, nil
	case TrackVisible:
		t.Visible = !t.Visible
		return t.Visible, nil
	}
	return false, errors.Wrapf(errors.ErrUnknownTrackProperty, "%q", p)
}
