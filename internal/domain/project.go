// Package domain provides the shared data model of the cutline timeline engine:
// the project, its tracks and clips, and the playback and viewport state the
// host application owns.
package domain

import (
	"math"

	"github.com/mrz1836/cutline/internal/errors"
)

// Project holds the fixed properties of an edit.
type Project struct {
	// Duration is the total length of the project in seconds. Always > 0.
	Duration float64 `json:"duration" yaml:"duration"`
}

// Validate checks that the project duration is a positive finite number.
func (p Project) Validate() error {
	if !(p.Duration > 0) || math.IsInf(p.Duration, 0) {
		return errors.NewDomainError("Project", "duration", p.Duration, errors.ErrInvalidDuration)
	}
	return nil
}

// Timeline is a project together with its tracks and clips.
// Tracks own no clips; each clip names its track by id.
type Timeline struct {
	Project Project `json:"project" yaml:"project"`
	Tracks  []Track `json:"tracks" yaml:"tracks"`
	Clips   []Clip  `json:"clips" yaml:"clips"`
}

// Track returns a pointer to the track with the given id so callers can
// toggle its flags in place.
func (tl *Timeline) Track(id string) (*Track, error) {
	for i := range tl.Tracks {
		if tl.Tracks[i].ID == id {
			return &tl.Tracks[i], nil
		}
	}
	return nil, errors.Wrapf(errors.ErrTrackNotFound, "track %q", id)
}

// Clip returns the clip with the given id.
func (tl *Timeline) Clip(id string) (Clip, error) {
	for _, c := range tl.Clips {
		if c.ID == id {
			return c, nil
		}
	}
	return Clip{}, errors.Wrapf(errors.ErrClipNotFound, "clip %q", id)
}

// ClipsByTrack groups clips under their track id, preserving clip order.
// Every track has an entry, even when it holds no clips; clips whose track
// does not exist are left out.
func (tl *Timeline) ClipsByTrack() map[string][]Clip {
	groups := make(map[string][]Clip, len(tl.Tracks))
	for _, t := range tl.Tracks {
		groups[t.ID] = []Clip{}
	}
	for _, c := range tl.Clips {
		if _, ok := groups[c.TrackID]; ok {
			groups[c.TrackID] = append(groups[c.TrackID], c)
		}
	}
	return groups
}

// MaxClipEnd returns the latest end time over all clips, or 0 with no clips.
func (tl *Timeline) MaxClipEnd() float64 {
	return MaxClipEnd(tl.Clips)
}

// MaxClipEnd returns the latest start+duration over clips, or 0 when empty.
func MaxClipEnd(clips []Clip) float64 {
	end := 0.0
	for _, c := range clips {
		end = math.Max(end, c.End())
	}
	return end
}

// Clone returns a deep copy so snapshots never share slices with live state.
func (tl Timeline) Clone() Timeline {
	out := Timeline{Project: tl.Project}
	if tl.Tracks != nil {
		out.Tracks = append([]Track(nil), tl.Tracks...)
	}
	if tl.Clips != nil {
		out.Clips = append([]Clip(nil), tl.Clips...)
	}
	return out
}

// Validate checks the project, that track and clip ids are unique, that
// every clip references an existing track, and every clip's geometry.
// Overlapping clips on one track are allowed.
func (tl *Timeline) Validate() error {
	if err := tl.Project.Validate(); err != nil {
		return err
	}

	tracks := make(map[string]struct{}, len(tl.Tracks))
	for _, t := range tl.Tracks {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := tracks[t.ID]; dup {
			return errors.Wrapf(errors.ErrDuplicateID, "track %q", t.ID)
		}
		tracks[t.ID] = struct{}{}
	}

	clips := make(map[string]struct{}, len(tl.Clips))
	for _, c := range tl.Clips {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := clips[c.ID]; dup {
			return errors.Wrapf(errors.ErrDuplicateID, "clip %q", c.ID)
		}
		clips[c.ID] = struct{}{}
		if _, ok := tracks[c.TrackID]; !ok {
			return errors.Wrapf(errors.ErrTrackNotFound, "clip %q references track %q", c.ID, c.TrackID)
		}
	}
	return nil
}
