// Package project loads timeline fixtures from YAML for the command line.
// It is a host-side collaborator: the engine only ever sees the validated
// domain.Timeline it produces.
package project

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
)

type file struct {
	Duration float64     `yaml:"duration"`
	Tracks   []trackSpec `yaml:"tracks"`
	Clips    []clipSpec  `yaml:"clips"`
}

type trackSpec struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Muted   bool   `yaml:"muted"`
	Solo    bool   `yaml:"solo"`
	Locked  bool   `yaml:"locked"`
	Visible *bool  `yaml:"visible"`
}

type clipSpec struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`
	Track    string  `yaml:"track"`
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
}

// Load reads and validates the project file at path.
func Load(path string) (domain.Timeline, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is supplied by the user on the command line
	if err != nil {
		return domain.Timeline{}, errors.Wrapf(errors.ErrProjectLoad, "read %s: %v", path, err)
	}
	tl, err := Parse(bytes.NewReader(data))
	if err != nil {
		return domain.Timeline{}, errors.Wrapf(err, "load %s", path)
	}
	return tl, nil
}

// Parse decodes a project from r. Tracks and clips without an id get a
// generated one, tracks are visible unless stated otherwise, and a missing
// duration defaults to the end of the last clip.
func Parse(r io.Reader) (domain.Timeline, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return domain.Timeline{}, errors.Wrapf(errors.ErrProjectLoad, "decode yaml: %v", err)
	}

	tl := domain.Timeline{
		Project: domain.Project{Duration: f.Duration},
		Tracks:  make([]domain.Track, 0, len(f.Tracks)),
		Clips:   make([]domain.Clip, 0, len(f.Clips)),
	}

	for _, ts := range f.Tracks {
		t := domain.Track{
			ID:      ts.ID,
			Name:    ts.Name,
			Kind:    constants.TrackKind(ts.Kind),
			Muted:   ts.Muted,
			Solo:    ts.Solo,
			Locked:  ts.Locked,
			Visible: ts.Visible == nil || *ts.Visible,
		}
		if t.ID == "" {
			t.ID = domain.NewTrackID()
		}
		tl.Tracks = append(tl.Tracks, t)
	}

	for _, cs := range f.Clips {
		c := domain.Clip{
			ID:       cs.ID,
			Name:     cs.Name,
			Kind:     constants.ClipKind(cs.Kind),
			TrackID:  cs.Track,
			Start:    cs.Start,
			Duration: cs.Duration,
		}
		if c.ID == "" {
			c.ID = domain.NewClipID()
		}
		tl.Clips = append(tl.Clips, c)
	}

	if tl.Project.Duration == 0 {
		tl.Project.Duration = tl.MaxClipEnd()
	}

	if err := tl.Validate(); err != nil {
		return domain.Timeline{}, errors.Wrap(err, "invalid project")
	}
	return tl, nil
}

// Demo returns the sample edit: two video and two audio tracks with four
// clips over twenty seconds.
func Demo() domain.Timeline {
	return domain.Timeline{
		Project: domain.Project{Duration: constants.DefaultProjectDuration},
		Tracks: []domain.Track{
			{ID: "v2", Name: "Main Track", Kind: constants.TrackKindVideo, Visible: true},
			{ID: "v1", Name: "Overlay 1", Kind: constants.TrackKindVideo, Visible: true},
			{ID: "a1", Name: "Audio 1", Kind: constants.TrackKindAudio, Visible: true},
			{ID: "a2", Name: "Audio 2", Kind: constants.TrackKindAudio, Visible: true},
		},
		Clips: []domain.Clip{
			{ID: "clip1", Name: "Intro_Scene.mp4", Kind: constants.ClipKindVideo, TrackID: "v2", Start: 0, Duration: 5},
			{ID: "clip2", Name: "Main_Action.mov", Kind: constants.ClipKindVideo, TrackID: "v2", Start: 5, Duration: 8},
			{ID: "clip3", Name: "AI Generated Overlay", Kind: constants.ClipKindAI, TrackID: "v1", Start: 2, Duration: 4},
			{ID: "clip6", Name: "Background_Music.mp3", Kind: constants.ClipKindAudio, TrackID: "a1", Start: 0, Duration: 18},
		},
	}
}

// LoadOrDemo loads path, or returns Demo when path is empty.
func LoadOrDemo(path string) (domain.Timeline, error) {
	if path == "" {
		return Demo(), nil
	}
	return Load(path)
}
