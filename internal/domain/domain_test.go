package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cutline/internal/constants"
	"github.com/mrz1836/cutline/internal/errors"
)

func sampleTimeline() Timeline {
	return Timeline{
		Project: Project{Duration: 20},
		Tracks: []Track{
			{ID: "v2", Name: "Main Track", Kind: constants.TrackKindVideo, Visible: true},
			{ID: "v1", Name: "Overlay 1", Kind: constants.TrackKindVideo, Visible: true},
			{ID: "a1", Name: "Audio 1", Kind: constants.TrackKindAudio, Visible: true},
			{ID: "a2", Name: "Audio 2", Kind: constants.TrackKindAudio, Visible: true},
		},
		Clips: []Clip{
			{ID: "clip1", Kind: constants.ClipKindVideo, TrackID: "v2", Start: 0, Duration: 5},
			{ID: "clip2", Kind: constants.ClipKindVideo, TrackID: "v2", Start: 5, Duration: 8},
			{ID: "clip3", Kind: constants.ClipKindAI, TrackID: "v1", Start: 2, Duration: 4},
			{ID: "clip6", Kind: constants.ClipKindAudio, TrackID: "a1", Start: 0, Duration: 18},
		},
	}
}

func TestTimeline_Validate(t *testing.T) {
	tl := sampleTimeline()
	require.NoError(t, tl.Validate())
}

func TestTimeline_ValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Timeline)
		wantErr error
	}{
		{
			name:    "zero duration",
			mutate:  func(tl *Timeline) { tl.Project.Duration = 0 },
			wantErr: errors.ErrInvalidDuration,
		},
		{
			name:    "duplicate track id",
			mutate:  func(tl *Timeline) { tl.Tracks[1].ID = "v2" },
			wantErr: errors.ErrDuplicateID,
		},
		{
			name:    "duplicate clip id",
			mutate:  func(tl *Timeline) { tl.Clips[1].ID = "clip1" },
			wantErr: errors.ErrDuplicateID,
		},
		{
			name:    "dangling track reference",
			mutate:  func(tl *Timeline) { tl.Clips[0].TrackID = "v9" },
			wantErr: errors.ErrTrackNotFound,
		},
		{
			name:    "negative clip start",
			mutate:  func(tl *Timeline) { tl.Clips[0].Start = -1 },
			wantErr: errors.ErrNegativeTime,
		},
		{
			name:    "zero clip duration",
			mutate:  func(tl *Timeline) { tl.Clips[0].Duration = 0 },
			wantErr: errors.ErrInvalidDuration,
		},
		{
			name:    "unknown track kind",
			mutate:  func(tl *Timeline) { tl.Tracks[0].Kind = "midi" },
			wantErr: errors.ErrInvalidTrackKind,
		},
		{
			name:    "unknown clip kind",
			mutate:  func(tl *Timeline) { tl.Clips[0].Kind = "midi" },
			wantErr: errors.ErrInvalidClipKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := sampleTimeline()
			tt.mutate(&tl)
			require.ErrorIs(t, tl.Validate(), tt.wantErr)
		})
	}
}

func TestTimeline_OverlappingClipsAreAllowed(t *testing.T) {
	tl := sampleTimeline()
	tl.Clips = append(tl.Clips, Clip{ID: "overlap", TrackID: "v2", Start: 3, Duration: 4})
	require.NoError(t, tl.Validate())
}

func TestTimeline_Track(t *testing.T) {
	tl := sampleTimeline()

	tr, err := tl.Track("a1")
	require.NoError(t, err)
	assert.Equal(t, "Audio 1", tr.Name)

	_, err = tl.Track("nope")
	require.ErrorIs(t, err, errors.ErrTrackNotFound)
}

func TestTimeline_Clip(t *testing.T) {
	tl := sampleTimeline()

	c, err := tl.Clip("clip3")
	require.NoError(t, err)
	assert.Equal(t, "v1", c.TrackID)

	_, err = tl.Clip("nope")
	require.ErrorIs(t, err, errors.ErrClipNotFound)
}

func TestTimeline_ClipsByTrack(t *testing.T) {
	tl := sampleTimeline()
	groups := tl.ClipsByTrack()

	require.Len(t, groups, 4)
	assert.Len(t, groups["v2"], 2)
	assert.Equal(t, "clip1", groups["v2"][0].ID)
	assert.Len(t, groups["v1"], 1)
	assert.Empty(t, groups["a2"])
	assert.NotNil(t, groups["a2"])
}

func TestMaxClipEnd(t *testing.T) {
	tl := sampleTimeline()
	assert.InDelta(t, 18.0, tl.MaxClipEnd(), 1e-9)
	assert.InDelta(t, 0.0, MaxClipEnd(nil), 0)
}

func TestTimeline_CloneIsIndependent(t *testing.T) {
	tl := sampleTimeline()
	cp := tl.Clone()

	cp.Tracks[0].Muted = true
	cp.Clips[0].Start = 9

	assert.False(t, tl.Tracks[0].Muted)
	assert.InDelta(t, 0.0, tl.Clips[0].Start, 0)
}

func TestTrack_Toggle(t *testing.T) {
	tr := NewTrack("Main", constants.TrackKindVideo)
	assert.True(t, strings.HasPrefix(tr.ID, "track-"))
	assert.True(t, tr.Visible)

	tests := []struct {
		prop TrackProperty
		get  func(Track) bool
	}{
		{TrackMuted, func(t Track) bool { return t.Muted }},
		{TrackSolo, func(t Track) bool { return t.Solo }},
		{TrackLocked, func(t Track) bool { return t.Locked }},
		{TrackVisible, func(t Track) bool { return t.Visible }},
	}

	for _, tt := range tests {
		t.Run(string(tt.prop), func(t *testing.T) {
			before := tt.get(tr)
			got, err := tr.Toggle(tt.prop)
			require.NoError(t, err)
			assert.Equal(t, !before, got)
			assert.Equal(t, got, tt.get(tr))
		})
	}

	_, err := tr.Toggle("color")
	require.ErrorIs(t, err, errors.ErrUnknownTrackProperty)
}

func TestClip_Geometry(t *testing.T) {
	c := Clip{ID: NewClipID(), TrackID: "v1", Start: 2, Duration: 4}

	assert.InDelta(t, 6.0, c.End(), 0)
	assert.True(t, c.Contains(2))
	assert.True(t, c.Contains(5.999))
	assert.False(t, c.Contains(6))
	assert.False(t, c.Contains(1.999))
	assert.True(t, strings.HasPrefix(c.ID, "clip-"))
}

func TestPlaybackState_Status(t *testing.T) {
	assert.Equal(t, constants.TransportStopped, PlaybackState{}.Status())
	assert.Equal(t, constants.TransportPlaying, PlaybackState{Playing: true}.Status())
}

func TestPlaybackState_JSON(t *testing.T) {
	data, err := json.Marshal(PlaybackState{CurrentTime: 1.5, Playing: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"current_time":1.5,"playing":true}`, string(data))
}

func TestDefaultViewportState(t *testing.T) {
	vs := DefaultViewportState()
	assert.InDelta(t, constants.DefaultZoom, vs.Zoom, 0)
	assert.InDelta(t, 0.0, vs.ScrollOffset, 0)
}
