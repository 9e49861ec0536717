package constants

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportStatus_String(t *testing.T) {
	assert.Equal(t, "stopped", TransportStopped.String())
	assert.Equal(t, "playing", TransportPlaying.String())
}

func TestTransportStatus_JSON(t *testing.T) {
	data, err := json.Marshal(TransportPlaying)
	require.NoError(t, err)
	assert.JSONEq(t, `"playing"`, string(data))

	var got TransportStatus
	require.NoError(t, json.Unmarshal([]byte(`"stopped"`), &got))
	assert.Equal(t, TransportStopped, got)
}

func TestTrackKind_Valid(t *testing.T) {
	tests := []struct {
		kind TrackKind
		want bool
	}{
		{TrackKindVideo, true},
		{TrackKindAudio, true},
		{TrackKind("subtitle"), false},
		{TrackKind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Valid())
		})
	}
}

func TestClipKind_Valid(t *testing.T) {
	for _, k := range []ClipKind{ClipKindVideo, ClipKindAudio, ClipKindAI, ClipKindText, ClipKindImage} {
		assert.True(t, k.Valid(), "%s should be valid", k)
	}
	assert.False(t, ClipKind("hologram").Valid())
}
