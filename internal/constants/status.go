package constants

// TransportStatus represents the state of the playback transport.
// Status values use snake_case for JSON serialization compatibility.
type TransportStatus string

// Transport status constants. The state machine is:
//
//	Stopped → Playing   (play)
//	Playing → Stopped   (pause, or reaching the end of the media)
const (
	// TransportStopped indicates the playhead is not advancing.
	TransportStopped TransportStatus = "stopped"

	// TransportPlaying indicates the playhead advances once per frame.
	TransportPlaying TransportStatus = "playing"
)

// String returns the string representation of the TransportStatus.
func (s TransportStatus) String() string {
	return string(s)
}

// TrackKind is the media kind a track carries.
type TrackKind string

// Track kinds.
const (
	TrackKindVideo TrackKind = "video"
	TrackKindAudio TrackKind = "audio"
)

// String returns the string representation of the TrackKind.
func (k TrackKind) String() string {
	return string(k)
}

// Valid reports whether k is a known track kind.
func (k TrackKind) Valid() bool {
	return k == TrackKindVideo || k == TrackKindAudio
}

// ClipKind is the kind of material a clip holds.
type ClipKind string

// Clip kinds.
const (
	ClipKindVideo ClipKind = "video"
	ClipKindAudio ClipKind = "audio"
	ClipKindAI    ClipKind = "ai"
	ClipKindText  ClipKind = "text"
	ClipKindImage ClipKind = "image"
)

// String returns the string representation of the ClipKind.
func (k ClipKind) String() string {
	return string(k)
}

// Valid reports whether k is a known clip kind.
func (k ClipKind) Valid() bool {
	switch k {
	case ClipKindVideo, ClipKindAudio, ClipKindAI, ClipKindText, ClipKindImage:
		return true
	}
	return false
}
