// Package tui renders the timeline in a terminal: styled command output,
// a character-cell ruler, track lanes and minimap drawn from one
// session.Frame, and an interactive bubbletea monitor.
//
// All colors use AdaptiveColor for light/dark terminal support. Call
// CheckNoColor at the start of commands that print styled text.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/cutline/internal/constants"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for the playhead and active states.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for success messages and the playing indicator.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for warnings and truncation notices.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for errors.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for minor ticks, muted tracks and hints.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// ClipKindColors returns the fill color for each clip kind.
func ClipKindColors() map[constants.ClipKind]lipgloss.AdaptiveColor {
	return map[constants.ClipKind]lipgloss.AdaptiveColor{
		constants.ClipKindVideo: {Light: "#1D4ED8", Dark: "#3B82F6"},
		constants.ClipKindAudio: {Light: "#047857", Dark: "#10B981"},
		constants.ClipKindAI:    {Light: "#6D28D9", Dark: "#8B5CF6"},
		constants.ClipKindText:  {Light: "#B45309", Dark: "#F59E0B"},
		constants.ClipKindImage: {Light: "#BE185D", Dark: "#EC4899"},
	}
}

// TrackKindIcon returns the lane glyph for a track kind.
func TrackKindIcon(kind constants.TrackKind) string {
	switch kind {
	case constants.TrackKindVideo:
		return "▣"
	case constants.TrackKindAudio:
		return "♪"
	}
	return "?"
}

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// TimelineStyles holds the styles used to draw a frame.
type TimelineStyles struct {
	MajorTick  lipgloss.Style
	MinorTick  lipgloss.Style
	Label      lipgloss.Style
	Playhead   lipgloss.Style
	LaneLabel  lipgloss.Style
	MutedLane  lipgloss.Style
	Minimap    lipgloss.Style
	Window     lipgloss.Style
	Status     lipgloss.Style
	Playing    lipgloss.Style
	Truncation lipgloss.Style
	Clips      map[constants.ClipKind]lipgloss.Style
}

// NewTimelineStyles creates the frame styles.
func NewTimelineStyles() *TimelineStyles {
	clips := make(map[constants.ClipKind]lipgloss.Style)
	for kind, color := range ClipKindColors() {
		clips[kind] = lipgloss.NewStyle().Foreground(color)
	}
	return &TimelineStyles{
		MajorTick:  lipgloss.NewStyle().Bold(true),
		MinorTick:  lipgloss.NewStyle().Foreground(ColorMuted),
		Label:      lipgloss.NewStyle().Foreground(ColorMuted),
		Playhead:   lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true),
		LaneLabel:  lipgloss.NewStyle().Bold(true),
		MutedLane:  lipgloss.NewStyle().Foreground(ColorMuted).Strikethrough(true),
		Minimap:    lipgloss.NewStyle().Foreground(ColorMuted),
		Window:     lipgloss.NewStyle().Foreground(ColorWarning),
		Status:     lipgloss.NewStyle().Foreground(ColorMuted),
		Playing:    lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Truncation: lipgloss.NewStyle().Foreground(ColorWarning),
		Clips:      clips,
	}
}

// Clip returns the style for kind, falling back to the video style.
func (s *TimelineStyles) Clip(kind constants.ClipKind) lipgloss.Style {
	if st, ok := s.Clips[kind]; ok {
		return st
	}
	return s.Clips[constants.ClipKindVideo]
}

// CheckNoColor respects the NO_COLOR environment variable.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns false if NO_COLOR is set (with any value) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
