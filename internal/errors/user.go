package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Specific domain kinds come before ErrDomain because a DomainError matches both.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Engine input
	// ===================
	{
		err: ErrInvalidZoom,
		info: ErrorInfo{
			Message: "Zoom must be a positive number of pixels per second.",
			Action:  "Pass --zoom with a value greater than zero.",
		},
	},
	{
		err: ErrInvalidFPS,
		info: ErrorInfo{
			Message: "Frame rate must be a positive whole number.",
			Action:  "Set --fps or playback.fps to a value such as 24, 30 or 60.",
		},
	},
	{
		err: ErrNegativeTime,
		info: ErrorInfo{
			Message: "Times on the timeline cannot be negative.",
			Action:  "Use a time of zero or later.",
		},
	},
	{
		err: ErrInvalidDuration,
		info: ErrorInfo{
			Message: "Durations must be greater than zero.",
			Action:  "Check the duration of the project and every clip.",
		},
	},
	{
		err: ErrInvalidInterval,
		info: ErrorInfo{
			Message: "Tick interval must be greater than zero.",
		},
	},
	{
		err: ErrInvalidViewport,
		info: ErrorInfo{
			Message: "Viewport width and buffer cannot be negative.",
			Action:  "Pass --width with the visible width in pixels.",
		},
	},
	{
		err: ErrDomain,
		info: ErrorInfo{
			Message: "An engine operation received a value outside its valid range.",
		},
	},

	// ===================
	// Project
	// ===================
	{
		err: ErrTrackNotFound,
		info: ErrorInfo{
			Message: "The track does not exist in this project.",
			Action:  "Check the track ids in the project file.",
		},
	},
	{
		err: ErrClipNotFound,
		info: ErrorInfo{
			Message: "The clip does not exist in this project.",
		},
	},
	{
		err: ErrDuplicateID,
		info: ErrorInfo{
			Message: "Two tracks or clips share the same id.",
			Action:  "Give every track and clip a unique id, or omit ids to have them generated.",
		},
	},
	{
		err: ErrInvalidTrackKind,
		info: ErrorInfo{
			Message: "Unknown track kind.",
			Action:  "Use 'video' or 'audio'.",
		},
	},
	{
		err: ErrInvalidClipKind,
		info: ErrorInfo{
			Message: "Unknown clip kind.",
			Action:  "Use one of video, audio, ai, text or image.",
		},
	},
	{
		err: ErrProjectLoad,
		info: ErrorInfo{
			Message: "The project file could not be loaded.",
			Action:  "Check the path and that the file is valid YAML.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
		},
	},
	{
		err: ErrConfigInvalidTimeline,
		info: ErrorInfo{
			Message: "Invalid timeline configuration.",
			Action:  "Check the timeline section of .cutline/config.yaml.",
		},
	},
	{
		err: ErrConfigInvalidPlayback,
		info: ErrorInfo{
			Message: "Invalid playback configuration.",
			Action:  "Check the playback section of .cutline/config.yaml.",
		},
	},
	{
		err: ErrConfigInvalidLog,
		info: ErrorInfo{
			Message: "Invalid log configuration.",
			Action:  "Check the log section of .cutline/config.yaml.",
		},
	},
	{
		err: ErrConfigExists,
		info: ErrorInfo{
			Message: "A config file already exists there.",
			Action:  "Pass --force to overwrite it.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "A command argument has an unsupported value.",
			Action:  "Run the command with --help to see accepted values.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unsupported output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInteractiveRequired,
		info: ErrorInfo{
			Message: "This command needs an interactive terminal.",
			Action:  "Run it from a terminal, or use 'cutline play' for non-interactive playback.",
		},
	},
}

// getErrorInfo finds the first entry matching err anywhere in its chain.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing the user can do.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
