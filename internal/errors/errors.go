// Package errors provides centralized error handling for cutline.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrDomain indicates that an engine operation received input outside its
	// domain. It is the parent category of every *DomainError and signals a
	// caller programming error: the engine never clamps or retries it.
	ErrDomain = errors.New("domain error")

	// ErrInvalidZoom indicates a zoom that is zero, negative, or not a number.
	ErrInvalidZoom = errors.New("invalid zoom")

	// ErrInvalidFPS indicates a frame rate that is zero, negative, or too high.
	ErrInvalidFPS = errors.New("invalid frame rate")

	// ErrNegativeTime indicates a time value below zero where only
	// non-negative times are meaningful.
	ErrNegativeTime = errors.New("negative time")

	// ErrInvalidDuration indicates a project or clip duration that is not positive.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidInterval indicates a tick interval that is not positive.
	ErrInvalidInterval = errors.New("invalid tick interval")

	// ErrInvalidViewport indicates a negative viewport width or buffer.
	ErrInvalidViewport = errors.New("invalid viewport")

	// ErrTrackNotFound indicates a track id that does not exist in the timeline.
	ErrTrackNotFound = errors.New("track not found")

	// ErrClipNotFound indicates a clip id that does not exist in the timeline.
	ErrClipNotFound = errors.New("clip not found")

	// ErrInvalidArgument indicates a command argument outside its accepted values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrDuplicateID indicates two tracks or two clips share an id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidTrackKind indicates an unknown track kind.
	ErrInvalidTrackKind = errors.New("invalid track kind")

	// ErrInvalidClipKind indicates an unknown clip kind.
	ErrInvalidClipKind = errors.New("invalid clip kind")

	// ErrUnknownTrackProperty indicates a toggle on a property tracks do not have.
	ErrUnknownTrackProperty = errors.New("unknown track property")

	// ErrRunnerStarted indicates Start was called on a playback runner that is
	// already running.
	ErrRunnerStarted = errors.New("playback runner already started")

	// ErrProjectLoad indicates a project fixture could not be read or parsed.
	ErrProjectLoad = errors.New("project load failed")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidTimeline indicates an invalid timeline configuration value.
	ErrConfigInvalidTimeline = errors.New("invalid timeline configuration")

	// ErrConfigInvalidPlayback indicates an invalid playback configuration value.
	ErrConfigInvalidPlayback = errors.New("invalid playback configuration")

	// ErrConfigInvalidLog indicates an invalid log configuration value.
	ErrConfigInvalidLog = errors.New("invalid log configuration")

	// ErrConfigExists indicates a config file already exists and was not replaced.
	ErrConfigExists = errors.New("config file already exists")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInteractiveRequired indicates that a terminal is required but not available.
	ErrInteractiveRequired = errors.New("interactive terminal required")
)

// DomainError reports an input outside an operation's domain, such as a
// non-positive zoom or frame rate. It matches ErrDomain and its Kind with
// errors.Is.
type DomainError struct {
	// Op is the operation that rejected the input (e.g. "PixelToTime").
	Op string
	// Field names the offending argument.
	Field string
	// Value is the rejected value.
	Value float64
	// Kind is the specific sentinel, e.g. ErrInvalidZoom.
	Kind error
}

// NewDomainError creates a DomainError for op rejecting field=value.
func NewDomainError(op, field string, value float64, kind error) *DomainError {
	return &DomainError{Op: op, Field: field, Value: value, Kind: kind}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	kind := ErrDomain
	if e.Kind != nil {
		kind = e.Kind
	}
	return fmt.Sprintf("%s: %s: %s=%g", e.Op, kind, e.Field, e.Value)
}

// Unwrap exposes both ErrDomain and the specific Kind to errors.Is.
func (e *DomainError) Unwrap() []error {
	if e.Kind == nil {
		return []error{ErrDomain}
	}
	return []error{ErrDomain, e.Kind}
}

// IsDomainError reports whether err is or wraps a DomainError.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
// The CLI returns it for invalid user input, as opposed to runtime failures.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
