package errors

import (
	"fmt"
	"strings"
)

// Failure kinds surfaced by the transcriber. Typed errors below match them
// through errors.Is.
var (
	ErrUnsupportedModel = New("unsupported model")
	ErrModelUnavailable = New("model unavailable")
	ErrMediaConversion  = New("media conversion failed")
	ErrTranscription    = New("transcription failed")

	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")

	// File errors
	ErrFileNotFound = New("file not found")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Kind tags err with one of the failure kinds above while keeping err as the cause.
// The result matches both kind and err through errors.Is.
func Kind(kind *Error, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, cause: err}
}

type kindError struct {
	kind  *Error
	cause error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %v", e.kind.message, e.cause)
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// UnsupportedModel returns an ErrUnsupportedModel for the given identifier.
func UnsupportedModel(identifier string) error {
	return Wrapf(Newf("identifier %q", identifier), ErrUnsupportedModel.message)
}

// ModelUnavailable returns an ErrModelUnavailable explaining why the family could not be loaded.
func ModelUnavailable(family string, reason error) error {
	if reason == nil {
		reason = New("no loader")
	}
	return Kind(ErrModelUnavailable, Wrapf(reason, "%s", family))
}

// MediaConversionError reports a failed run of the external media tool.
type MediaConversionError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *MediaConversionError) Error() string {
	msg := fmt.Sprintf("%s: %s exited with status %d", ErrMediaConversion.message, e.Tool, e.ExitCode)
	if e.Err != nil && e.ExitCode < 0 {
		msg = fmt.Sprintf("%s: %s: %v", ErrMediaConversion.message, e.Tool, e.Err)
	}
	if tail := lastLines(e.Stderr, 5); tail != "" {
		msg += ", stderr: " + tail
	}
	return msg
}

func (e *MediaConversionError) Unwrap() error { return e.Err }

func (e *MediaConversionError) Is(target error) bool {
	return target == ErrMediaConversion
}

// TranscriptionError reports a failed inference over AudioPath.
type TranscriptionError struct {
	AudioPath string
	Family    string
	Err       error
}

func (e *TranscriptionError) Error() string {
	if e.Family != "" {
		return fmt.Sprintf("%s (%s) for %s: %v", ErrTranscription.message, e.Family, e.AudioPath, e.Err)
	}
	return fmt.Sprintf("%s for %s: %v", ErrTranscription.message, e.AudioPath, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

func (e *TranscriptionError) Is(target error) bool {
	return target == ErrTranscription
}

// Helper functions for common patterns

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Newf("%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Newf("%s is invalid: %s", field, reason)
}

// AlreadyExists returns an error for items that already exist
func AlreadyExists(itemType string, identifier string) error {
	return Newf("%s already exists: %s", itemType, identifier)
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}
