package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Handlers map kinds to HTTP
// statuses; everything else about the underlying error stays in the
// server-side logs.
type Kind string

const (
	KindMissingInput        Kind = "missing_input"
	KindInvalidSource       Kind = "invalid_source"
	KindSourceUnavailable   Kind = "source_unavailable"
	KindExtractionFailed    Kind = "extraction_failed"
	KindTranscriptionFailed Kind = "transcription_failed"
	KindNotImplemented      Kind = "not_implemented"
)

// Error is the failure type every pipeline stage returns. Message is
// safe to show to callers; Err carries the internal detail.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errf builds a pipeline error wrapping err (err may be nil).
func Errf(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the failure kind, or "" for untyped errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// PublicMessage is what the caller is allowed to see.
func PublicMessage(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	return "internal error"
}
