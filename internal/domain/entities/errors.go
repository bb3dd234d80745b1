package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrCaptureJobNotFound = errors.New("capture job not found")
	ErrNoCaptions         = errors.New("no captions captured")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrCaptureNotActive   = errors.New("capture job is not accepting captions")
	ErrTranscriberMissing = errors.New("transcription is not configured")
	ErrUploadNotFound     = errors.New("meeting has no stored upload")
	ErrCaptureDisabled    = errors.New("live capture is not configured")
)

// ErrorKind classifies pipeline failures so callers can branch on them explicitly
type ErrorKind string

const (
	KindBackendCall   ErrorKind = "backend_call"
	KindResponseParse ErrorKind = "response_parse"
	KindSourcePoll    ErrorKind = "source_poll"
	KindTranscode     ErrorKind = "transcode"
)

// KindOf returns the kind of a pipeline error, or "" for anything else
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}

// BackendCallError is a transport, auth, quota or timeout failure of a generation backend
type BackendCallError struct {
	Provider string
	Err      error
}

func (e *BackendCallError) Error() string {
	return fmt.Sprintf("%s backend call failed: %v", e.Provider, e.Err)
}

func (e *BackendCallError) Unwrap() error   { return e.Err }
func (e *BackendCallError) Kind() ErrorKind { return KindBackendCall }

// ParseReason tells an empty response apart from a malformed one
type ParseReason string

const (
	ParseReasonEmpty     ParseReason = "empty"
	ParseReasonMalformed ParseReason = "malformed"
)

// ResponseParseError means the backend answered but no valid record could be read from it
type ResponseParseError struct {
	Reason ParseReason
	Err    error
}

func (e *ResponseParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("response parse failed: %s", e.Reason)
	}
	return fmt.Sprintf("response parse failed (%s): %v", e.Reason, e.Err)
}

func (e *ResponseParseError) Unwrap() error   { return e.Err }
func (e *ResponseParseError) Kind() ErrorKind { return KindResponseParse }

// SourcePollError is a transient failure reading captions on a single poll
type SourcePollError struct {
	Poll int
	Err  error
}

func (e *SourcePollError) Error() string {
	return fmt.Sprintf("caption poll %d failed: %v", e.Poll, e.Err)
}

func (e *SourcePollError) Unwrap() error   { return e.Err }
func (e *SourcePollError) Kind() ErrorKind { return KindSourcePoll }

// TranscodeError is a media conversion failure
type TranscodeError struct {
	Input string
	Err   error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("transcode %s: %v", e.Input, e.Err)
}

func (e *TranscodeError) Unwrap() error   { return e.Err }
func (e *TranscodeError) Kind() ErrorKind { return KindTranscode }
