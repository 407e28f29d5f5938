package transcription

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL      = errors.New("invalid video URL")
	ErrMetadataFetch   = errors.New("failed to extract video info")
	ErrNoCaptions      = errors.New("no captions in requested language")
	ErrDownloadFailed  = errors.New("subtitle download failed")
	ErrTranscriptEmpty = errors.New("transcript is empty")
)

// Kind groups failures by how the caller should react to them.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindUpstreamUnavailable
	KindNoContent
	KindLocalIO
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid-input"
	case KindUpstreamUnavailable:
		return "upstream-unavailable"
	case KindNoContent:
		return "no-content"
	case KindLocalIO:
		return "local-io"
	default:
		return "unknown"
	}
}

// FetchError is the error type returned by the pipeline.
type FetchError struct {
	URL  string
	Kind Kind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf returns the kind carried by err, or 0 when err is not a FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// Status is the per-URL outcome reported to users.
type Status string

const (
	StatusTranscribed Status = "transcribed"
	StatusNoContent   Status = "no-content"
	StatusFailed      Status = "failed"
)

// StatusOf collapses a pipeline result into a Status. "No captions" and
// "empty transcript" are expected outcomes, not failures.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusTranscribed
	case KindOf(err) == KindNoContent:
		return StatusNoContent
	default:
		return StatusFailed
	}
}
