package models

import "time"

// Provenance tells who authored a caption track.
type Provenance string

const (
	ProvenanceUser Provenance = "user-provided"
	ProvenanceAuto Provenance = "auto-generated"
)

// Cue is a single timed caption entry. Text may still carry inline markup.
type Cue struct {
	Number int
	Start  time.Duration
	End    time.Duration
	Text   string
}

// CaptionTrack is the ordered cue list of one video in one language.
type CaptionTrack struct {
	Language   string
	Provenance Provenance
	Cues       []Cue
}
