package models

// SubtitleFormat is one downloadable rendition of a caption track as listed
// by the video platform (vtt, srv3, json3, ...).
type SubtitleFormat struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// VideoMetadata is what the platform reports about a video before anything
// is downloaded. Subtitles holds user-provided tracks, AutomaticCaptions the
// speech-recognition ones, both keyed by language code.
type VideoMetadata struct {
	ID                string                      `json:"id"`
	Title             string                      `json:"title"`
	Subtitles         map[string][]SubtitleFormat `json:"subtitles"`
	AutomaticCaptions map[string][]SubtitleFormat `json:"automatic_captions"`
}

type FetchRequest struct {
	URL      string `json:"url"`
	Language string `json:"language"`
}

// Transcript is the normalized text of one video. Title is the sanitized,
// filesystem-safe form of the video title.
type Transcript struct {
	VideoID    string     `json:"videoId,omitempty"`
	Title      string     `json:"title"`
	Language   string     `json:"language"`
	Provenance Provenance `json:"provenance"`
	Text       string     `json:"transcript"`
}

type TranscriptRequest struct {
	URL      string `json:"url"`
	Language string `json:"language"`
}

type BlogRequest struct {
	Transcript string `json:"transcript"`
}

type BlogResponse struct {
	Markdown string `json:"markdown"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status,omitempty"`
}
