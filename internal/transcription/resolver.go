package transcription

import "jamesfarrell.me/youtube-to-blog/internal/storage/models"

// Selection is the outcome of subtitle availability resolution.
type Selection int

const (
	Unavailable Selection = iota
	UseUserProvided
	UseAutoGenerated
)

func (s Selection) String() string {
	switch s {
	case UseUserProvided:
		return "user-provided"
	case UseAutoGenerated:
		return "auto-generated"
	default:
		return "unavailable"
	}
}

// Provenance of the track the selection points at. Only meaningful when the
// selection is not Unavailable.
func (s Selection) Provenance() models.Provenance {
	if s == UseAutoGenerated {
		return models.ProvenanceAuto
	}
	return models.ProvenanceUser
}

// Resolve prefers human-authored captions over automatic ones for lang.
func Resolve(meta *models.VideoMetadata, lang string) Selection {
	if meta == nil {
		return Unavailable
	}
	if _, ok := meta.Subtitles[lang]; ok {
		return UseUserProvided
	}
	if _, ok := meta.AutomaticCaptions[lang]; ok {
		return UseAutoGenerated
	}
	return Unavailable
}
