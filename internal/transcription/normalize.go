package transcription

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
)

var markupRe = regexp.MustCompile(`<[^>]+>`)

// StripMarkup removes every angle-bracket tag and the surrounding whitespace.
// Applying it twice gives the same result as applying it once.
func StripMarkup(s string) string {
	return strings.TrimSpace(markupRe.ReplaceAllString(s, ""))
}

// CuePolicy decides whether the cleaned cue at index survives. previous is
// the cleaned text of the cue at index-1 ("" for the first cue), whether or
// not that cue was kept. Empty cues are dropped before the policy is asked.
type CuePolicy func(index int, text, previous string) bool

// EvenPositions keeps cues 0, 2, 4, ... Caption sources usually emit every
// spoken line twice, so this halves the repetition. It drops unique lines
// whenever a source does not follow the strict alternating pattern.
func EvenPositions(index int, _, _ string) bool {
	return index%2 == 0
}

// AdjacentDistinct drops a cue whose text repeats the cue right before it.
func AdjacentDistinct(index int, text, previous string) bool {
	return index == 0 || text != previous
}

// PolicyByName maps the dedup config value to a policy.
func PolicyByName(name string) (CuePolicy, error) {
	switch name {
	case "", "even":
		return EvenPositions, nil
	case "adjacent":
		return AdjacentDistinct, nil
	default:
		return nil, fmt.Errorf("unknown dedup policy %q", name)
	}
}

// Normalizer turns cues into plain text, one surviving cue per line.
type Normalizer struct {
	policy CuePolicy
	logger *slog.Logger
}

func NewNormalizer(policy CuePolicy, logger *slog.Logger) *Normalizer {
	if policy == nil {
		policy = EvenPositions
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{policy: policy, logger: logger}
}

// Normalize never reorders cues. An empty or fully filtered track yields "".
func (n *Normalizer) Normalize(cues []models.Cue) string {
	lines := make([]string, 0, len(cues)/2+1)
	previous := ""
	for i, cue := range cues {
		text := StripMarkup(cue.Text)
		if text != "" && n.policy(i, text, previous) {
			lines = append(lines, text)
		}
		previous = text
	}
	n.logger.Debug("normalized cues", "cues", len(cues), "kept", len(lines))
	return strings.Join(lines, "\n")
}

// NormalizeTrack reads and normalizes a caption file. A file that cannot be
// parsed is logged and yields "".
func (n *Normalizer) NormalizeTrack(path, lang string, prov models.Provenance) string {
	track, err := ReadTrack(path, lang, prov)
	if err != nil {
		n.logger.Error("error reading subtitle file", "path", path, "error", err)
		return ""
	}
	return n.Normalize(track.Cues)
}
