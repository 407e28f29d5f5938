package transcription

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxTitleLen = 50

// SanitizeTitle derives a file-name-safe title: accents folded, whitespace
// runs collapsed to '-', anything outside [A-Za-z0-9-] dropped, capped at 50
// characters.
func SanitizeTitle(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	joined := strings.Join(strings.Fields(folded), "-")
	var b strings.Builder
	for _, r := range joined {
		if r == '-' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > maxTitleLen {
		out = out[:maxTitleLen]
	}
	if out == "" {
		return "video"
	}
	return out
}
