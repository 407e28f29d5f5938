package transcription

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamesfarrell.me/youtube-to-blog/internal/logging"
	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
)

func cuesOf(texts ...string) []models.Cue {
	cues := make([]models.Cue, len(texts))
	for i, text := range texts {
		cues[i] = models.Cue{Number: i + 1, Text: text}
	}
	return cues
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"<i>italic</i>", "italic"},
		{"Hello<00:00:00.320><c> there</c>", "Hello there"},
		{"<c.colorE5E5E5>grey</c>", "grey"},
		{"a <> b", "a <> b"},
		{"<<b>>", ">"},
		{"x < y", "x < y"},
		{"", ""},
	}
	for _, tt := range tests {
		got := StripMarkup(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, StripMarkup(got), "idempotent for %q", tt.in)
	}
}

func TestNormalizeEvenPositions(t *testing.T) {
	n := NewNormalizer(EvenPositions, logging.Discard())

	got := n.Normalize(cuesOf("Hello", "Hello", "World", "World"))
	assert.Equal(t, "Hello\nWorld", got)

	// deterministic across runs
	assert.Equal(t, got, n.Normalize(cuesOf("Hello", "Hello", "World", "World")))
}

func TestNormalizeEvenPositionsDropsEmptyAndOdd(t *testing.T) {
	n := NewNormalizer(EvenPositions, logging.Discard())

	got := n.Normalize(cuesOf("<c> </c>", "one", "two", "three", " <i>four</i> "))
	assert.Equal(t, "two\nfour", got)
}

func TestNormalizeAdjacentDistinct(t *testing.T) {
	n := NewNormalizer(AdjacentDistinct, logging.Discard())

	got := n.Normalize(cuesOf("Hello", "<b>Hello</b>", "unique", "World", "World", "Hello"))
	assert.Equal(t, "Hello\nunique\nWorld\nHello", got)
}

func TestNormalizeEmpty(t *testing.T) {
	for _, policy := range []CuePolicy{EvenPositions, AdjacentDistinct} {
		n := NewNormalizer(policy, logging.Discard())
		assert.Equal(t, "", n.Normalize(nil))
		assert.Equal(t, "", n.Normalize(cuesOf("", "<br>", "  ")))
	}
}

func TestNormalizeTrack(t *testing.T) {
	dir := t.TempDir()
	n := NewNormalizer(EvenPositions, logging.Discard())

	good := filepath.Join(dir, "good.en.vtt")
	require.NoError(t, os.WriteFile(good, []byte(youtubeVTT), 0o644))
	assert.Equal(t, "Hello there\nGeneral Kenobi", n.NormalizeTrack(good, "en", models.ProvenanceAuto))

	bad := filepath.Join(dir, "bad.en.vtt")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	assert.Equal(t, "", n.NormalizeTrack(bad, "en", models.ProvenanceAuto), "parse failures degrade to empty text")
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", "even", "adjacent"} {
		p, err := PolicyByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}
	_, err := PolicyByName("fuzzy")
	assert.Error(t, err)
}
