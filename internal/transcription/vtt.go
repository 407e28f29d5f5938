package transcription

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/asticode/go-astisub"

	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
)

const (
	FormatVTT = "vtt"
	FormatSRT = "srt"
)

// ErrEmptyTrack is returned when a caption file parses but holds no cues.
var ErrEmptyTrack = errors.New("caption track has no cues")

// headerMetaRe matches the "Kind:" / "Language:" lines YouTube puts between
// the WEBVTT signature and the first cue.
var headerMetaRe = regexp.MustCompile(`^(Kind|Language):`)

// ParseVTT parses WebVTT content into cues.
func ParseVTT(content string) ([]models.Cue, error) {
	return ReadCues(strings.NewReader(content), FormatVTT)
}

// ReadCues parses a caption document of the given format (vtt or srt) into
// cues in file order.
func ReadCues(r io.Reader, format string) ([]models.Cue, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read captions: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))

	var subs *astisub.Subtitles
	switch format {
	case FormatVTT:
		content, err := cleanVTT(string(raw))
		if err != nil {
			return nil, err
		}
		subs, err = astisub.ReadFromWebVTT(strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("invalid VTT format: %w", err)
		}
	case FormatSRT:
		subs, err = astisub.ReadFromSRT(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid SRT format: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported caption format %q", format)
	}

	cues := make([]models.Cue, 0, len(subs.Items))
	for i, item := range subs.Items {
		cues = append(cues, models.Cue{
			Number: i + 1,
			Start:  item.StartAt,
			End:    item.EndAt,
			Text:   itemText(item),
		})
	}
	if len(cues) == 0 {
		return nil, ErrEmptyTrack
	}
	return cues, nil
}

// ReadTrack reads a downloaded caption file. The format comes from the file
// extension.
func ReadTrack(path, lang string, prov models.Provenance) (models.CaptionTrack, error) {
	track := models.CaptionTrack{Language: lang, Provenance: prov}

	f, err := os.Open(path)
	if err != nil {
		return track, fmt.Errorf("open captions: %w", err)
	}
	defer f.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cues, err := ReadCues(f, format)
	if err != nil {
		return track, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	track.Cues = cues
	return track, nil
}

// cleanVTT drops the header metadata lines and every whitespace-only line.
// YouTube auto captions pad cues with " " lines, which astisub would take as
// the end of the cue.
func cleanVTT(content string) (string, error) {
	lines := strings.Split(content, "\n")
	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if first == len(lines) || !strings.HasPrefix(lines[first], "WEBVTT") {
		return "", errors.New("invalid VTT format: missing WEBVTT header")
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[first])
	inHeader := true
	for _, line := range lines[first+1:] {
		if line != "" && strings.TrimSpace(line) == "" {
			continue
		}
		if inHeader {
			if strings.TrimSpace(line) == "" {
				inHeader = false
			} else if headerMetaRe.MatchString(line) {
				continue
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n"), nil
}

func itemText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, l := range item.Lines {
		parts := make([]string, 0, len(l.Items))
		for _, li := range l.Items {
			parts = append(parts, li.Text)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}
