// Package youtube talks to the video platform through the yt-dlp binary.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
)

var (
	// ErrNotFound means the platform has no such video, or refuses to show it.
	ErrNotFound = errors.New("video not found")
	ErrMetadata = errors.New("metadata extraction failed")
	ErrDownload = errors.New("subtitle download failed")
)

var notFoundMarkers = []string{
	"Video unavailable",
	"Private video",
	"This video has been removed",
	"HTTP Error 404",
}

type Client struct {
	path   string
	logger *slog.Logger
}

func NewClient(path string, logger *slog.Logger) *Client {
	if path == "" {
		path = "yt-dlp"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{path: path, logger: logger}
}

// Metadata returns the title and the caption languages of a video without
// downloading media or captions.
func (c *Client) Metadata(ctx context.Context, url string) (*models.VideoMetadata, error) {
	start := time.Now()
	out, err := exec.CommandContext(ctx, c.path, MetadataArgs(url)...).CombinedOutput()
	if err != nil {
		return nil, classify(ErrMetadata, err, out)
	}
	meta, warnings, err := ParseMetadata(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
	}
	for _, w := range warnings {
		c.logger.Debug("yt-dlp", "line", w)
	}
	c.logger.Debug("metadata extracted", "url", url, "title", meta.Title, "elapsed", time.Since(start))
	return meta, nil
}

// DownloadSubtitles writes the selected caption track next to outBase. yt-dlp
// names the file <outBase>.<lang>.<format>.
func (c *Client) DownloadSubtitles(ctx context.Context, url, lang string, prov models.Provenance, format, outBase string) error {
	out, err := exec.CommandContext(ctx, c.path, SubtitleArgs(url, lang, prov, format, outBase)...).CombinedOutput()
	if err != nil {
		return classify(ErrDownload, err, out)
	}
	return nil
}

func MetadataArgs(url string) []string {
	return []string{"--no-config", "-j", "--skip-download", "--no-warnings", "--no-progress", url}
}

func SubtitleArgs(url, lang string, prov models.Provenance, format, outBase string) []string {
	args := []string{"--no-config", "--skip-download", "--no-warnings", "--no-progress"}
	if prov == models.ProvenanceAuto {
		args = append(args, "--write-auto-subs")
	} else {
		args = append(args, "--write-subs")
	}
	return append(args,
		"--sub-langs", lang,
		"--sub-format", format,
		"-o", outBase+".%(ext)s",
		url,
	)
}

// ParseMetadata picks the JSON document out of yt-dlp output. Any other
// non-empty line is returned as a warning.
func ParseMetadata(out []byte) (*models.VideoMetadata, []string, error) {
	var jsonLine string
	var warnings []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			jsonLine = line
		} else {
			warnings = append(warnings, line)
		}
	}
	if jsonLine == "" {
		return nil, warnings, errors.New("no JSON in yt-dlp output")
	}

	var meta models.VideoMetadata
	if err := json.Unmarshal([]byte(jsonLine), &meta); err != nil {
		return nil, warnings, fmt.Errorf("unmarshal yt-dlp output: %w", err)
	}
	if meta.Subtitles == nil {
		meta.Subtitles = map[string][]models.SubtitleFormat{}
	}
	if meta.AutomaticCaptions == nil {
		meta.AutomaticCaptions = map[string][]models.SubtitleFormat{}
	}
	return &meta, warnings, nil
}

func classify(kind, err error, out []byte) error {
	output := strings.TrimSpace(string(out))
	for _, marker := range notFoundMarkers {
		if strings.Contains(output, marker) {
			return fmt.Errorf("%w: %w: %s", kind, ErrNotFound, lastLine(output))
		}
	}
	return fmt.Errorf("%w: %v: %s", kind, err, lastLine(output))
}

func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}
