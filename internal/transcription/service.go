package transcription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"jamesfarrell.me/youtube-to-blog/internal/fsutil"
	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
	"jamesfarrell.me/youtube-to-blog/internal/youtube"
)

// VideoClient is the part of the video platform the pipeline needs.
type VideoClient interface {
	Metadata(ctx context.Context, url string) (*models.VideoMetadata, error)
	DownloadSubtitles(ctx context.Context, url, lang string, prov models.Provenance, format, outBase string) error
}

type Options struct {
	Language       string // used when a request leaves it empty
	SubtitleFormat string
	SubtitlesDir   string
	TranscriptsDir string
}

type Service struct {
	client     VideoClient
	normalizer *Normalizer
	opts       Options
	logger     *slog.Logger
	newID      func() string
}

func NewService(client VideoClient, normalizer *Normalizer, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if normalizer == nil {
		normalizer = NewNormalizer(EvenPositions, logger)
	}
	if opts.SubtitleFormat == "" {
		opts.SubtitleFormat = FormatVTT
	}
	return &Service{
		client:     client,
		normalizer: normalizer,
		opts:       opts,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

// Fetch runs one request to completion: validate, look up metadata, pick a
// caption track, download it, normalize it and remove the temp file.
func (s *Service) Fetch(ctx context.Context, req models.FetchRequest) (*models.Transcript, error) {
	lang := req.Language
	if lang == "" {
		lang = s.opts.Language
	}
	logger := s.logger.With("url", req.URL, "language", lang)

	if !youtube.IsVideoURL(req.URL) {
		logger.Error("invalid YouTube URL")
		return nil, &FetchError{URL: req.URL, Kind: KindInvalidInput, Err: ErrInvalidURL}
	}

	meta, err := s.client.Metadata(ctx, req.URL)
	if err != nil {
		logger.Error("failed to extract video info", "error", err)
		return nil, &FetchError{URL: req.URL, Kind: KindUpstreamUnavailable, Err: fmt.Errorf("%w: %w", ErrMetadataFetch, err)}
	}
	title := SanitizeTitle(meta.Title)
	logger = logger.With("title", title)

	sel := Resolve(meta, lang)
	if sel == Unavailable {
		logger.Warn("no subtitles available")
		return nil, &FetchError{URL: req.URL, Kind: KindNoContent, Err: ErrNoCaptions}
	}

	if err := os.MkdirAll(s.opts.SubtitlesDir, 0o755); err != nil {
		logger.Error("cannot create subtitles directory", "dir", s.opts.SubtitlesDir, "error", err)
		return nil, &FetchError{URL: req.URL, Kind: KindLocalIO, Err: fmt.Errorf("%w: %w", ErrDownloadFailed, err)}
	}

	outBase := filepath.Join(s.opts.SubtitlesDir, title+"-"+s.newID())
	if err := s.client.DownloadSubtitles(ctx, req.URL, lang, sel.Provenance(), s.opts.SubtitleFormat, outBase); err != nil {
		logger.Error("failed to download subtitles", "type", sel, "error", err)
		return nil, &FetchError{URL: req.URL, Kind: KindUpstreamUnavailable, Err: fmt.Errorf("%w: %w", ErrDownloadFailed, err)}
	}

	subtitlePath := fmt.Sprintf("%s.%s.%s", outBase, lang, s.opts.SubtitleFormat)
	if !fsutil.FileExists(subtitlePath) {
		logger.Warn("subtitle file not found", "path", subtitlePath)
		return nil, &FetchError{URL: req.URL, Kind: KindUpstreamUnavailable, Err: fmt.Errorf("%w: %s was not written", ErrDownloadFailed, filepath.Base(subtitlePath))}
	}
	defer s.removeTemp(logger, subtitlePath)

	text := s.normalizer.NormalizeTrack(subtitlePath, lang, sel.Provenance())
	if text == "" {
		logger.Warn("no transcript available")
		return nil, &FetchError{URL: req.URL, Kind: KindNoContent, Err: ErrTranscriptEmpty}
	}

	logger.Info("fetched transcript", "type", sel)
	return &models.Transcript{
		VideoID:    meta.ID,
		Title:      title,
		Language:   lang,
		Provenance: sel.Provenance(),
		Text:       text,
	}, nil
}

// Save writes the transcript to <TranscriptsDir>/<title>.txt.
func (s *Service) Save(t *models.Transcript) (string, error) {
	path := filepath.Join(s.opts.TranscriptsDir, t.Title+".txt")
	if err := fsutil.WriteFileAtomic(path, []byte(t.Text), 0o644); err != nil {
		s.logger.Warn("failed to save transcript", "title", t.Title, "error", err)
		return "", &FetchError{URL: path, Kind: KindLocalIO, Err: err}
	}
	s.logger.Info("transcript saved", "path", path)
	return path, nil
}

// Cleanup removes the subtitles directory once nothing is left in it.
func (s *Service) Cleanup() {
	removed, err := fsutil.RemoveDirIfEmpty(s.opts.SubtitlesDir)
	if err != nil {
		s.logger.Warn("could not remove subtitles directory", "dir", s.opts.SubtitlesDir, "error", err)
		return
	}
	if removed {
		s.logger.Debug("removed empty subtitles directory", "dir", s.opts.SubtitlesDir)
	}
}

func (s *Service) removeTemp(logger *slog.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not remove subtitle file", "path", path, "error", err)
		return
	}
	logger.Debug("removed temporary subtitle file", "path", path)
}
