// Package batch drives the pipeline over a list of video URLs, one at a time.
// A failure on one URL is recorded and never stops the rest of the run.
package batch

import (
	"context"
	"log/slog"

	"jamesfarrell.me/youtube-to-blog/internal/storage/models"
	"jamesfarrell.me/youtube-to-blog/internal/transcription"
)

// StatusPublished marks a URL whose transcript was turned into a blog post.
const StatusPublished transcription.Status = "published"

type Fetcher interface {
	Fetch(ctx context.Context, req models.FetchRequest) (*models.Transcript, error)
	Save(t *models.Transcript) (string, error)
	Cleanup()
}

type Writer interface {
	Generate(ctx context.Context, transcript string) (string, error)
	Save(title, markdown string) (string, error)
}

type Marker interface {
	MarkProcessed(url string) error
}

type Outcome struct {
	URL            string
	Title          string
	Status         transcription.Status
	Reason         string
	TranscriptPath string
	BlogPath       string
}

type Runner struct {
	fetcher  Fetcher
	writer   Writer
	marker   Marker
	language string
	logger   *slog.Logger
}

type Option func(*Runner)

// WithWriter turns every transcript into a blog post.
func WithWriter(w Writer) Option { return func(r *Runner) { r.writer = w } }

// WithMarker records finished URLs, e.g. in the CSV queue.
func WithMarker(m Marker) Option { return func(r *Runner) { r.marker = m } }

func WithLanguage(lang string) Option { return func(r *Runner) { r.language = lang } }

func NewRunner(f Fetcher, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{fetcher: f, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes urls in order and returns one Outcome per URL attempted. A
// cancelled context stops the run before the next URL starts.
func (r *Runner) Run(ctx context.Context, urls []string) []Outcome {
	defer r.fetcher.Cleanup()

	outcomes := make([]Outcome, 0, len(urls))
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("batch interrupted", "remaining", len(urls)-i, "error", err)
			break
		}
		outcomes = append(outcomes, r.process(ctx, url))
	}
	return outcomes
}

func (r *Runner) process(ctx context.Context, url string) Outcome {
	logger := r.logger.With("url", url)
	out := Outcome{URL: url}

	t, err := r.fetcher.Fetch(ctx, models.FetchRequest{URL: url, Language: r.language})
	if err != nil {
		out.Status = transcription.StatusOf(err)
		out.Reason = err.Error()
		return out
	}
	out.Title = t.Title
	out.Status = transcription.StatusTranscribed

	// A transcript that cannot be written is reported but the text is still
	// good for the blog step.
	if path, err := r.fetcher.Save(t); err != nil {
		out.Reason = err.Error()
	} else {
		out.TranscriptPath = path
	}

	if r.writer != nil {
		md, err := r.writer.Generate(ctx, t.Text)
		if err != nil {
			logger.Error("blog generation failed", "title", t.Title, "error", err)
			out.Status = transcription.StatusFailed
			out.Reason = "blog: " + err.Error()
			return out
		}
		path, err := r.writer.Save(t.Title, md)
		if err != nil {
			logger.Error("failed to save blog post", "title", t.Title, "error", err)
			out.Status = transcription.StatusFailed
			out.Reason = "blog: " + err.Error()
			return out
		}
		out.BlogPath = path
		out.Status = StatusPublished
	}

	// Nothing reached disk: leave the URL pending so a later run retries it.
	if out.TranscriptPath == "" && out.BlogPath == "" {
		return out
	}

	if r.marker != nil {
		if err := r.marker.MarkProcessed(url); err != nil {
			logger.Warn("could not mark url processed", "error", err)
			out.Reason = err.Error()
		}
	}
	return out
}

// Summary counts outcomes per status.
func Summary(outcomes []Outcome) map[transcription.Status]int {
	counts := make(map[transcription.Status]int)
	for _, o := range outcomes {
		counts[o.Status]++
	}
	return counts
}
