// Package blog turns transcripts into Markdown blog posts with a chat
// completion model.
package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"jamesfarrell.me/youtube-to-blog/internal/fsutil"
)

var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrEmptyCompletion = errors.New("model returned no content")
)

// Completer is the slice of the OpenAI client the generator uses.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Prompt  string
	OutDir  string
}

type Generator struct {
	client Completer
	cfg    Config
	logger *slog.Logger
}

// NewClient builds an OpenAI client, honouring a custom base URL.
func NewClient(apiKey, baseURL string) *openai.Client {
	cc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cc.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cc)
}

func NewGenerator(client Completer, cfg Config, logger *slog.Logger) *Generator {
	if cfg.Model == "" {
		cfg.Model = "o1-preview"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, cfg: cfg, logger: logger}
}

// Generate renders the prompt around transcript and returns the model's
// Markdown answer.
func (g *Generator) Generate(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Render(g.cfg.Prompt, transcript)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	g.logger.Info("blog post generated", "model", g.cfg.Model, "total_tokens", resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}

// Save writes markdown to <OutDir>/<title>.md and returns the path.
func (g *Generator) Save(title, markdown string) (string, error) {
	path := filepath.Join(g.cfg.OutDir, title+".md")
	if err := fsutil.WriteFileAtomic(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("save blog post: %w", err)
	}
	g.logger.Info("blog post saved", "path", path)
	return path, nil
}

// SaveAs writes markdown to an explicit path.
func (g *Generator) SaveAs(path, markdown string) error {
	if err := fsutil.WriteFileAtomic(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("save blog post: %w", err)
	}
	g.logger.Info("blog post saved", "path", path)
	return nil
}
