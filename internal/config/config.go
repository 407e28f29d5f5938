// Package config loads yt2blog settings from an optional config file and the
// environment. Components receive the resulting Config explicitly.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type OpenAI struct {
	APIKey  string `yaml:"api_key" toml:"api_key" json:"api_key"`
	BaseURL string `yaml:"base_url" toml:"base_url" json:"base_url"`
	Model   string `yaml:"model" toml:"model" json:"model"`
}

type API struct {
	Bind string `yaml:"bind" toml:"bind" json:"bind"`
	Key  string `yaml:"key" toml:"key" json:"key"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

type Config struct {
	Language       string `yaml:"language" toml:"language" json:"language"`
	TranscriptsDir string `yaml:"transcripts_dir" toml:"transcripts_dir" json:"transcripts_dir"`
	BlogsDir       string `yaml:"blogs_dir" toml:"blogs_dir" json:"blogs_dir"`
	SubtitlesDir   string `yaml:"subtitles_dir" toml:"subtitles_dir" json:"subtitles_dir"`
	SubtitleFormat string `yaml:"subtitle_format" toml:"subtitle_format" json:"subtitle_format"`
	Dedup          string `yaml:"dedup" toml:"dedup" json:"dedup"`
	InputFile      string `yaml:"input_file" toml:"input_file" json:"input_file"`
	QueueFile      string `yaml:"queue_file" toml:"queue_file" json:"queue_file"`
	YtDlpPath      string `yaml:"ytdlp_path" toml:"ytdlp_path" json:"ytdlp_path"`
	SystemPrompt   string `yaml:"system_prompt" toml:"system_prompt" json:"system_prompt"`
	PromptFile     string `yaml:"prompt_file" toml:"prompt_file" json:"prompt_file"`

	OpenAI OpenAI `yaml:"openai" toml:"openai" json:"openai"`
	API    API    `yaml:"api" toml:"api" json:"api"`
	Log    Log    `yaml:"log" toml:"log" json:"log"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		Language:       "en",
		TranscriptsDir: filepath.Join("data", "transcripts"),
		BlogsDir:       filepath.Join("data", "blogs"),
		SubtitlesDir:   "temp_subtitles",
		SubtitleFormat: "vtt",
		Dedup:          "even",
		InputFile:      "input_url.txt",
		QueueFile:      "input_url.csv",
		YtDlpPath:      "yt-dlp",
		OpenAI:         OpenAI{Model: "o1-preview"},
		API:            API{Bind: ":8080"},
		Log:            Log{Level: "info", Format: "auto"},
	}
}

// Load reads path on top of Default. A missing file is only an error when
// the caller asked for a path other than DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables. lookup is usually
// os.Getenv; tests pass a map-backed function.
func (c *Config) ApplyEnv(lookup func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			*dst = v
		}
	}
	set(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	set(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	set(&c.API.Key, "SERVICE_API_KEY")
	set(&c.Language, "YT2BLOG_LANGUAGE")
	set(&c.Log.Level, "YT2BLOG_LOG_LEVEL")
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	var errs []error
	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("language %q: %w", c.Language, err))
	}
	switch c.SubtitleFormat {
	case "vtt", "srt":
	default:
		errs = append(errs, fmt.Errorf("subtitle_format must be vtt or srt, got %q", c.SubtitleFormat))
	}
	switch c.Dedup {
	case "even", "adjacent":
	default:
		errs = append(errs, fmt.Errorf("dedup must be even or adjacent, got %q", c.Dedup))
	}
	for name, dir := range map[string]string{
		"transcripts_dir": c.TranscriptsDir,
		"blogs_dir":       c.BlogsDir,
		"subtitles_dir":   c.SubtitlesDir,
	} {
		if strings.TrimSpace(dir) == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	return errors.Join(errs...)
}

// Prompt returns the blog prompt template: prompt_file wins over
// system_prompt. An empty result means the built-in template.
func (c *Config) Prompt() (string, error) {
	if c.PromptFile == "" {
		return c.SystemPrompt, nil
	}
	data, err := os.ReadFile(c.PromptFile)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	return string(data), nil
}
