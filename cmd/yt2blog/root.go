package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"jamesfarrell.me/youtube-to-blog/internal/blog"
	"jamesfarrell.me/youtube-to-blog/internal/config"
	"jamesfarrell.me/youtube-to-blog/internal/logging"
	"jamesfarrell.me/youtube-to-blog/internal/transcription"
	"jamesfarrell.me/youtube-to-blog/internal/youtube"
)

type commandContext struct {
	configFlag   string
	languageFlag string
	logLevelFlag string

	once   sync.Once
	cfg    *config.Config
	logger *slog.Logger
	err    error
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "yt2blog",
		Short:         "Turn YouTube captions into transcripts and blog posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVarP(&ctx.languageFlag, "language", "l", "", "Caption language code, e.g. en or fr")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newBlogCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))

	return rootCmd
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.once.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		cfg.ApplyEnv(os.Getenv)
		if c.languageFlag != "" {
			cfg.Language = c.languageFlag
		}
		if c.logLevelFlag != "" {
			cfg.Log.Level = c.logLevelFlag
		}
		if err := cfg.Validate(); err != nil {
			c.err = fmt.Errorf("invalid configuration: %w", err)
			return
		}

		logger, err := logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			c.err = err
			return
		}
		c.cfg = &cfg
		c.logger = logger
	})
	return c.cfg, c.err
}

func (c *commandContext) newService() (*transcription.Service, error) {
	policy, err := transcription.PolicyByName(c.cfg.Dedup)
	if err != nil {
		return nil, err
	}
	client := youtube.NewClient(c.cfg.YtDlpPath, c.logger)
	normalizer := transcription.NewNormalizer(policy, c.logger)
	return transcription.NewService(client, normalizer, transcription.Options{
		Language:       c.cfg.Language,
		SubtitleFormat: c.cfg.SubtitleFormat,
		SubtitlesDir:   c.cfg.SubtitlesDir,
		TranscriptsDir: c.cfg.TranscriptsDir,
	}, c.logger), nil
}

func (c *commandContext) newGenerator() (*blog.Generator, error) {
	if c.cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	prompt, err := c.cfg.Prompt()
	if err != nil {
		return nil, err
	}
	client := blog.NewClient(c.cfg.OpenAI.APIKey, c.cfg.OpenAI.BaseURL)
	return blog.NewGenerator(client, blog.Config{
		Model:  c.cfg.OpenAI.Model,
		Prompt: prompt,
		OutDir: c.cfg.BlogsDir,
	}, c.logger), nil
}
