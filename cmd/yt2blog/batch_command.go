package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jamesfarrell.me/youtube-to-blog/internal/batch"
	"jamesfarrell.me/youtube-to-blog/internal/queue"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var transcriptsOnly bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every pending URL in the CSV queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := queue.New(ctx.cfg.QueueFile)
			urls, err := q.Pending()
			if err != nil {
				return err
			}
			if len(urls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending URLs.")
				return nil
			}

			svc, err := ctx.newService()
			if err != nil {
				return err
			}
			opts := []batch.Option{batch.WithLanguage(ctx.cfg.Language), batch.WithMarker(q)}
			if !transcriptsOnly {
				gen, err := ctx.newGenerator()
				if err != nil {
					return err
				}
				opts = append(opts, batch.WithWriter(gen))
			}

			outcomes := batch.NewRunner(svc, ctx.logger, opts...).Run(cmd.Context(), urls)
			printOutcomes(cmd.OutOrStdout(), outcomes)
			return cmd.Context().Err()
		},
	}
	cmd.Flags().BoolVar(&transcriptsOnly, "transcripts-only", false, "Skip blog generation and only save transcripts")
	return cmd
}
