package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jamesfarrell.me/youtube-to-blog/internal/batch"
	"jamesfarrell.me/youtube-to-blog/internal/queue"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [url...]",
		Short: "Download transcripts for the given URLs or the input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := args
			if len(urls) == 0 {
				var err error
				urls, err = queue.ReadURLFile(ctx.cfg.InputFile)
				if err != nil {
					return err
				}
			}
			if len(urls) == 0 {
				return errors.New("no URLs to process")
			}

			svc, err := ctx.newService()
			if err != nil {
				return err
			}
			runner := batch.NewRunner(svc, ctx.logger, batch.WithLanguage(ctx.cfg.Language))
			outcomes := runner.Run(cmd.Context(), urls)
			printOutcomes(cmd.OutOrStdout(), outcomes)
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Processing completed.")
			return nil
		},
	}
}
