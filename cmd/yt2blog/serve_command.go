package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"jamesfarrell.me/youtube-to-blog/internal/api"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transcript and blog API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.cfg.API.Key == "" {
				return errors.New("SERVICE_API_KEY must be set")
			}
			if bind == "" {
				bind = ctx.cfg.API.Bind
			}

			svc, err := ctx.newService()
			if err != nil {
				return err
			}
			deps := api.Deps{Transcripts: svc, APIKey: ctx.cfg.API.Key, Logger: ctx.logger}
			if gen, err := ctx.newGenerator(); err != nil {
				ctx.logger.Warn("blog endpoint disabled", "error", err)
			} else {
				deps.Blogs = gen
			}

			srv := &http.Server{
				Addr:              bind,
				Handler:           api.NewRouter(deps),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				ctx.logger.Info("starting HTTP server", "addr", bind)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			ctx.logger.Info("shutting down HTTP server")
			defer svc.Cleanup()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default from config api.bind)")
	return cmd
}
