package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/mcp"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/storage"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the FAQ engine as an MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			// stdout is reserved for the MCP protocol
			a.logger.Info().
				Str("version", version).
				Str("build_mode", storage.BuildMode).
				Str("driver", storage.DriverName).
				Msg("faqbot MCP server starting")

			a.watch(ctx)

			server := mcp.NewServer(a.engine, mcp.Options{
				Logger:    a.logger,
				Threshold: a.cfg.Matching.Threshold,
				TopK:      a.cfg.Matching.TopK,
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.Serve(ctx)
			}()

			select {
			case sig := <-sigChan:
				a.logger.Info().Str("signal", sig.String()).Msg("shutting down")
				cancel()
				return nil
			case err := <-errChan:
				return err
			}
		},
	}
}
