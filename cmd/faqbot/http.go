package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/httpapi"
)

func newHTTPCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the FAQ engine and feedback policy over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			a.watch(ctx)

			router := httpapi.NewRouter(a.logger, a.engine, httpapi.Config{
				RequestTimeout: a.cfg.Server.RequestTimeout,
				Threshold:      a.cfg.Matching.Threshold,
				TopK:           a.cfg.Matching.TopK,
			})

			if addr == "" {
				addr = a.cfg.Addr()
			}
			return httpapi.Serve(ctx, a.logger, router, httpapi.ServerConfig{
				Addr:             addr,
				ReadTimeout:      a.cfg.Server.ReadTimeout,
				WriteTimeout:     a.cfg.Server.WriteTimeout,
				GracefulShutdown: a.cfg.Server.GracefulShutdown,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, host:port)")
	return cmd
}
