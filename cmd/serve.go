package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cottand/surd/internal/server"
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(server.Config{
				Addr:        c.cfg.Addr,
				Concurrency: c.cfg.Concurrency,
			}).Run(ctx)
		},
	}
}
