package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mytheresa/inventory-catalog/app/server"
	"github.com/mytheresa/inventory-catalog/app/views"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, db, closeDB, err := opts.setup()
			if err != nil {
				return err
			}
			defer closeDB()

			if addr != "" {
				cfg.HTTPAddr = addr
			}

			renderer, err := views.NewHTMLRenderer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			router := server.NewRouter(server.NewHandlers(db, renderer, logger), logger)
			return server.Run(ctx, server.New(cfg.HTTPAddr, router), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
