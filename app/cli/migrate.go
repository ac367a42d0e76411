package cli

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, _, closeDB, err := opts.setup()
			if err != nil {
				return err
			}
			defer closeDB()

			logger.Info("migrations applied", "driver", cfg.Database.Driver)
			return nil
		},
	}
}
