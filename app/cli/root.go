package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/inventory-catalog/app/config"
	"github.com/mytheresa/inventory-catalog/app/database"
)

type rootOptions struct {
	envFile    string
	dbDriver   string
	sqlitePath string
	jsonLogs   bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "inventory",
		Short:         "Server-rendered inventory catalog of categories and items",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file read before the environment")
	flags.StringVar(&opts.dbDriver, "db-driver", "", "database driver, postgres or sqlite (overrides DB_DRIVER)")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", "", "sqlite database file (overrides SQLITE_PATH)")
	flags.BoolVar(&opts.jsonLogs, "json-logs", false, "write logs as JSON")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)

	return cmd
}

func (o *rootOptions) config() (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return config.Config{}, err
	}
	if o.dbDriver != "" {
		cfg.Database.Driver = o.dbDriver
	}
	if o.sqlitePath != "" {
		cfg.Database.SQLitePath = o.sqlitePath
	}
	return cfg, nil
}

func (o *rootOptions) logger(w io.Writer, level slog.Level) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if o.jsonLogs {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// setup loads configuration, builds the logger and opens a migrated database.
func (o *rootOptions) setup() (config.Config, *slog.Logger, *gorm.DB, func(), error) {
	cfg, err := o.config()
	if err != nil {
		return config.Config{}, nil, nil, nil, err
	}

	logger := o.logger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	db, closeDB, err := database.New(cfg.Database)
	if err != nil {
		return config.Config{}, nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		closeDB()
		return config.Config{}, nil, nil, nil, err
	}

	logger.Debug("database ready", "driver", cfg.Database.Driver)
	return cfg, logger, db, closeDB, nil
}
