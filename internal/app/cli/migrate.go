package cli

import (
	"github.com/spf13/cobra"

	"mandacaru_broker/internal/platform/db"
	"mandacaru_broker/internal/platform/logger"
)

func newMigrateCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			gdb, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer func() { _ = sqlDB.Close() }()
			}
			if err := db.Migrate(gdb); err != nil {
				return err
			}
			logger.Get().Infow("migration finished", "driver", cfg.DB.Driver)
			return nil
		},
	}
}
