// Package cli defines the broker command line.
package cli

import (
	"github.com/spf13/cobra"

	"mandacaru_broker/internal/app/config"
	"mandacaru_broker/internal/platform/logger"
)

// NewRootCommand builds the broker command tree.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "broker",
		Short:         "broker serves the Mandacaru stock catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); environment variables take precedence")

	load := func() (config.Config, error) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return config.Config{}, err
		}
		logger.Init(cfg.Env)
		return cfg, nil
	}

	root.AddCommand(
		newServeCommand(load),
		newMigrateCommand(load),
		newSyncPricesCommand(load),
	)
	return root
}

type loader func() (config.Config, error)

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	return NewRootCommand().Execute()
}
