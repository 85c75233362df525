package main

import (
	"github.com/recipebox/dbgate/internal/config"
	"github.com/recipebox/dbgate/internal/database"
	"github.com/recipebox/dbgate/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long:  "Applies the embedded SQL migrations without waiting for readiness first. Use 'up' for the usual wait-then-migrate startup step.",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			return database.RunMigrations(cfg.DatabaseURL, logger)
		},
	}
}
