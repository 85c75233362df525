package main

import (
	"github.com/recipebox/dbgate/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Wait for backing services, then apply schema migrations",
		Long:  "The container entrypoint step: blocks until every configured backend accepts connections, then applies the embedded SQL migrations. Exits zero once the deployment is safe to start.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			return runGate(cmd.Context(), cfg, cmd.OutOrStdout(), true)
		},
	}
}
