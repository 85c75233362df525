package main

import (
	"github.com/recipebox/dbgate/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newWaitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wait",
		Short: "Block until the configured backing services accept connections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			return runGate(cmd.Context(), cfg, cmd.OutOrStdout(), false)
		},
	}
}
