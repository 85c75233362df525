package main

import (
	"errors"
	"fmt"

	"github.com/recipebox/dbgate/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root dbgate command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbgate",
		Short:         "Startup gate for the recipe API's backing services",
		Long:          "dbgate blocks container startup until the configured backing services accept connections, then applies schema migrations, so the API never races the database's own startup.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(cmd)
		},
	}

	// Global flags — these map to viper keys via initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("database-url", "", "postgres connection string")
	root.PersistentFlags().String("kafka-brokers", "", "comma-separated kafka brokers to wait for (optional)")
	root.PersistentFlags().Duration("wait-interval", 0, "delay between failed readiness probes")
	root.PersistentFlags().String("status-addr", "", "listen address for the status server (optional)")

	root.AddCommand(
		newWaitCmd(),
		newMigrateCmd(),
		newUpCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper sets up the global viper with defaults, env bindings, flag
// bindings, and an optional config file so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("dbgate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/dbgate")
		// No config file is fine — defaults and env vars still apply.
		// Parse or permission errors must surface.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}

	flags := cmd.Root().PersistentFlags()
	for flagName, key := range map[string]string{
		"database-url":  "database_url",
		"kafka-brokers": "kafka_brokers",
		"wait-interval": "wait_interval",
		"status-addr":   "status_addr",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("binding %s flag: %w", flagName, err)
		}
	}

	return nil
}
