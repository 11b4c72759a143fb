package main

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/personauth/internal/config"
)

const configFlag = "config"

// NewRootCmd creates the root command for the personauth CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personauth",
		Short: "personauth - credential storage and sign-up service",
		Long: `personauth stores person credentials, hashes passwords on sign-up and
serves a small REST API for managing them.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String(configFlag, "", "config file path (YAML)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewHashPasswordCmd())

	return cmd
}

// loadConfig resolves configuration for cmd from the --config file, the
// environment and any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, err
	}
	return config.Load(path, cmd.Flags())
}
