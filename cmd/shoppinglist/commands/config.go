package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// config [path]: save the effective configuration as TOML.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		// No App is needed, only the layered configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := configPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := cfg.Write(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
