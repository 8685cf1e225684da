package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GPTx-global/guru-dataoracle/oracle/config"
)

// ConfigCmd prints the effective configuration after file, .env and
// environment overrides.
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := homeFlag(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			out, err := cfg.MarshalTOML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
