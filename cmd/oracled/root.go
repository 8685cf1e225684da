package main

import (
	"github.com/spf13/cobra"

	"github.com/GPTx-global/guru-dataoracle/app"
	"github.com/GPTx-global/guru-dataoracle/oracle/config"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/client/cli"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

const flagHome = "home"

// NewRootCmd creates the root command of the registry daemon.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          app.Name,
		Short:        "Pay-gated data oracle registry",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String(flagHome, config.DefaultHome(), "directory for config and data")

	txCmd := cli.GetTxCmd()
	txCmd.Use = "tx"
	txCmd.Aliases = []string{types.ModuleName}

	queryCmd := cli.GetQueryCmd()
	queryCmd.Use = "query"
	queryCmd.Aliases = []string{"q"}

	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(),
		ExportCmd(),
		ConfigCmd(),
		txCmd,
		queryCmd,
	)

	return rootCmd
}

func homeFlag(cmd *cobra.Command) (string, error) {
	return cmd.Flags().GetString(flagHome)
}
