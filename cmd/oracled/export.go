package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/GPTx-global/guru-dataoracle/oracle/config"
	"github.com/GPTx-global/guru-dataoracle/oracle/daemon"
	"github.com/GPTx-global/guru-dataoracle/oracle/log"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/client/cli"
)

// ExportCmd dumps the committed state of a stopped registry as genesis.
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the committed state as a genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := homeFlag(cmd)
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString(cli.FlagOutput)

			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			a, err := daemon.OpenApp(cfg, log.Logger())
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.Initialized() {
				return fmt.Errorf("store at %s is empty", cfg.DBDir())
			}

			var out []byte
			switch output {
			case cli.OutputJSON:
				out, err = json.MarshalIndent(a.ExportGenesis(), "", "  ")
			case cli.OutputYAML:
				out, err = yaml.Marshal(a.ExportGenesis())
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringP(cli.FlagOutput, "o", cli.OutputJSON, "Output format (json|yaml)")
	return cmd
}
