package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/GPTx-global/guru-dataoracle/oracle/config"
	"github.com/GPTx-global/guru-dataoracle/oracle/daemon"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

const (
	flagOwner     = "owner"
	flagChainID   = "chain-id"
	flagOverwrite = "overwrite"
)

// InitCmd writes the default config and a genesis document naming the owner.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the config and genesis files of the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := homeFlag(cmd)
			if err != nil {
				return err
			}
			owner, _ := cmd.Flags().GetString(flagOwner)
			chainID, _ := cmd.Flags().GetString(flagChainID)
			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)

			if _, err := sdk.AccAddressFromBech32(owner); err != nil {
				return fmt.Errorf("invalid --%s address: %w", flagOwner, err)
			}

			cfg := config.DefaultConfig()
			cfg.Home = home
			cfg.Chain.ID = chainID

			if _, err := os.Stat(cfg.ConfigFile()); errors.Is(err, os.ErrNotExist) || overwrite {
				if err := config.WriteConfigFile(cfg.ConfigFile(), cfg); err != nil {
					return err
				}
			}

			if _, err := os.Stat(cfg.GenesisFile()); err == nil && !overwrite {
				return fmt.Errorf("genesis file %s already exists, use --%s to replace it", cfg.GenesisFile(), flagOverwrite)
			}

			genesis := types.NewGenesisState(owner, types.DefaultParams())
			if err := daemon.WriteGenesisFile(cfg.GenesisFile(), genesis); err != nil {
				return err
			}

			out, err := json.MarshalIndent(genesis, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().String(flagOwner, "", "address of the registry owner")
	cmd.Flags().String(flagChainID, config.DefaultChainID, "chain id of the registry")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite existing config and genesis files")
	_ = cmd.MarkFlagRequired(flagOwner)

	return cmd
}
