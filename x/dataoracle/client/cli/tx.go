package cli

import (
	"fmt"
	"strconv"

	sdkclient "github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

const FlagStake = "stake"

// GetTxCmd returns the transaction commands for this module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("%s transactions subcommands", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	cmd.AddCommand(
		NewSubscribeCmd(),
		NewRegisterOracleCmd(),
		NewSubmitDataCmd(),
		NewVoteOracleCmd(),
		NewVerifyDataCmd(),
		NewSetSubscriptionFeeCmd(),
	)

	return cmd
}

// NewSubscribeCmd implements the subscribe command
func NewSubscribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribe [subscription-type] [payment]",
		Short: "Buy a subscription (basic|premium|enterprise) paying at least the subscription fee",
		Example: fmt.Sprintf("%s tx %s subscribe premium 100aguru --from guru1...",
			"oracled", types.ModuleName),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.Subscribe(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddTxFlagsToCmd(cmd)
	return cmd
}

// NewRegisterOracleCmd implements the register oracle command
func NewRegisterOracleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-oracle [data-type]",
		Short: "Register the sender as provider of a new oracle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			stake, err := cmd.Flags().GetString(FlagStake)
			if err != nil {
				return err
			}

			_, res, err := c.RegisterOracle(cmd.Context(), args[0], stake)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	cmd.Flags().String(FlagStake, "", "Stake bonded with the oracle, e.g. 10000aguru")
	AddTxFlagsToCmd(cmd)
	return cmd
}

// NewSubmitDataCmd implements the submit data command
func NewSubmitDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-data [oracle-id] [value]",
		Short: "Submit the latest value of an oracle you provide",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid oracle id %s: %w", args[0], err)
			}

			c, err := GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.SubmitData(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddTxFlagsToCmd(cmd)
	return cmd
}

// NewVoteOracleCmd implements the vote oracle command
func NewVoteOracleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote-oracle [oracle-id]",
		Short: "Vote for an oracle; requires an active subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid oracle id %s: %w", args[0], err)
			}

			c, err := GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.VoteOracle(cmd.Context(), id)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddTxFlagsToCmd(cmd)
	return cmd
}

// NewVerifyDataCmd implements the verify data command
func NewVerifyDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-data [oracle-id]",
		Short: "Mark the latest value of an oracle as verified (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid oracle id %s: %w", args[0], err)
			}

			c, err := GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.VerifyData(cmd.Context(), id)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddTxFlagsToCmd(cmd)
	return cmd
}

// NewSetSubscriptionFeeCmd implements the set subscription fee command
func NewSetSubscriptionFeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-subscription-fee [new-fee]",
		Short: "Change the subscription fee (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fee, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fee %s: %w", args[0], err)
			}

			c, err := GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.SetSubscriptionFee(cmd.Context(), fee)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddTxFlagsToCmd(cmd)
	return cmd
}
