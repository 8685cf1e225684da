package cli

import (
	"encoding/base64"
	"fmt"
	"strconv"

	sdkclient "github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/spf13/cobra"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("Querying commands for the %s module", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	cmd.AddCommand(
		GetCmdQuerySubscription(),
		GetCmdQueryOracle(),
		GetCmdQueryOracles(),
		GetCmdQueryLatestData(),
		GetCmdQueryHasVoted(),
		GetCmdQueryVoters(),
		GetCmdQuerySubscriptionFee(),
		GetCmdQueryParams(),
		GetCmdQueryOwner(),
		GetCmdQueryTreasury(),
	)

	return cmd
}

func GetCmdQuerySubscription() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription [address]",
		Short: "Query the subscription of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.Subscription(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryOracle() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracle [oracle-id]",
		Short: "Query an oracle by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid oracle id %s: %w", args[0], err)
			}

			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.Oracle(cmd.Context(), id)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryOracles lists oracles page by page.
func GetCmdQueryOracles() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracles",
		Short: "Query all oracles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			page, err := readPageRequest(cmd)
			if err != nil {
				return err
			}

			res, err := c.Oracles(cmd.Context(), page)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddQueryFlagsToCmd(cmd)
	flags.AddPaginationFlagsToCmd(cmd, "oracles")
	return cmd
}

func readPageRequest(cmd *cobra.Command) (*query.PageRequest, error) {
	fs := cmd.Flags()
	limit, err := fs.GetUint64(flags.FlagLimit)
	if err != nil {
		return nil, err
	}
	offset, err := fs.GetUint64(flags.FlagOffset)
	if err != nil {
		return nil, err
	}
	key, err := fs.GetString(flags.FlagPageKey)
	if err != nil {
		return nil, err
	}
	countTotal, err := fs.GetBool(flags.FlagCountTotal)
	if err != nil {
		return nil, err
	}
	var pageKey []byte
	if key != "" {
		if pageKey, err = base64.StdEncoding.DecodeString(key); err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", flags.FlagPageKey, err)
		}
	}
	pageNum, err := fs.GetUint64(flags.FlagPage)
	if err != nil {
		return nil, err
	}
	if pageNum > 1 && offset > 0 {
		return nil, fmt.Errorf("page and offset cannot be used together")
	}
	if pageNum > 1 {
		offset = (pageNum - 1) * limit
	}

	return &query.PageRequest{
		Key:        pageKey,
		Offset:     offset,
		Limit:      limit,
		CountTotal: countTotal,
	}, nil
}

func GetCmdQueryLatestData() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest-data [oracle-id]",
		Short: "Query the latest value submitted for an oracle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid oracle id %s: %w", args[0], err)
			}

			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.LatestData(cmd.Context(), id)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryHasVoted() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "has-voted [oracle-id] [voter]",
		Short: "Query whether an address voted for an oracle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid oracle id %s: %w", args[0], err)
			}

			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			voted, err := c.HasVoted(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}

			return PrintOutput(cmd, &types.QueryHasVotedResponse{HasVoted: voted})
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQuerySubscriptionFee() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription-fee",
		Short: "Query the current subscription fee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.SubscriptionFee(cmd.Context())
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryParams implements the params query command
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current registry parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.Params(cmd.Context())
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryOwner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Query the registry owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			owner, err := c.Owner(cmd.Context())
			if err != nil {
				return err
			}

			return PrintOutput(cmd, &types.QueryOwnerResponse{Owner: owner})
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryTreasury() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treasury",
		Short: "Query the collected fees and bonded stake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			res, err := c.Treasury(cmd.Context())
			if err != nil {
				return err
			}

			return PrintOutput(cmd, res)
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdQueryVoters() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voters [oracle-id]",
		Short: "Query the addresses that voted for an oracle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid oracle id %s: %w", args[0], err)
			}

			c, err := GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			voters, err := c.Voters(cmd.Context(), id)
			if err != nil {
				return err
			}

			return PrintOutput(cmd, &types.QueryVotersResponse{Voters: voters})
		},
	}

	AddQueryFlagsToCmd(cmd)
	return cmd
}
