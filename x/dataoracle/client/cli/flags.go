package cli

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/GPTx-global/guru-dataoracle/client"
)

const (
	FlagNode   = "node"
	FlagFrom   = "from"
	FlagOutput = "output"

	OutputJSON = "json"
	OutputYAML = "yaml"

	DefaultNode = "http://127.0.0.1:1317"
)

// AddQueryFlagsToCmd adds the flags shared by every query command.
func AddQueryFlagsToCmd(cmd *cobra.Command) {
	cmd.Flags().String(FlagNode, DefaultNode, "<host>:<port> of the API server")
	cmd.Flags().StringP(FlagOutput, "o", OutputJSON, "Output format (json|yaml)")
}

// AddTxFlagsToCmd adds the flags shared by every tx command.
func AddTxFlagsToCmd(cmd *cobra.Command) {
	AddQueryFlagsToCmd(cmd)
	cmd.Flags().String(FlagFrom, "", "Address the call is sent as")
	_ = cmd.MarkFlagRequired(FlagFrom)
}

// GetClientQueryContext builds an API client from the command flags.
func GetClientQueryContext(cmd *cobra.Command) (*client.Client, error) {
	node, err := cmd.Flags().GetString(FlagNode)
	if err != nil {
		return nil, err
	}
	return client.New(node)
}

// GetClientTxContext builds an API client that sends writes as --from.
func GetClientTxContext(cmd *cobra.Command) (*client.Client, error) {
	c, err := GetClientQueryContext(cmd)
	if err != nil {
		return nil, err
	}

	from, err := cmd.Flags().GetString(FlagFrom)
	if err != nil {
		return nil, err
	}
	if _, err := sdk.AccAddressFromBech32(from); err != nil {
		return nil, fmt.Errorf("invalid --%s address: %w", FlagFrom, err)
	}
	return c.WithCaller(from), nil
}

// PrintOutput writes v in the format selected with --output.
func PrintOutput(cmd *cobra.Command, v interface{}) error {
	format, err := cmd.Flags().GetString(FlagOutput)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case OutputJSON:
		out, err = json.MarshalIndent(v, "", "  ")
	case OutputYAML:
		out, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
