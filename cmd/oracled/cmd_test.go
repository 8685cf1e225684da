package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/GPTx-global/guru-dataoracle/oracle/config"
	"github.com/GPTx-global/guru-dataoracle/oracle/daemon"
)

var owner = sdk.AccAddress([]byte("owner_______________")).String()

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd := NewRootCmd()
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInitCmd(t *testing.T) {
	home := t.TempDir()

	out, err := execute(t, "init", "--home", home, "--owner", owner, "--chain-id", "guru-dataoracle-test")
	require.NoError(t, err)
	require.Equal(t, owner, gjson.Get(out, "owner").String())
	require.Equal(t, int64(100), gjson.Get(out, "params.subscription_fee").Int())

	genesis, err := daemon.ReadGenesisFile(filepath.Join(home, config.GenesisFileName))
	require.NoError(t, err)
	require.Equal(t, owner, genesis.Owner)

	cfg, err := config.Load(home)
	require.NoError(t, err)
	require.Equal(t, "guru-dataoracle-test", cfg.Chain.ID)

	// genesis is kept unless --overwrite is given
	_, err = execute(t, "init", "--home", home, "--owner", owner)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--home", home, "--owner", owner, "--overwrite")
	require.NoError(t, err)
}

func TestInitCmdRequiresOwner(t *testing.T) {
	home := t.TempDir()

	_, err := execute(t, "init", "--home", home)
	require.Error(t, err)

	_, err = execute(t, "init", "--home", home, "--owner", "cosmos1invalid")
	require.ErrorContains(t, err, "invalid --owner address")
}

func TestConfigCmd(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ORACLED_API_ADDRESS", "127.0.0.1:2317")

	out, err := execute(t, "config", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "127.0.0.1:2317")
	require.Contains(t, out, config.DefaultChainID)
}

func TestExportCmd(t *testing.T) {
	home := t.TempDir()

	_, err := execute(t, "init", "--home", home, "--owner", owner)
	require.NoError(t, err)

	// an uncommitted store has nothing to export
	_, err = execute(t, "export", "--home", home)
	require.ErrorContains(t, err, "is empty")

	cfg, err := config.Load(home)
	require.NoError(t, err)
	d, err := daemon.New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, d.App().Close())

	out, err := execute(t, "export", "--home", home)
	require.NoError(t, err)
	require.Equal(t, owner, gjson.Get(out, "owner").String())
	require.Equal(t, int64(1), gjson.Get(out, "next_oracle_id").Int())

	out, err = execute(t, "export", "--home", home, "--output", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, fmt.Sprintf("owner: %s", owner))

	_, err = execute(t, "export", "--home", home, "--output", "xml")
	require.ErrorContains(t, err, "unknown output format")
}
