package dataoracle

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/keeper"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// InitGenesis loads the registry state. It panics on an invalid genesis.
func InitGenesis(ctx sdk.Context, k keeper.Keeper, data types.GenesisState) {
	if err := data.Validate(); err != nil {
		panic(errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "%s: %s", types.ModuleName, err))
	}

	if err := k.SetParams(ctx, data.Params); err != nil {
		panic(errorsmod.Wrapf(err, "error setting params"))
	}

	k.SetOwnerAddress(ctx, data.Owner)
	k.SetNextOracleId(ctx, data.NextOracleId)

	for _, subscription := range data.Subscriptions {
		k.SetSubscription(ctx, subscription)
	}
	for _, oracle := range data.Oracles {
		k.SetOracle(ctx, oracle)
	}
	for _, d := range data.Data {
		k.SetLatestData(ctx, d)
	}
	for _, vote := range data.Votes {
		k.SetVote(ctx, vote)
	}

	k.SetTreasury(ctx, data.Treasury)
}

// ExportGenesis returns a GenesisState for a given context and keeper.
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) *types.GenesisState {
	return &types.GenesisState{
		Owner:         k.GetOwnerAddress(ctx),
		Params:        k.GetParams(ctx),
		NextOracleId:  k.GetNextOracleId(ctx),
		Subscriptions: k.GetAllSubscriptions(ctx),
		Oracles:       k.GetAllOracles(ctx),
		Data:          k.GetAllData(ctx),
		Votes:         k.GetAllVotes(ctx),
		Treasury:      k.GetTreasury(ctx),
	}
}
