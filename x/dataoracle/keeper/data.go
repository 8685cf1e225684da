package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// RecordData replaces the latest value of an oracle. Only the oracle's provider
// may submit, and the oracle does not need to be active. The stored record is
// unverified until the owner verifies it.
func (k Keeper) RecordData(ctx sdk.Context, provider string, oracleId uint64, value string) (types.SubmittedData, error) {
	oracle, found := k.GetOracle(ctx, oracleId)
	if !found {
		return types.SubmittedData{}, errorsmod.Wrapf(types.ErrOracleNotFound, "oracle %d", oracleId)
	}
	if oracle.Provider != provider {
		return types.SubmittedData{}, errorsmod.Wrapf(types.ErrUnauthorized, "expected: %s, got: %s", oracle.Provider, provider)
	}
	if err := types.ValidateDataValue(value); err != nil {
		return types.SubmittedData{}, errorsmod.Wrap(types.ErrInvalidDataValue, err.Error())
	}

	data := types.SubmittedData{
		OracleId:  oracleId,
		Value:     value,
		Provider:  provider,
		Verified:  false,
		Height:    ctx.BlockHeight(),
		Timestamp: ctx.BlockTime().Unix(),
	}
	k.SetLatestData(ctx, data)

	return data, nil
}

// MarkDataVerified marks the latest value of an oracle as verified.
func (k Keeper) MarkDataVerified(ctx sdk.Context, oracleId uint64) (types.SubmittedData, error) {
	data, found := k.GetLatestData(ctx, oracleId)
	if !found {
		return types.SubmittedData{}, errorsmod.Wrapf(types.ErrDataNotFound, "oracle %d", oracleId)
	}

	data.Verified = true
	k.SetLatestData(ctx, data)
	return data, nil
}

func (k Keeper) GetLatestData(ctx sdk.Context, oracleId uint64) (types.SubmittedData, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetSubmittedDataKey(oracleId))
	if len(bz) == 0 {
		return types.SubmittedData{}, false
	}

	var data types.SubmittedData
	k.cdc.MustUnmarshal(bz, &data)
	return data, true
}

func (k Keeper) SetLatestData(ctx sdk.Context, data types.SubmittedData) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetSubmittedDataKey(data.OracleId), k.cdc.MustMarshal(&data))
}

func (k Keeper) GetAllData(ctx sdk.Context) []types.SubmittedData {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeySubmittedData)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	data := []types.SubmittedData{}
	for ; iterator.Valid(); iterator.Next() {
		var d types.SubmittedData
		k.cdc.MustUnmarshal(iterator.Value(), &d)
		data = append(data, d)
	}
	return data
}
