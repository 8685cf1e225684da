package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// CreateOracle creates a new inactive oracle owned by provider and returns
// its id. Ids are assigned sequentially starting at 1.
func (k Keeper) CreateOracle(ctx sdk.Context, provider, dataType string, stake sdk.Coin) (types.Oracle, error) {
	params := k.GetParams(ctx)
	if !params.HasDataType(dataType) {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrInvalidDataType, "%q is not one of %v", dataType, params.DataTypes)
	}

	if stake.Denom != params.FeeDenom {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrInvalidDenom, "expected: %s, got: %s", params.FeeDenom, stake.Denom)
	}
	if stake.Amount.LT(sdkmath.NewIntFromUint64(params.MinStake)) {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrInsufficientStake, "staked %s, minimum is %d%s", stake, params.MinStake, params.FeeDenom)
	}
	treasury := k.GetTreasury(ctx)
	bonded := sdkmath.NewIntFromUint64(treasury.BondedStake).Add(stake.Amount)
	if !bonded.IsUint64() {
		return types.Oracle{}, errorsmod.Wrapf(types.ErrTreasuryOverflow, "bonded stake %d + %s", treasury.BondedStake, stake.Amount)
	}

	id := k.GetNextOracleId(ctx)
	oracle := types.Oracle{
		Id:       id,
		Provider: provider,
		DataType: dataType,
		Active:   false,
		Votes:    0,
		Stake:    stake.Amount.Uint64(),
		Height:   ctx.BlockHeight(),
	}
	k.SetOracle(ctx, oracle)
	k.SetNextOracleId(ctx, id+1)

	if oracle.Stake > 0 {
		treasury.BondedStake = bonded.Uint64()
		k.SetTreasury(ctx, treasury)
	}

	return oracle, nil
}

// GetNextOracleId returns the id the next registered oracle will receive.
func (k Keeper) GetNextOracleId(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyNextOracleId)
	if len(bz) == 0 {
		return 1
	}

	id, err := types.BytesToID(bz)
	if err != nil {
		panic(err)
	}
	return id
}

func (k Keeper) SetNextOracleId(ctx sdk.Context, id uint64) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyNextOracleId, types.IDToBytes(id))
}

func (k Keeper) GetOracle(ctx sdk.Context, id uint64) (types.Oracle, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetOracleKey(id))
	if len(bz) == 0 {
		return types.Oracle{}, false
	}

	var oracle types.Oracle
	k.cdc.MustUnmarshal(bz, &oracle)
	return oracle, true
}

func (k Keeper) SetOracle(ctx sdk.Context, oracle types.Oracle) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetOracleKey(oracle.Id), k.cdc.MustMarshal(&oracle))
}

// IterateOracles calls cb for every oracle in id order until cb returns true.
func (k Keeper) IterateOracles(ctx sdk.Context, cb func(oracle types.Oracle) (stop bool)) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyOracles)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var oracle types.Oracle
		k.cdc.MustUnmarshal(iterator.Value(), &oracle)
		if cb(oracle) {
			break
		}
	}
}

func (k Keeper) GetAllOracles(ctx sdk.Context) []types.Oracle {
	oracles := []types.Oracle{}
	k.IterateOracles(ctx, func(oracle types.Oracle) bool {
		oracles = append(oracles, oracle)
		return false
	})
	return oracles
}

// GetPaginatedOracles returns a page of oracles in id order.
func (k Keeper) GetPaginatedOracles(ctx sdk.Context, pagination *query.PageRequest) ([]types.Oracle, *query.PageResponse, error) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyOracles)

	oracles := []types.Oracle{}
	pageRes, err := query.Paginate(store, pagination, func(_, value []byte) error {
		var oracle types.Oracle
		if err := k.cdc.Unmarshal(value, &oracle); err != nil {
			return err
		}
		oracles = append(oracles, oracle)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return oracles, pageRes, nil
}
