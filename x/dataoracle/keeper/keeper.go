package keeper

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// Keeper of the dataoracle store
type Keeper struct {
	cdc      *codec.LegacyAmino
	storeKey storetypes.StoreKey
}

func NewKeeper(cdc *codec.LegacyAmino, storeKey storetypes.StoreKey) Keeper {
	return Keeper{
		cdc:      cdc,
		storeKey: storeKey,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetOwnerAddress returns the owner address fixed at genesis.
func (k Keeper) GetOwnerAddress(ctx sdk.Context) string {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyOwnerAddress)
	if len(bz) == 0 {
		return ""
	}
	return string(bz)
}

// SetOwnerAddress stores the owner address. Only genesis calls this.
func (k Keeper) SetOwnerAddress(ctx sdk.Context, owner string) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyOwnerAddress, []byte(owner))
}

// IsOwner reports whether addr is the registry owner.
func (k Keeper) IsOwner(ctx sdk.Context, addr string) bool {
	owner := k.GetOwnerAddress(ctx)
	return owner != "" && owner == addr
}

func (k Keeper) GetParams(ctx sdk.Context) types.Params {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyParams)
	if len(bz) == 0 {
		return types.DefaultParams()
	}

	var params types.Params
	k.cdc.MustUnmarshal(bz, &params)
	return params
}

func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyParams, k.cdc.MustMarshal(&params))
	return nil
}

func (k Keeper) GetSubscriptionFee(ctx sdk.Context) uint64 {
	return k.GetParams(ctx).SubscriptionFee
}

func (k Keeper) UpdateSubscriptionFee(ctx sdk.Context, fee uint64) {
	params := k.GetParams(ctx)
	params.SubscriptionFee = fee
	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyParams, k.cdc.MustMarshal(&params))
}

func (k Keeper) GetTreasury(ctx sdk.Context) types.Treasury {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyTreasury)
	if len(bz) == 0 {
		return types.Treasury{}
	}

	var treasury types.Treasury
	k.cdc.MustUnmarshal(bz, &treasury)
	return treasury
}

func (k Keeper) SetTreasury(ctx sdk.Context, treasury types.Treasury) {
	store := ctx.KVStore(k.storeKey)
	// an empty record encodes to no bytes
	if treasury == (types.Treasury{}) {
		store.Delete(types.KeyTreasury)
		return
	}
	store.Set(types.KeyTreasury, k.cdc.MustMarshal(&treasury))
}
