package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// ActivateSubscription charges the subscription fee from payment and activates the
// subscriber's subscription at the given tier. Re-subscribing overwrites the
// tier and reactivates.
func (k Keeper) ActivateSubscription(ctx sdk.Context, subscriber string, tier types.SubscriptionTier, payment sdk.Coin) (types.Subscription, error) {
	if !tier.Valid() {
		return types.Subscription{}, errorsmod.Wrapf(types.ErrInvalidSubscriptionType, "%s", tier)
	}

	params := k.GetParams(ctx)
	if payment.Denom != params.FeeDenom {
		return types.Subscription{}, errorsmod.Wrapf(types.ErrInvalidDenom, "expected: %s, got: %s", params.FeeDenom, payment.Denom)
	}

	fee := sdkmath.NewIntFromUint64(params.SubscriptionFee)
	if payment.Amount.LT(fee) {
		return types.Subscription{}, errorsmod.Wrapf(types.ErrInsufficientPayment, "tendered %s, fee is %s%s", payment, fee, params.FeeDenom)
	}

	treasury := k.GetTreasury(ctx)
	collected := sdkmath.NewIntFromUint64(treasury.CollectedFees).Add(fee)
	if !collected.IsUint64() {
		return types.Subscription{}, errorsmod.Wrapf(types.ErrTreasuryOverflow, "collected fees %d + %s", treasury.CollectedFees, fee)
	}

	subscription := types.Subscription{
		Subscriber:       subscriber,
		SubscriptionType: tier,
		Active:           true,
		Height:           ctx.BlockHeight(),
	}
	k.SetSubscription(ctx, subscription)

	treasury.CollectedFees = collected.Uint64()
	k.SetTreasury(ctx, treasury)

	return subscription, nil
}

// HasActiveSubscription reports whether addr holds an active subscription.
func (k Keeper) HasActiveSubscription(ctx sdk.Context, addr string) bool {
	subscription, found := k.GetSubscription(ctx, addr)
	return found && subscription.Active
}

func (k Keeper) GetSubscription(ctx sdk.Context, addr string) (types.Subscription, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetSubscriptionKey(addr))
	if len(bz) == 0 {
		return types.Subscription{}, false
	}

	var subscription types.Subscription
	k.cdc.MustUnmarshal(bz, &subscription)
	return subscription, true
}

func (k Keeper) SetSubscription(ctx sdk.Context, subscription types.Subscription) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetSubscriptionKey(subscription.Subscriber), k.cdc.MustMarshal(&subscription))
}

// IterateSubscriptions calls cb for every subscription until cb returns true.
func (k Keeper) IterateSubscriptions(ctx sdk.Context, cb func(subscription types.Subscription) (stop bool)) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeySubscriptions)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var subscription types.Subscription
		k.cdc.MustUnmarshal(iterator.Value(), &subscription)
		if cb(subscription) {
			break
		}
	}
}

func (k Keeper) GetAllSubscriptions(ctx sdk.Context) []types.Subscription {
	subscriptions := []types.Subscription{}
	k.IterateSubscriptions(ctx, func(subscription types.Subscription) bool {
		subscriptions = append(subscriptions, subscription)
		return false
	})
	return subscriptions
}
