package keeper

import (
	"context"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// MsgServer implementation
var _ types.MsgServer = &Keeper{}

// Subscribe implements types.MsgServer.
func (k Keeper) Subscribe(goCtx context.Context, msg *types.MsgSubscribe) (*types.MsgSubscribeResponse, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), types.TypeMsgSubscribe)
	ctx := sdk.UnwrapSDKContext(goCtx)

	tier, err := types.ParseSubscriptionTier(msg.SubscriptionType)
	if err != nil {
		return nil, err
	}

	fee := k.GetSubscriptionFee(ctx)
	if _, err := k.ActivateSubscription(ctx, msg.Subscriber, tier, msg.Payment); err != nil {
		return nil, err
	}

	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, types.TypeMsgSubscribe},
		1,
		[]metrics.Label{telemetry.NewLabel("tier", tier.String())},
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubscribe,
			sdk.NewAttribute(types.AttributeKeySubscriber, msg.Subscriber),
			sdk.NewAttribute(types.AttributeKeySubscriptionType, tier.String()),
			sdk.NewAttribute(types.AttributeKeyFee, strconv.FormatUint(fee, 10)),
		),
	)

	return &types.MsgSubscribeResponse{}, nil
}

// RegisterOracle implements types.MsgServer.
func (k Keeper) RegisterOracle(goCtx context.Context, msg *types.MsgRegisterOracle) (*types.MsgRegisterOracleResponse, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), types.TypeMsgRegisterOracle)
	ctx := sdk.UnwrapSDKContext(goCtx)

	oracle, err := k.CreateOracle(ctx, msg.Provider, msg.DataType, msg.Stake)
	if err != nil {
		return nil, err
	}

	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, types.TypeMsgRegisterOracle},
		1,
		[]metrics.Label{telemetry.NewLabel("data_type", oracle.DataType)},
	)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRegisterOracle,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(oracle.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyProvider, oracle.Provider),
			sdk.NewAttribute(types.AttributeKeyDataType, oracle.DataType),
			sdk.NewAttribute(types.AttributeKeyStake, msg.Stake.String()),
		),
	)

	k.Logger(ctx).Info("oracle registered", "id", oracle.Id, "provider", oracle.Provider, "data_type", oracle.DataType)

	return &types.MsgRegisterOracleResponse{OracleId: oracle.Id}, nil
}

// SubmitData implements types.MsgServer.
func (k Keeper) SubmitData(goCtx context.Context, msg *types.MsgSubmitData) (*types.MsgSubmitDataResponse, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), types.TypeMsgSubmitData)
	ctx := sdk.UnwrapSDKContext(goCtx)

	data, err := k.RecordData(ctx, msg.Provider, msg.OracleId, msg.Value)
	if err != nil {
		return nil, err
	}

	telemetry.IncrCounter(1, types.ModuleName, types.TypeMsgSubmitData)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmitData,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(data.OracleId, 10)),
			sdk.NewAttribute(types.AttributeKeyProvider, data.Provider),
			sdk.NewAttribute(types.AttributeKeyValue, data.Value),
		),
	)

	return &types.MsgSubmitDataResponse{}, nil
}

// VoteOracle implements types.MsgServer.
func (k Keeper) VoteOracle(goCtx context.Context, msg *types.MsgVoteOracle) (*types.MsgVoteOracleResponse, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), types.TypeMsgVoteOracle)
	ctx := sdk.UnwrapSDKContext(goCtx)

	oracle, activated, err := k.CastVote(ctx, msg.Voter, msg.OracleId)
	if err != nil {
		return nil, err
	}

	telemetry.IncrCounter(1, types.ModuleName, types.TypeMsgVoteOracle)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeVoteOracle,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(oracle.Id, 10)),
			sdk.NewAttribute(types.AttributeKeyVoter, msg.Voter),
			sdk.NewAttribute(types.AttributeKeyVotes, strconv.FormatUint(oracle.Votes, 10)),
		),
	)

	if activated {
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeOracleActivated,
				sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(oracle.Id, 10)),
				sdk.NewAttribute(types.AttributeKeyVotes, strconv.FormatUint(oracle.Votes, 10)),
			),
		)
		k.Logger(ctx).Info("oracle activated", "id", oracle.Id, "votes", oracle.Votes)
	}

	return &types.MsgVoteOracleResponse{Votes: oracle.Votes, Active: oracle.Active}, nil
}

// SetSubscriptionFee implements types.MsgServer.
func (k Keeper) SetSubscriptionFee(goCtx context.Context, msg *types.MsgSetSubscriptionFee) (*types.MsgSetSubscriptionFeeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if !k.IsOwner(ctx, msg.Owner) {
		return nil, errorsmod.Wrapf(types.ErrUnauthorized, "expected: %s, got: %s", k.GetOwnerAddress(ctx), msg.Owner)
	}

	k.UpdateSubscriptionFee(ctx, msg.NewFee)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSetSubscriptionFee,
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(types.AttributeKeyFee, strconv.FormatUint(msg.NewFee, 10)),
		),
	)

	return &types.MsgSetSubscriptionFeeResponse{}, nil
}

// VerifyData implements types.MsgServer.
func (k Keeper) VerifyData(goCtx context.Context, msg *types.MsgVerifyData) (*types.MsgVerifyDataResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if !k.IsOwner(ctx, msg.Owner) {
		return nil, errorsmod.Wrapf(types.ErrUnauthorized, "expected: %s, got: %s", k.GetOwnerAddress(ctx), msg.Owner)
	}

	data, err := k.MarkDataVerified(ctx, msg.OracleId)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeVerifyData,
			sdk.NewAttribute(types.AttributeKeyOracleId, strconv.FormatUint(data.OracleId, 10)),
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(types.AttributeKeyValue, data.Value),
		),
	)

	return &types.MsgVerifyDataResponse{}, nil
}
