package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// QueryServer implementation
var _ types.QueryServer = Keeper{}

// Subscription returns the subscription of an address, or nil if it never subscribed.
func (k Keeper) Subscription(c context.Context, req *types.QuerySubscriptionRequest) (*types.QuerySubscriptionResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	subscription, found := k.GetSubscription(ctx, req.Address)
	if !found {
		return &types.QuerySubscriptionResponse{}, nil
	}

	return &types.QuerySubscriptionResponse{Subscription: &subscription}, nil
}

// Oracle returns an oracle by id, or nil if unregistered.
func (k Keeper) Oracle(c context.Context, req *types.QueryOracleRequest) (*types.QueryOracleResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	oracle, found := k.GetOracle(ctx, req.OracleId)
	if !found {
		return &types.QueryOracleResponse{}, nil
	}

	return &types.QueryOracleResponse{Oracle: &oracle}, nil
}

// Oracles returns a page of registered oracles.
func (k Keeper) Oracles(c context.Context, req *types.QueryOraclesRequest) (*types.QueryOraclesResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	oracles, pageRes, err := k.GetPaginatedOracles(ctx, req.Pagination)
	if err != nil {
		return nil, err
	}

	return &types.QueryOraclesResponse{Oracles: oracles, Pagination: pageRes}, nil
}

// LatestData returns the latest submission of an oracle and whether it is
// older than the data validity period.
func (k Keeper) LatestData(c context.Context, req *types.QueryLatestDataRequest) (*types.QueryLatestDataResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	data, found := k.GetLatestData(ctx, req.OracleId)
	if !found {
		return &types.QueryLatestDataResponse{}, nil
	}

	period := k.GetParams(ctx).DataValidityPeriod
	return &types.QueryLatestDataResponse{
		Data:  &data,
		Stale: data.IsStale(ctx.BlockTime(), period),
	}, nil
}

func (k Keeper) HasVoted(c context.Context, req *types.QueryHasVotedRequest) (*types.QueryHasVotedResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	return &types.QueryHasVotedResponse{HasVoted: k.HasVote(ctx, req.OracleId, req.Voter)}, nil
}

// Voters lists the addresses that voted for an oracle.
func (k Keeper) Voters(c context.Context, req *types.QueryVotersRequest) (*types.QueryVotersResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	return &types.QueryVotersResponse{Voters: k.GetOracleVoters(ctx, req.OracleId)}, nil
}

func (k Keeper) SubscriptionFee(c context.Context, _ *types.QuerySubscriptionFeeRequest) (*types.QuerySubscriptionFeeResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	params := k.GetParams(ctx)

	return &types.QuerySubscriptionFeeResponse{Fee: params.SubscriptionFee, Denom: params.FeeDenom}, nil
}

func (k Keeper) Params(c context.Context, _ *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	return &types.QueryParamsResponse{Params: k.GetParams(ctx)}, nil
}

// Owner returns the owner address.
func (k Keeper) Owner(c context.Context, _ *types.QueryOwnerRequest) (*types.QueryOwnerResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	return &types.QueryOwnerResponse{Owner: k.GetOwnerAddress(ctx)}, nil
}

// Treasury returns the collected fees and bonded stake.
func (k Keeper) Treasury(c context.Context, _ *types.QueryTreasuryRequest) (*types.QueryTreasuryResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)
	return &types.QueryTreasuryResponse{
		Treasury: k.GetTreasury(ctx),
		Denom:    k.GetParams(ctx).FeeDenom,
	}, nil
}
