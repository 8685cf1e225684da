package app

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

func (a *App) query(goCtx context.Context) context.Context {
	return sdk.WrapSDKContext(a.queryContext(goCtx))
}

func (a *App) Subscription(goCtx context.Context, req *types.QuerySubscriptionRequest) (*types.QuerySubscriptionResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.Subscription(a.query(goCtx), req)
}

func (a *App) Oracle(goCtx context.Context, req *types.QueryOracleRequest) (*types.QueryOracleResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.Oracle(a.query(goCtx), req)
}

func (a *App) Oracles(goCtx context.Context, req *types.QueryOraclesRequest) (*types.QueryOraclesResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.Oracles(a.query(goCtx), req)
}

func (a *App) LatestData(goCtx context.Context, req *types.QueryLatestDataRequest) (*types.QueryLatestDataResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.LatestData(a.query(goCtx), req)
}

func (a *App) HasVoted(goCtx context.Context, req *types.QueryHasVotedRequest) (*types.QueryHasVotedResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.HasVoted(a.query(goCtx), req)
}

func (a *App) Voters(goCtx context.Context, req *types.QueryVotersRequest) (*types.QueryVotersResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.Voters(a.query(goCtx), req)
}

func (a *App) SubscriptionFee(goCtx context.Context, req *types.QuerySubscriptionFeeRequest) (*types.QuerySubscriptionFeeResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.SubscriptionFee(a.query(goCtx), req)
}

func (a *App) Params(goCtx context.Context, req *types.QueryParamsRequest) (*types.QueryParamsResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.Params(a.query(goCtx), req)
}

func (a *App) Owner(goCtx context.Context, req *types.QueryOwnerRequest) (*types.QueryOwnerResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.Owner(a.query(goCtx), req)
}

func (a *App) Treasury(goCtx context.Context, req *types.QueryTreasuryRequest) (*types.QueryTreasuryResponse, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.Keeper.Treasury(a.query(goCtx), req)
}
