package keeper

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

func TestQueryAbsentRecords(t *testing.T) {
	keeper, ctx := setupKeeper(t)
	goCtx := sdk.WrapSDKContext(ctx)

	subRes, err := keeper.Subscription(goCtx, &types.QuerySubscriptionRequest{Address: testSubscriber})
	require.NoError(t, err)
	assert.Nil(t, subRes.Subscription)

	oracleRes, err := keeper.Oracle(goCtx, &types.QueryOracleRequest{OracleId: 1})
	require.NoError(t, err)
	assert.Nil(t, oracleRes.Oracle)

	dataRes, err := keeper.LatestData(goCtx, &types.QueryLatestDataRequest{OracleId: 1})
	require.NoError(t, err)
	assert.Nil(t, dataRes.Data)
	assert.False(t, dataRes.Stale)

	votedRes, err := keeper.HasVoted(goCtx, &types.QueryHasVotedRequest{OracleId: 1, Voter: testSubscriber})
	require.NoError(t, err)
	assert.False(t, votedRes.HasVoted)

	votersRes, err := keeper.Voters(goCtx, &types.QueryVotersRequest{OracleId: 1})
	require.NoError(t, err)
	assert.Empty(t, votersRes.Voters)
}

func TestQueryRecords(t *testing.T) {
	keeper, ctx := setupKeeper(t)
	goCtx := sdk.WrapSDKContext(ctx)

	_, err := keeper.ActivateSubscription(ctx, testSubscriber, types.TierEnterprise, coin(100))
	require.NoError(t, err)
	_, err = keeper.CreateOracle(ctx, testProvider, "weather", coin(250))
	require.NoError(t, err)
	_, err = keeper.CreateOracle(ctx, testProvider, "price", coin(0))
	require.NoError(t, err)

	subRes, err := keeper.Subscription(goCtx, &types.QuerySubscriptionRequest{Address: testSubscriber})
	require.NoError(t, err)
	require.NotNil(t, subRes.Subscription)
	assert.Equal(t, types.TierEnterprise, subRes.Subscription.SubscriptionType)

	oracleRes, err := keeper.Oracle(goCtx, &types.QueryOracleRequest{OracleId: 2})
	require.NoError(t, err)
	require.NotNil(t, oracleRes.Oracle)
	assert.Equal(t, "price", oracleRes.Oracle.DataType)

	listRes, err := keeper.Oracles(goCtx, &types.QueryOraclesRequest{Pagination: &query.PageRequest{Limit: query.MaxLimit}})
	require.NoError(t, err)
	assert.Len(t, listRes.Oracles, 2)

	feeRes, err := keeper.SubscriptionFee(goCtx, &types.QuerySubscriptionFeeRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(100), feeRes.Fee)
	assert.Equal(t, types.DefaultFeeDenom, feeRes.Denom)

	ownerRes, err := keeper.Owner(goCtx, &types.QueryOwnerRequest{})
	require.NoError(t, err)
	assert.Equal(t, testOwner, ownerRes.Owner)

	treasuryRes, err := keeper.Treasury(goCtx, &types.QueryTreasuryRequest{})
	require.NoError(t, err)
	assert.Equal(t, types.Treasury{CollectedFees: 100, BondedStake: 250}, treasuryRes.Treasury)

	paramsRes, err := keeper.Params(goCtx, &types.QueryParamsRequest{})
	require.NoError(t, err)
	assert.Equal(t, types.DefaultParams(), paramsRes.Params)
}
