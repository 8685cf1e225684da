package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tendermint/tendermint/libs/log"
	tmdb "github.com/tendermint/tm-db"

	"github.com/GPTx-global/guru-dataoracle/app"
	"github.com/GPTx-global/guru-dataoracle/client"
	"github.com/GPTx-global/guru-dataoracle/server"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

var (
	owner      = sdk.AccAddress([]byte("owner_______________")).String()
	provider   = sdk.AccAddress([]byte("provider____________")).String()
	subscriber = sdk.AccAddress([]byte("subscriber__________")).String()
)

type ClientTestSuite struct {
	suite.Suite

	ctx    context.Context
	http   *httptest.Server
	client *client.Client
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	a, err := app.New(tmdb.NewMemDB(), log.NewNopLogger(), app.Options{Pruning: "nothing"})
	s.Require().NoError(err)
	s.Require().NoError(a.InitChain(types.NewGenesisState(owner, types.DefaultParams())))

	srv := server.New(server.DefaultConfig(), app.DefaultChainID, a, nil, nil, log.NewNopLogger())
	s.http = httptest.NewServer(srv.Handler())

	s.client, err = client.New(s.http.URL)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TearDownTest() {
	s.http.Close()
}

func (s *ClientTestSuite) TestRegistryFlow() {
	status, err := s.client.Status(s.ctx)
	s.Require().NoError(err)
	s.Equal(app.DefaultChainID, status.ChainID)
	s.Equal(int64(1), status.Height)

	sub := s.client.WithCaller(subscriber)
	_, err = sub.Subscribe(s.ctx, "premium", "50")
	s.Require().Error(err)
	s.True(client.HasReason(err, "ERR_INSUFFICIENT_PAYMENT"))

	res, err := sub.Subscribe(s.ctx, "premium", "100aguru")
	s.Require().NoError(err)
	s.Equal(int64(2), res.Height)

	subscription, err := s.client.Subscription(s.ctx, subscriber)
	s.Require().NoError(err)
	s.True(subscription.Active)
	s.Equal(types.TierPremium, subscription.SubscriptionType)

	prov := s.client.WithCaller(provider)
	id, _, err := prov.RegisterOracle(s.ctx, "weather", "10000aguru")
	s.Require().NoError(err)
	s.Equal(uint64(1), id)

	_, err = prov.SubmitData(s.ctx, id, "72.5")
	s.Require().NoError(err)

	data, err := s.client.LatestData(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("72.5", data.Data.Value)
	s.False(data.Stale)

	_, err = sub.VoteOracle(s.ctx, id)
	s.Require().NoError(err)

	voted, err := s.client.HasVoted(s.ctx, id, subscriber)
	s.Require().NoError(err)
	s.True(voted)

	voters, err := s.client.Voters(s.ctx, id)
	s.Require().NoError(err)
	s.Equal([]string{subscriber}, voters)

	oracle, err := s.client.Oracle(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(uint64(1), oracle.Votes)
	s.Equal(uint64(10000), oracle.Stake)

	_, err = sub.SetSubscriptionFee(s.ctx, 1)
	s.True(client.HasReason(err, "ERR_UNAUTHORIZED"))

	_, err = s.client.WithCaller(owner).SetSubscriptionFee(s.ctx, 200)
	s.Require().NoError(err)

	fee, err := s.client.SubscriptionFee(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(200), fee.Fee)

	_, err = s.client.WithCaller(owner).VerifyData(s.ctx, id)
	s.Require().NoError(err)

	treasury, err := s.client.Treasury(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(100), treasury.Treasury.CollectedFees)
	s.Equal(uint64(10000), treasury.Treasury.BondedStake)

	gs, err := s.client.Genesis(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(gs.Validate())
	s.Len(gs.Oracles, 1)
	s.Len(gs.Votes, 1)
}

func (s *ClientTestSuite) TestQueries() {
	ownerAddr, err := s.client.Owner(s.ctx)
	s.Require().NoError(err)
	s.Equal(owner, ownerAddr)

	params, err := s.client.Params(s.ctx)
	s.Require().NoError(err)
	s.Equal(types.DefaultParams(), *params)

	prov := s.client.WithCaller(provider)
	for i := 0; i < 3; i++ {
		_, _, err := prov.RegisterOracle(s.ctx, "price", "")
		s.Require().NoError(err)
	}

	res, err := s.client.Oracles(s.ctx, &query.PageRequest{Limit: 2, CountTotal: true})
	s.Require().NoError(err)
	s.Len(res.Oracles, 2)
	s.Equal(uint64(3), res.Pagination.Total)

	res, err = s.client.Oracles(s.ctx, &query.PageRequest{Key: res.Pagination.NextKey})
	s.Require().NoError(err)
	s.Require().Len(res.Oracles, 1)
	s.Equal(uint64(3), res.Oracles[0].Id)

	_, err = s.client.Oracle(s.ctx, 9)
	s.True(client.IsNotFound(err))

	_, err = s.client.LatestData(s.ctx, 1)
	s.True(client.IsNotFound(err))

	_, err = s.client.Subscription(s.ctx, subscriber)
	s.True(client.IsNotFound(err))
}

func (s *ClientTestSuite) TestWriteWithoutCaller() {
	_, err := s.client.VoteOracle(s.ctx, 1)
	s.Require().Error(err)

	var apiErr *client.Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusUnauthorized, apiErr.Status)
	s.Equal("ERR_UNAUTHENTICATED", apiErr.Reason)
}

func TestNonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer ts.Close()

	c, err := client.New(ts.URL)
	require.NoError(t, err)

	_, err = c.Status(context.Background())
	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, "upstream unavailable", apiErr.Message)
	require.Empty(t, apiErr.Reason)
}

func TestNew(t *testing.T) {
	c, err := client.New("127.0.0.1:1317")
	require.NoError(t, err)
	require.Empty(t, c.Caller())
	require.Equal(t, "guru1x", c.WithCaller("guru1x").Caller())
	require.Empty(t, c.Caller())

	_, err = client.New("http://")
	require.Error(t, err)
}
