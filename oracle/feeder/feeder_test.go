package feeder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tendermint/tendermint/libs/log"
	tmdb "github.com/tendermint/tm-db"

	"github.com/GPTx-global/guru-dataoracle/app"
	"github.com/GPTx-global/guru-dataoracle/client"
	"github.com/GPTx-global/guru-dataoracle/oracle/config"
	"github.com/GPTx-global/guru-dataoracle/oracle/feeder"
	"github.com/GPTx-global/guru-dataoracle/oracle/retry"
	"github.com/GPTx-global/guru-dataoracle/server"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

var (
	owner    = sdk.AccAddress([]byte("owner_______________")).String()
	provider = sdk.AccAddress([]byte("provider____________")).String()
	stranger = sdk.AccAddress([]byte("stranger____________")).String()
)

// source serves a JSON document whose temperature can be changed.
type source struct {
	mtx    sync.Mutex
	temp   string
	status int
	hits   atomic.Int64
}

func (s *source) set(temp string, status int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.temp, s.status = temp, status
}

func (s *source) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.status != http.StatusOK {
		w.WriteHeader(s.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"name":"Seoul","main":{"temp":` + s.temp + `}}`))
}

type FeederTestSuite struct {
	suite.Suite

	ctx    context.Context
	app    *app.App
	source *source
	http   *httptest.Server
}

func TestFeederTestSuite(t *testing.T) {
	suite.Run(t, new(FeederTestSuite))
}

func (s *FeederTestSuite) SetupTest() {
	a, err := app.New(tmdb.NewMemDB(), log.NewNopLogger(), app.Options{Pruning: "nothing"})
	s.Require().NoError(err)
	s.Require().NoError(a.InitChain(types.NewGenesisState(owner, types.DefaultParams())))

	_, _, err = a.Deliver(context.Background(), &types.MsgRegisterOracle{
		Provider: provider,
		DataType: "weather",
		Stake:    sdk.NewInt64Coin(types.DefaultFeeDenom, 0),
	})
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.app = a
	s.source = &source{temp: "21.5", status: http.StatusOK}
	s.http = httptest.NewServer(s.source)
}

func (s *FeederTestSuite) TearDownTest() {
	s.http.Close()
}

func (s *FeederTestSuite) newFeeder(submitter feeder.Submitter, opts feeder.Options) *feeder.Feeder {
	opts.HTTPClient = s.http.Client()
	opts.FetchRetry = &retry.Config{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	if opts.SubmitRetry == nil {
		opts.SubmitRetry = &retry.Config{MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	}
	return feeder.New(submitter, log.NewNopLogger(), opts)
}

func (s *FeederTestSuite) job(oracleID uint64) feeder.Job {
	return feeder.NewJob(config.JobConfig{
		OracleID: oracleID,
		URL:      s.http.URL + "/weather",
		Path:     "main.temp",
		Interval: 20 * time.Millisecond,
	})
}

func (s *FeederTestSuite) latestValue() string {
	res, err := s.app.LatestData(s.ctx, &types.QueryLatestDataRequest{OracleId: 1})
	s.Require().NoError(err)
	if res.Data == nil {
		return ""
	}
	return res.Data.Value
}

func (s *FeederTestSuite) TestFeedsAppSubmitter() {
	f := s.newFeeder(feeder.NewAppSubmitter(s.app, provider), feeder.Options{Workers: 2})
	s.Require().NoError(f.AddJob(s.job(1)))

	f.Start(s.ctx)
	defer f.Stop()

	s.Require().Eventually(func() bool { return s.latestValue() == "21.5" }, 5*time.Second, 10*time.Millisecond)

	s.source.set("19", http.StatusOK)
	s.Require().Eventually(func() bool { return s.latestValue() == "19" }, 5*time.Second, 10*time.Millisecond)

	job, ok := f.Job(1)
	s.Require().True(ok)
	s.GreaterOrEqual(job.Nonce, uint64(2))
	s.NoError(f.Check(s.ctx))

	res, err := s.app.LatestData(s.ctx, &types.QueryLatestDataRequest{OracleId: 1})
	s.Require().NoError(err)
	s.Equal(provider, res.Data.Provider)
}

func (s *FeederTestSuite) TestFeedsThroughAPI() {
	srv := server.New(server.DefaultConfig(), app.DefaultChainID, s.app, nil, nil, log.NewNopLogger())
	api := httptest.NewServer(srv.Handler())
	defer api.Close()

	c, err := client.New(api.URL)
	s.Require().NoError(err)

	f := s.newFeeder(feeder.NewClientSubmitter(c.WithCaller(provider)), feeder.Options{})
	s.Require().NoError(f.AddJob(s.job(1)))
	f.Start(s.ctx)
	defer f.Stop()

	s.Require().Eventually(func() bool { return s.latestValue() == "21.5" }, 5*time.Second, 10*time.Millisecond)
}

func (s *FeederTestSuite) TestFetchFailureIsRecorded() {
	s.source.set("0", http.StatusInternalServerError)

	f := s.newFeeder(feeder.NewAppSubmitter(s.app, provider), feeder.Options{Workers: 1})
	s.Require().NoError(f.AddJob(s.job(1)))
	f.Start(s.ctx)
	defer f.Stop()

	s.Require().Eventually(func() bool {
		job, _ := f.Job(1)
		return job.Nonce >= 2 && job.LastError != ""
	}, 5*time.Second, 10*time.Millisecond)
	s.Empty(s.latestValue())

	// recovers once the source does
	s.source.set("30", http.StatusOK)
	s.Require().Eventually(func() bool { return s.latestValue() == "30" }, 5*time.Second, 10*time.Millisecond)
}

func (s *FeederTestSuite) TestRejectedSubmissionOpensCircuit() {
	f := s.newFeeder(feeder.NewAppSubmitter(s.app, stranger), feeder.Options{MaxFailures: 2, ResetTimeout: time.Hour})
	s.Require().NoError(f.AddJob(s.job(1)))
	f.Start(s.ctx)
	defer f.Stop()

	s.Require().Eventually(func() bool { return f.Check(s.ctx) != nil }, 5*time.Second, 10*time.Millisecond)
	s.Empty(s.latestValue())

	job, ok := f.Job(1)
	s.Require().True(ok)
	s.NotEmpty(job.LastError)
	s.Equal("feeder", f.Name())
}

func (s *FeederTestSuite) TestRemoveJob() {
	f := s.newFeeder(feeder.NewAppSubmitter(s.app, provider), feeder.Options{})
	s.Require().NoError(f.AddJob(s.job(1)))
	s.Equal(1, f.Jobs())

	f.Start(s.ctx)
	defer f.Stop()
	s.Require().Eventually(func() bool { return s.latestValue() == "21.5" }, 5*time.Second, 10*time.Millisecond)

	f.RemoveJob(1)
	s.Equal(0, f.Jobs())
	_, ok := f.Job(1)
	s.False(ok)

	// the next scheduled run finds no job and stops
	hits := s.source.hits.Load()
	time.Sleep(100 * time.Millisecond)
	s.LessOrEqual(s.source.hits.Load(), hits+1)
}

func (s *FeederTestSuite) TestReAddJobKeepsSingleSchedule() {
	f := s.newFeeder(feeder.NewAppSubmitter(s.app, provider), feeder.Options{Workers: 2})
	job := s.job(1)
	job.Interval = time.Hour
	s.Require().NoError(f.AddJob(job))

	f.Start(s.ctx)
	defer f.Stop()
	s.Require().Eventually(func() bool { return s.source.hits.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	// replacing a scheduled job does not run it again
	for i := 0; i < 3; i++ {
		s.Require().NoError(f.AddJob(job))
	}
	time.Sleep(100 * time.Millisecond)
	s.Equal(int64(1), s.source.hits.Load())
	s.Equal(1, f.Jobs())

	// a new job added after start runs immediately
	_, _, err := s.app.Deliver(s.ctx, &types.MsgRegisterOracle{
		Provider: provider,
		DataType: "weather",
		Stake:    sdk.NewInt64Coin(types.DefaultFeeDenom, 0),
	})
	s.Require().NoError(err)
	second := s.job(2)
	second.Interval = time.Hour
	s.Require().NoError(f.AddJob(second))
	s.Require().Eventually(func() bool { return s.source.hits.Load() == 2 }, 5*time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	s.Equal(int64(2), s.source.hits.Load())
	got, ok := f.Job(2)
	s.Require().True(ok)
	s.Equal(uint64(1), got.Nonce)
}

func (s *FeederTestSuite) TestAddJobValidation() {
	f := s.newFeeder(feeder.NewAppSubmitter(s.app, provider), feeder.Options{})
	s.Require().Error(f.AddJob(feeder.Job{Interval: time.Second}))
	s.Require().Error(f.AddJob(feeder.Job{OracleID: 1}))

	// stopping a feeder that never started is a no-op
	f.Stop()
}

type countingSubmitter struct {
	calls atomic.Int64
	err   error
}

func (c *countingSubmitter) Submit(ctx context.Context, oracleID uint64, value string) error {
	c.calls.Add(1)
	return c.err
}

func TestSubmitRetriesServerErrors(t *testing.T) {
	src := &source{temp: "1", status: http.StatusOK}
	ts := httptest.NewServer(src)
	defer ts.Close()

	sub := &countingSubmitter{err: &client.Error{Status: http.StatusBadGateway}}
	f := feeder.New(sub, log.NewNopLogger(), feeder.Options{
		Workers:     1,
		HTTPClient:  ts.Client(),
		SubmitRetry: &retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
		MaxFailures: 100,
	})
	require.NoError(t, f.AddJob(feeder.Job{OracleID: 1, URL: ts.URL, Path: "main.temp", Interval: time.Hour}))
	f.Start(context.Background())
	defer f.Stop()

	require.Eventually(t, func() bool { return sub.calls.Load() == 3 }, 5*time.Second, 10*time.Millisecond)

	sub2 := &countingSubmitter{err: &client.Error{Status: http.StatusForbidden, Reason: "ERR_UNAUTHORIZED"}}
	f2 := feeder.New(sub2, log.NewNopLogger(), feeder.Options{
		Workers:     1,
		HTTPClient:  ts.Client(),
		SubmitRetry: &retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
	})
	require.NoError(t, f2.AddJob(feeder.Job{OracleID: 1, URL: ts.URL, Path: "main.temp", Interval: time.Hour}))
	f2.Start(context.Background())
	defer f2.Stop()

	require.Eventually(t, func() bool { return sub2.calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int64(1), sub2.calls.Load())
}
