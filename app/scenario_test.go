package app_test

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tendermint/tendermint/libs/log"
	tmdb "github.com/tendermint/tm-db"

	"github.com/GPTx-global/guru-dataoracle/app"
	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

var _ = Describe("Data oracle registry", Ordered, func() {
	var (
		a   *app.App
		ctx = context.Background()

		deployer      = sdk.AccAddress([]byte("deployer____________"))
		oracleProv    = sdk.AccAddress([]byte("oracle_provider_____"))
		subscriber    = sdk.AccAddress([]byte("subscriber__________"))
		nonSubscriber = sdk.AccAddress([]byte("non_subscriber______"))
	)

	aguru := func(amount int64) sdk.Coin {
		return sdk.NewCoin(types.DefaultFeeDenom, sdkmath.NewInt(amount))
	}

	BeforeAll(func() {
		var err error
		a, err = app.New(tmdb.NewMemDB(), log.NewNopLogger(), app.Options{
			Pruning: "nothing",
			Clock:   func() time.Time { return time.Unix(1_700_000_000, 0).UTC() },
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(a.InitChain(types.NewGenesisState(deployer.String(), types.DefaultParams()))).To(Succeed())
	})

	AfterAll(func() {
		Expect(a.Close()).To(Succeed())
	})

	Context("subscription management", func() {
		It("starts with a fee of 100", func() {
			res, err := a.SubscriptionFee(ctx, &types.QuerySubscriptionFeeRequest{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Fee).To(Equal(uint64(100)))
		})

		It("rejects an insufficient payment", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgSubscribe(subscriber, "premium", aguru(50)))
			Expect(err).To(MatchError(types.ErrInsufficientPayment))
			Expect(types.Reason(err)).To(Equal("ERR_INSUFFICIENT_PAYMENT"))
		})

		It("activates a subscription paid in full", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgSubscribe(subscriber, "premium", aguru(100)))
			Expect(err).ToNot(HaveOccurred())

			res, err := a.Subscription(ctx, &types.QuerySubscriptionRequest{Address: subscriber.String()})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Subscription).ToNot(BeNil())
			Expect(res.Subscription.Active).To(BeTrue())
			Expect(res.Subscription.SubscriptionType).To(Equal(types.TierPremium))
		})
	})

	Context("oracle management", func() {
		It("registers the first oracle inactive with no votes", func() {
			res, _, err := a.Deliver(ctx, types.NewMsgRegisterOracle(oracleProv, "weather", aguru(10000)))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(res.Data)).To(Equal(`{"oracle_id":1}`))

			oracle, err := a.Oracle(ctx, &types.QueryOracleRequest{OracleId: 1})
			Expect(err).ToNot(HaveOccurred())
			Expect(oracle.Oracle.Provider).To(Equal(oracleProv.String()))
			Expect(oracle.Oracle.DataType).To(Equal("weather"))
			Expect(oracle.Oracle.Active).To(BeFalse())
			Expect(oracle.Oracle.Votes).To(BeZero())
		})

		It("stores the provider's submission unverified", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgSubmitData(oracleProv, 1, "72.5"))
			Expect(err).ToNot(HaveOccurred())

			res, err := a.LatestData(ctx, &types.QueryLatestDataRequest{OracleId: 1})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Data.Value).To(Equal("72.5"))
			Expect(res.Data.Provider).To(Equal(oracleProv.String()))
			Expect(res.Data.Verified).To(BeFalse())
		})

		It("rejects submissions from anyone but the provider", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgSubmitData(subscriber, 1, "0.0"))
			Expect(err).To(MatchError(types.ErrUnauthorized))

			res, err := a.LatestData(ctx, &types.QueryLatestDataRequest{OracleId: 1})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Data.Value).To(Equal("72.5"))
		})
	})

	Context("voting system", func() {
		It("counts a subscriber's vote", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgVoteOracle(subscriber, 1))
			Expect(err).ToNot(HaveOccurred())

			res, err := a.Oracle(ctx, &types.QueryOracleRequest{OracleId: 1})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Oracle.Votes).To(Equal(uint64(1)))
		})

		It("rejects a non-subscriber's vote", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgVoteOracle(nonSubscriber, 1))
			Expect(err).To(MatchError(types.ErrInvalidSubscription))

			res, err := a.Oracle(ctx, &types.QueryOracleRequest{OracleId: 1})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Oracle.Votes).To(Equal(uint64(1)))
		})

		It("rejects a repeat vote", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgVoteOracle(subscriber, 1))
			Expect(err).To(MatchError(types.ErrAlreadyVoted))

			res, err := a.HasVoted(ctx, &types.QueryHasVotedRequest{OracleId: 1, Voter: subscriber.String()})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.HasVoted).To(BeTrue())
		})
	})

	Context("admin functions", func() {
		It("lets the owner update the fee", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgSetSubscriptionFee(deployer, 200))
			Expect(err).ToNot(HaveOccurred())

			res, err := a.SubscriptionFee(ctx, &types.QuerySubscriptionFeeRequest{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Fee).To(Equal(uint64(200)))
		})

		It("rejects fee updates from a non-owner", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgSetSubscriptionFee(nonSubscriber, 1))
			Expect(err).To(MatchError(types.ErrUnauthorized))

			res, err := a.SubscriptionFee(ctx, &types.QuerySubscriptionFeeRequest{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Fee).To(Equal(uint64(200)))
		})

		It("lets the owner verify the latest data", func() {
			_, _, err := a.Deliver(ctx, types.NewMsgVerifyData(deployer, 1))
			Expect(err).ToNot(HaveOccurred())

			res, err := a.LatestData(ctx, &types.QueryLatestDataRequest{OracleId: 1})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Data.Verified).To(BeTrue())
		})

		It("accounts the collected fee and bonded stake", func() {
			res, err := a.Treasury(ctx, &types.QueryTreasuryRequest{})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Treasury).To(Equal(types.Treasury{CollectedFees: 100, BondedStake: 10000}))
		})
	})
})
