package types

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	testCases := []struct {
		name     string
		malleate func(*Params)
	}{
		{"invalid denom", func(p *Params) { p.FeeDenom = "1x" }},
		{"zero activation votes", func(p *Params) { p.ActivationVotes = 0 }},
		{"validity period above int64", func(p *Params) { p.DataValidityPeriod = math.MaxUint64 }},
		{"no data types", func(p *Params) { p.DataTypes = nil }},
		{"blank data type", func(p *Params) { p.DataTypes = []string{"price", " "} }},
		{"duplicate data type", func(p *Params) { p.DataTypes = []string{"price", "price"} }},
	}

	for _, tc := range testCases {
		params := DefaultParams()
		tc.malleate(&params)
		require.Error(t, params.Validate(), tc.name)
	}

	// defaults are copied, not shared
	params := DefaultParams()
	params.DataTypes[0] = "changed"
	require.Equal(t, "weather", DefaultParams().DataTypes[0])
	require.True(t, DefaultParams().HasDataType("sports"))
	require.False(t, DefaultParams().HasDataType("changed"))
}

func TestSubscriptionTier(t *testing.T) {
	tier, err := ParseSubscriptionTier("PREMIUM")
	require.NoError(t, err)
	require.Equal(t, TierPremium, tier)
	require.Equal(t, "premium", tier.String())

	_, err = ParseSubscriptionTier("unspecified")
	require.ErrorIs(t, err, ErrInvalidSubscriptionType)
	require.False(t, TierUnspecified.Valid())
	require.Equal(t, "unspecified", SubscriptionTier(42).String())

	bz, err := json.Marshal(Subscription{Subscriber: "s", SubscriptionType: TierEnterprise, Active: true})
	require.NoError(t, err)
	require.Contains(t, string(bz), `"subscription_type":"enterprise"`)

	var sub Subscription
	require.Error(t, json.Unmarshal([]byte(`{"subscription_type":"gold"}`), &sub))
}

func TestSubmittedDataIsStale(t *testing.T) {
	now := time.Unix(10_000, 0)
	data := SubmittedData{Timestamp: now.Unix() - 3600}

	require.False(t, data.IsStale(now, 3600))
	require.True(t, data.IsStale(now, 3599))
	require.False(t, data.IsStale(now, 0))
	require.False(t, data.IsStale(now, math.MaxInt64))
}

func TestReason(t *testing.T) {
	require.Equal(t, "ERR_INSUFFICIENT_PAYMENT", Reason(ErrInsufficientPayment))
	require.Equal(t, "ERR_UNAUTHORIZED", Reason(errorsmod.Wrap(ErrUnauthorized, "not the owner")))
	require.Equal(t, "ERR_INVALID_SUBSCRIPTION", Reason(errorsmod.Wrapf(ErrInvalidSubscription, "%s", "addr")))
	require.Equal(t, "ERR_INVALID_REQUEST", Reason(errors.New("boom")))
}
