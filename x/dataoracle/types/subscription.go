package types

import (
	"encoding/json"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// SubscriptionTier is the closed set of subscription levels a subscriber can buy.
type SubscriptionTier int32

const (
	TierUnspecified SubscriptionTier = iota
	TierBasic
	TierPremium
	TierEnterprise
)

var tierNames = map[SubscriptionTier]string{
	TierUnspecified: "unspecified",
	TierBasic:       "basic",
	TierPremium:     "premium",
	TierEnterprise:  "enterprise",
}

func (t SubscriptionTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return tierNames[TierUnspecified]
}

// Valid reports whether t is one of the purchasable tiers.
func (t SubscriptionTier) Valid() bool {
	return t >= TierBasic && t <= TierEnterprise
}

// ParseSubscriptionTier converts a tier label (case-insensitive) into a SubscriptionTier.
func ParseSubscriptionTier(label string) (SubscriptionTier, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for tier, name := range tierNames {
		if tier.Valid() && name == label {
			return tier, nil
		}
	}
	return TierUnspecified, errorsmod.Wrapf(ErrInvalidSubscriptionType, "unknown tier %q", label)
}

func (t SubscriptionTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *SubscriptionTier) UnmarshalJSON(bz []byte) error {
	var label string
	if err := json.Unmarshal(bz, &label); err != nil {
		return err
	}
	tier, err := ParseSubscriptionTier(label)
	if err != nil {
		return err
	}
	*t = tier
	return nil
}

// Subscription is the paid access record of a subscriber.
type Subscription struct {
	Subscriber       string           `json:"subscriber"`
	SubscriptionType SubscriptionTier `json:"subscription_type"`
	Active           bool             `json:"active"`
	Height           int64            `json:"height"`
}

// Treasury accumulates what the registry has charged and bonded, in Params.FeeDenom.
type Treasury struct {
	CollectedFees uint64 `json:"collected_fees"`
	BondedStake   uint64 `json:"bonded_stake"`
}
