package types

import (
	"fmt"
	"math"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultFeeDenom           = "aguru"
	DefaultSubscriptionFee    = uint64(100)
	DefaultActivationVotes    = uint64(3)
	DefaultDataValidityPeriod = uint64(3600) // 1 hour in seconds
)

// DefaultDataTypes are the data categories an oracle may register for.
var DefaultDataTypes = []string{"weather", "price", "sports"}

// Params are the registry parameters. Only SubscriptionFee can change after
// genesis, and only through the owner.
type Params struct {
	SubscriptionFee    uint64   `json:"subscription_fee"`
	FeeDenom           string   `json:"fee_denom"`
	MinStake           uint64   `json:"min_stake"`
	ActivationVotes    uint64   `json:"activation_votes"`
	DataValidityPeriod uint64   `json:"data_validity_period"`
	DataTypes          []string `json:"data_types"`
}

// DefaultParams returns default dataoracle module parameters
func DefaultParams() Params {
	return Params{
		SubscriptionFee:    DefaultSubscriptionFee,
		FeeDenom:           DefaultFeeDenom,
		MinStake:           0,
		ActivationVotes:    DefaultActivationVotes,
		DataValidityPeriod: DefaultDataValidityPeriod,
		DataTypes:          append([]string{}, DefaultDataTypes...),
	}
}

// Validate performs basic validation on dataoracle parameters
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.FeeDenom); err != nil {
		return fmt.Errorf("invalid fee denom: %w", err)
	}

	if p.ActivationVotes == 0 {
		return fmt.Errorf("activation votes cannot be zero")
	}

	if p.DataValidityPeriod > math.MaxInt64 {
		return fmt.Errorf("data validity period %d exceeds %d seconds", p.DataValidityPeriod, int64(math.MaxInt64))
	}

	if len(p.DataTypes) == 0 {
		return fmt.Errorf("data types cannot be empty")
	}

	seen := make(map[string]struct{}, len(p.DataTypes))
	for _, dt := range p.DataTypes {
		if strings.TrimSpace(dt) == "" {
			return fmt.Errorf("data type cannot be blank")
		}
		if _, ok := seen[dt]; ok {
			return fmt.Errorf("duplicate data type %s", dt)
		}
		seen[dt] = struct{}{}
	}

	return nil
}

// HasDataType reports whether dataType is one of the configured categories.
func (p Params) HasDataType(dataType string) bool {
	for _, dt := range p.DataTypes {
		if dt == dataType {
			return true
		}
	}
	return false
}
