// Copyright 2022 Evmos Foundation
// This file is part of the Evmos Network packages.
//
// Evmos is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The Evmos packages are distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the Evmos packages. If not, see https://github.com/evmos/evmos/blob/main/LICENSE
package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// AttoGuru defines the denomination registry fees and oracle stakes are
// paid in.
const AttoGuru string = "aguru"

// NewGuruCoin is a utility function that returns an "aguru" coin with the given sdkmath.Int amount.
// The function will panic if the provided amount is negative.
func NewGuruCoin(amount sdkmath.Int) sdk.Coin {
	return sdk.NewCoin(AttoGuru, amount)
}

// ParseGuruCoin parses an amount with or without denom. A bare number is
// read as aguru.
func ParseGuruCoin(s string) (sdk.Coin, error) {
	if amount, ok := sdkmath.NewIntFromString(s); ok {
		if amount.IsNegative() {
			return sdk.Coin{}, errorsmod.Wrapf(sdkerrors.ErrInvalidCoins, "negative amount %s", s)
		}
		return NewGuruCoin(amount), nil
	}
	return sdk.ParseCoinNormalized(s)
}
