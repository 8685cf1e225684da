package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// Bech32Prefix defines the Bech32 prefix used for accounts
	Bech32Prefix = "guru"

	// Bech32PrefixAccPub defines the Bech32 prefix of an account's public key
	Bech32PrefixAccPub = Bech32Prefix + sdk.PrefixPublic
)

// SetBech32Prefixes sets the account address prefixes for the given config.
func SetBech32Prefixes(config *sdk.Config) {
	config.SetBech32PrefixForAccount(Bech32Prefix, Bech32PrefixAccPub)
}

func init() {
	SetBech32Prefixes(sdk.GetConfig())
}
