package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// ModuleCdc encodes the records kept in the module store.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	ModuleCdc.Seal()
}
