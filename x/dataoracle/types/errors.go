package types

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

// errors
var (
	ErrInsufficientPayment     = errorsmod.Register(ModuleName, 2, "insufficient payment")
	ErrInsufficientStake       = errorsmod.Register(ModuleName, 3, "insufficient stake")
	ErrInvalidSubscription     = errorsmod.Register(ModuleName, 4, "no active subscription")
	ErrOracleNotFound          = errorsmod.Register(ModuleName, 5, "oracle not found")
	ErrUnauthorized            = errorsmod.Register(ModuleName, 6, "unauthorized")
	ErrAlreadyVoted            = errorsmod.Register(ModuleName, 7, "already voted for oracle")
	ErrInvalidDenom            = errorsmod.Register(ModuleName, 8, "invalid denom")
	ErrInvalidSubscriptionType = errorsmod.Register(ModuleName, 9, "invalid subscription type")
	ErrInvalidDataType         = errorsmod.Register(ModuleName, 10, "invalid data type")
	ErrInvalidDataValue        = errorsmod.Register(ModuleName, 11, "invalid data value")
	ErrDataNotFound            = errorsmod.Register(ModuleName, 12, "no data submitted")
	ErrTreasuryOverflow        = errorsmod.Register(ModuleName, 13, "treasury overflow")
)

// ReasonNotFound is reported for reads of absent records.
const ReasonNotFound = "ERR_NOT_FOUND"

var reasons = []struct {
	err    *errorsmod.Error
	reason string
}{
	{ErrInsufficientPayment, "ERR_INSUFFICIENT_PAYMENT"},
	{ErrInsufficientStake, "ERR_INSUFFICIENT_STAKE"},
	{ErrInvalidSubscription, "ERR_INVALID_SUBSCRIPTION"},
	{ErrOracleNotFound, "ERR_ORACLE_NOT_FOUND"},
	{ErrUnauthorized, "ERR_UNAUTHORIZED"},
	{ErrAlreadyVoted, "ERR_ALREADY_VOTED"},
	{ErrInvalidDenom, "ERR_INVALID_DENOM"},
	{ErrInvalidSubscriptionType, "ERR_INVALID_SUBSCRIPTION_TYPE"},
	{ErrInvalidDataType, "ERR_INVALID_DATA_TYPE"},
	{ErrInvalidDataValue, "ERR_INVALID_DATA_VALUE"},
	{ErrDataNotFound, "ERR_DATA_NOT_FOUND"},
	{ErrTreasuryOverflow, "ERR_TREASURY_OVERFLOW"},
}

// Reason returns the reason code reported to callers for err. Errors outside of
// the module registry map to ERR_INVALID_REQUEST.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "ERR_INVALID_REQUEST"
}
