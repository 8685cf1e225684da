package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Msg is a state transition request. The signer is the authenticated caller
// supplied by the execution environment.
type Msg interface {
	Route() string
	Type() string
	ValidateBasic() error
	GetSigner() string
}

const (
	TypeMsgSubscribe          = "subscribe"
	TypeMsgRegisterOracle     = "register_oracle"
	TypeMsgSubmitData         = "submit_data"
	TypeMsgVoteOracle         = "vote_oracle"
	TypeMsgSetSubscriptionFee = "set_subscription_fee"
	TypeMsgVerifyData         = "verify_data"
)

var (
	_ Msg = &MsgSubscribe{}
	_ Msg = &MsgRegisterOracle{}
	_ Msg = &MsgSubmitData{}
	_ Msg = &MsgVoteOracle{}
	_ Msg = &MsgSetSubscriptionFee{}
	_ Msg = &MsgVerifyData{}
)

// MsgSubscribe buys or renews a subscription, tendering Payment.
type MsgSubscribe struct {
	Subscriber       string   `json:"subscriber"`
	SubscriptionType string   `json:"subscription_type"`
	Payment          sdk.Coin `json:"payment"`
}

type MsgSubscribeResponse struct{}

// NewMsgSubscribe creates a new MsgSubscribe instance
func NewMsgSubscribe(subscriber sdk.AccAddress, subscriptionType string, payment sdk.Coin) *MsgSubscribe {
	return &MsgSubscribe{
		Subscriber:       subscriber.String(),
		SubscriptionType: subscriptionType,
		Payment:          payment,
	}
}

func (msg MsgSubscribe) Route() string     { return RouterKey }
func (msg MsgSubscribe) Type() string      { return TypeMsgSubscribe }
func (msg MsgSubscribe) GetSigner() string { return msg.Subscriber }

// ValidateBasic implements the Msg interface
func (msg MsgSubscribe) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Subscriber); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid subscriber address (%s)", err)
	}
	if _, err := ParseSubscriptionTier(msg.SubscriptionType); err != nil {
		return err
	}
	if err := msg.Payment.Validate(); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidCoins, "invalid payment (%s)", err)
	}
	return nil
}

// MsgRegisterOracle registers the signer as provider of a new oracle.
type MsgRegisterOracle struct {
	Provider string   `json:"provider"`
	DataType string   `json:"data_type"`
	Stake    sdk.Coin `json:"stake"`
}

type MsgRegisterOracleResponse struct {
	OracleId uint64 `json:"oracle_id"`
}

// NewMsgRegisterOracle creates a new MsgRegisterOracle instance
func NewMsgRegisterOracle(provider sdk.AccAddress, dataType string, stake sdk.Coin) *MsgRegisterOracle {
	return &MsgRegisterOracle{
		Provider: provider.String(),
		DataType: dataType,
		Stake:    stake,
	}
}

func (msg MsgRegisterOracle) Route() string     { return RouterKey }
func (msg MsgRegisterOracle) Type() string      { return TypeMsgRegisterOracle }
func (msg MsgRegisterOracle) GetSigner() string { return msg.Provider }

// ValidateBasic implements the Msg interface
func (msg MsgRegisterOracle) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid provider address (%s)", err)
	}
	if msg.DataType == "" {
		return errorsmod.Wrap(ErrInvalidDataType, "data type cannot be empty")
	}
	if err := msg.Stake.Validate(); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidCoins, "invalid stake (%s)", err)
	}
	if !msg.Stake.Amount.IsUint64() {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidCoins, "stake %s out of range", msg.Stake)
	}
	return nil
}

// MsgSubmitData reports a new value for an oracle owned by the signer.
type MsgSubmitData struct {
	Provider string `json:"provider"`
	OracleId uint64 `json:"oracle_id"`
	Value    string `json:"value"`
}

type MsgSubmitDataResponse struct{}

// NewMsgSubmitData creates a new MsgSubmitData instance
func NewMsgSubmitData(provider sdk.AccAddress, oracleId uint64, value string) *MsgSubmitData {
	return &MsgSubmitData{
		Provider: provider.String(),
		OracleId: oracleId,
		Value:    value,
	}
}

func (msg MsgSubmitData) Route() string     { return RouterKey }
func (msg MsgSubmitData) Type() string      { return TypeMsgSubmitData }
func (msg MsgSubmitData) GetSigner() string { return msg.Provider }

// ValidateBasic implements the Msg interface
func (msg MsgSubmitData) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Provider); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid provider address (%s)", err)
	}
	if err := ValidateDataValue(msg.Value); err != nil {
		return errorsmod.Wrap(ErrInvalidDataValue, err.Error())
	}
	return nil
}

// MsgVoteOracle casts the signer's vote for an oracle.
type MsgVoteOracle struct {
	Voter    string `json:"voter"`
	OracleId uint64 `json:"oracle_id"`
}

type MsgVoteOracleResponse struct {
	Votes  uint64 `json:"votes"`
	Active bool   `json:"active"`
}

// NewMsgVoteOracle creates a new MsgVoteOracle instance
func NewMsgVoteOracle(voter sdk.AccAddress, oracleId uint64) *MsgVoteOracle {
	return &MsgVoteOracle{
		Voter:    voter.String(),
		OracleId: oracleId,
	}
}

func (msg MsgVoteOracle) Route() string     { return RouterKey }
func (msg MsgVoteOracle) Type() string      { return TypeMsgVoteOracle }
func (msg MsgVoteOracle) GetSigner() string { return msg.Voter }

// ValidateBasic implements the Msg interface
func (msg MsgVoteOracle) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Voter); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid voter address (%s)", err)
	}
	return nil
}

// MsgSetSubscriptionFee changes the subscription fee. Owner only.
type MsgSetSubscriptionFee struct {
	Owner  string `json:"owner"`
	NewFee uint64 `json:"new_fee"`
}

type MsgSetSubscriptionFeeResponse struct{}

// NewMsgSetSubscriptionFee creates a new MsgSetSubscriptionFee instance
func NewMsgSetSubscriptionFee(owner sdk.AccAddress, newFee uint64) *MsgSetSubscriptionFee {
	return &MsgSetSubscriptionFee{
		Owner:  owner.String(),
		NewFee: newFee,
	}
}

func (msg MsgSetSubscriptionFee) Route() string     { return RouterKey }
func (msg MsgSetSubscriptionFee) Type() string      { return TypeMsgSetSubscriptionFee }
func (msg MsgSetSubscriptionFee) GetSigner() string { return msg.Owner }

// ValidateBasic implements the Msg interface
func (msg MsgSetSubscriptionFee) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid owner address (%s)", err)
	}
	return nil
}

// MsgVerifyData marks the latest submission of an oracle as verified. Owner only.
type MsgVerifyData struct {
	Owner    string `json:"owner"`
	OracleId uint64 `json:"oracle_id"`
}

type MsgVerifyDataResponse struct{}

// NewMsgVerifyData creates a new MsgVerifyData instance
func NewMsgVerifyData(owner sdk.AccAddress, oracleId uint64) *MsgVerifyData {
	return &MsgVerifyData{
		Owner:    owner.String(),
		OracleId: oracleId,
	}
}

func (msg MsgVerifyData) Route() string     { return RouterKey }
func (msg MsgVerifyData) Type() string      { return TypeMsgVerifyData }
func (msg MsgVerifyData) GetSigner() string { return msg.Owner }

// ValidateBasic implements the Msg interface
func (msg MsgVerifyData) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid owner address (%s)", err)
	}
	return nil
}

// MsgServer is the write surface of the module.
type MsgServer interface {
	Subscribe(context.Context, *MsgSubscribe) (*MsgSubscribeResponse, error)
	RegisterOracle(context.Context, *MsgRegisterOracle) (*MsgRegisterOracleResponse, error)
	SubmitData(context.Context, *MsgSubmitData) (*MsgSubmitDataResponse, error)
	VoteOracle(context.Context, *MsgVoteOracle) (*MsgVoteOracleResponse, error)
	SetSubscriptionFee(context.Context, *MsgSetSubscriptionFee) (*MsgSetSubscriptionFeeResponse, error)
	VerifyData(context.Context, *MsgVerifyData) (*MsgVerifyDataResponse, error)
}
