package dataoracle

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/GPTx-global/guru-dataoracle/x/dataoracle/types"
)

// Handler executes a single message against the registry state.
type Handler func(ctx sdk.Context, msg types.Msg) (*sdk.Result, error)

// NewHandler creates a new handler for dataoracle messages. Every message runs
// on a cache of the context's multistore that is written back only when the
// message succeeds, so a failed call leaves no state or events behind.
func NewHandler(msgServer types.MsgServer) Handler {
	return func(ctx sdk.Context, msg types.Msg) (*sdk.Result, error) {
		if err := msg.ValidateBasic(); err != nil {
			return nil, err
		}

		cms := ctx.MultiStore().CacheMultiStore()
		cacheCtx := ctx.WithMultiStore(cms).WithEventManager(sdk.NewEventManager())
		goCtx := sdk.WrapSDKContext(cacheCtx)

		var (
			res interface{}
			err error
		)
		switch msg := msg.(type) {
		case *types.MsgSubscribe:
			res, err = msgServer.Subscribe(goCtx, msg)

		case *types.MsgRegisterOracle:
			res, err = msgServer.RegisterOracle(goCtx, msg)

		case *types.MsgSubmitData:
			res, err = msgServer.SubmitData(goCtx, msg)

		case *types.MsgVoteOracle:
			res, err = msgServer.VoteOracle(goCtx, msg)

		case *types.MsgSetSubscriptionFee:
			res, err = msgServer.SetSubscriptionFee(goCtx, msg)

		case *types.MsgVerifyData:
			res, err = msgServer.VerifyData(goCtx, msg)

		default:
			return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
		}
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(res)
		if err != nil {
			return nil, errorsmod.Wrap(sdkerrors.ErrJSONMarshal, err.Error())
		}

		cms.Write()
		events := cacheCtx.EventManager().Events()
		ctx.EventManager().EmitEvents(events)

		return &sdk.Result{
			Data:   data,
			Events: events.ToABCIEvents(),
		}, nil
	}
}
