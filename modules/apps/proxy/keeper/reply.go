package keeper

import (
	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// Reply handles the completion of a dispatched message. Successful completions of
// messages with a pending reply callback are relayed to the callback receiver as a
// fee-annotated ICS-20 transfer whose memo carries the message outputs.
func (k Keeper) Reply(ctx sdk.Context, reply types.Reply) (*types.Response, error) {
	kind, index := types.ParseReplyID(reply.ID)
	if kind != types.ExecuteMsgCallbackReplyKind {
		return nil, sdkerrors.Wrapf(types.ErrInternalInvariant, "unknown reply id: %d", reply.ID)
	}

	if (reply.Result.Ok == nil) == (reply.Result.Err == "") {
		return nil, sdkerrors.Wrapf(types.ErrInternalInvariant, "malformed reply %d: exactly one of ok and error must be set", reply.ID)
	}

	info, err := k.TakeReplyCallback(ctx, index)
	if err != nil {
		return nil, err
	}

	if reply.Result.Ok == nil {
		// the callback was consumed, resubmitting requires forwarding the batch again
		return nil, sdkerrors.Wrap(types.ErrRemoteFailure, reply.Result.Err)
	}

	msg, err := types.NewCallbackTransfer(info, k.address, ctx.BlockTime(), reply.Result.Ok.Events, reply.Result.Ok.Data)
	if err != nil {
		return nil, err
	}

	bz, err := msg.Marshal()
	if err != nil {
		return nil, sdkerrors.Wrapf(types.ErrInternalInvariant, "cannot encode callback transfer: %v", err)
	}

	callbackMsg, err := types.NewStargateEffect(types.MsgTransferTypeURL, bz)
	if err != nil {
		return nil, err
	}

	EmitReplyCallbackEvent(ctx, index, info, msg)
	k.Logger(ctx).Debug("relaying reply callback", "index", index, "callback-id", info.CallbackID, "receiver", info.Receiver, "channel", info.ChannelID)

	defer func() {
		telemetry.IncrCounterWithLabels(
			[]string{"ibc", types.ModuleName, "callback", "relayed"},
			1,
			[]metrics.Label{
				telemetry.NewLabel("port", info.PortID),
				telemetry.NewLabel("channel", info.ChannelID),
			},
		)
	}()

	return types.NewResponse().
		AddAttribute(types.AttributeKeyAction, "reply_callback").
		AddAttribute(types.AttributeKeyReplyID, reply.ID).
		AddMessages(callbackMsg), nil
}
