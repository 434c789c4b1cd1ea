package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// EmitForwardEvent emits an event describing a forwarded batch
func EmitForwardEvent(ctx sdk.Context, sender string, msgCount int, batchStart uint32) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeForward,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
			sdk.NewAttribute(types.AttributeKeySender, sender),
			sdk.NewAttribute(types.AttributeKeyMsgCount, fmt.Sprint(msgCount)),
			sdk.NewAttribute(types.AttributeKeyBatchStart, fmt.Sprint(batchStart)),
		),
	)
}

// EmitCallbackRegisteredEvent emits an event so that the registered reply callback can be traced
func EmitCallbackRegisteredEvent(ctx sdk.Context, index uint32, info types.ReplyCallbackInfo) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCallbackRegistered,
			callbackAttributes(index, info)...,
		),
	)
}

// EmitReplyCallbackEvent emits an event for a reply callback relayed over IBC
func EmitReplyCallbackEvent(ctx sdk.Context, index uint32, info types.ReplyCallbackInfo, msg *types.MsgTransfer) {
	fee := ""
	if msg.Fee != nil {
		if total, err := msg.Fee.FeeTotal(); err == nil {
			fee = total.String()
		}
	}

	attributes := append(
		callbackAttributes(index, info),
		sdk.NewAttribute(types.AttributeKeyTimeout, fmt.Sprint(msg.TimeoutTimestamp)),
		sdk.NewAttribute(types.AttributeKeyFee, fee),
	)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeReplyCallback, attributes...))
}

// EmitCallbackExpiredEvent emits an event for a reply callback removed without being answered
func EmitCallbackExpiredEvent(ctx sdk.Context, index uint32, info types.ReplyCallbackInfo) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCallbackExpired,
			callbackAttributes(index, info)...,
		),
	)
}

// EmitConfigUpdatedEvent emits an event for an owner operation
func EmitConfigUpdatedEvent(ctx sdk.Context, action string, cfg types.Config) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeConfigUpdated,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
			sdk.NewAttribute(types.AttributeKeyAction, action),
			sdk.NewAttribute(types.AttributeKeyOwner, cfg.Owner),
			sdk.NewAttribute(types.AttributeKeyWhitelist, string(types.MustMarshalJSON(cfg.Whitelist))),
		),
	)
}

func callbackAttributes(index uint32, info types.ReplyCallbackInfo) []sdk.Attribute {
	return []sdk.Attribute{
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyIndex, fmt.Sprint(index)),
		sdk.NewAttribute(types.AttributeKeyCallbackID, fmt.Sprint(info.CallbackID)),
		sdk.NewAttribute(types.AttributeKeyReceiver, info.Receiver),
		sdk.NewAttribute(types.AttributeKeyPortID, info.PortID),
		sdk.NewAttribute(types.AttributeKeyChannelID, info.ChannelID),
		sdk.NewAttribute(types.AttributeKeyDenom, info.Denom),
	}
}
