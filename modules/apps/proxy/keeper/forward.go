package keeper

import (
	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// ValidateBatchLength rejects batches whose positions do not fit in a 32 bit correlation index.
func ValidateBatchLength(length uint64) error {
	if length > types.MaxBatchLength {
		return sdkerrors.Wrapf(
			types.ErrInvalidInput, "messages array too long, must be shorter than %d, got %d", types.MaxBatchLength, length,
		)
	}

	return nil
}

// ExecuteMsgs forwards a batch of messages on behalf of sender. Messages are returned
// as dispatch instructions in batch order. Messages requesting a reply callback get a
// pending callback stored under their correlation index and are dispatched with a reply
// on success. Any error leaves the caller responsible for discarding the state written
// so far, which the host does by aborting the enclosing transaction.
func (k Keeper) ExecuteMsgs(ctx sdk.Context, sender string, msg types.ExecuteMsgsMsg) (*types.Response, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if err := types.AuthorizeBatch(cfg, sender); err != nil {
		return nil, err
	}

	if err := ValidateBatchLength(uint64(len(msg.Msgs))); err != nil {
		return nil, err
	}

	batchStart := k.GetNextCallbackIndex(ctx)

	subMsgs := make([]types.SubMsg, 0, len(msg.Msgs))
	callbacks := 0
	for position, info := range msg.Msgs {
		// correlation indices wrap around once the 32 bit space is exhausted
		index := batchStart + uint32(position)

		subMsg, err := k.forwardMsg(ctx, cfg, sender, index, info)
		if err != nil {
			return nil, sdkerrors.Wrapf(err, "message %d", position)
		}

		if subMsg.ReplyOn == types.ReplySuccess {
			callbacks++
		}
		subMsgs = append(subMsgs, subMsg)
	}

	k.SetNextCallbackIndex(ctx, batchStart+uint32(len(msg.Msgs)))

	EmitForwardEvent(ctx, sender, len(msg.Msgs), batchStart)

	defer func() {
		labels := []metrics.Label{telemetry.NewLabel("sender", sender)}
		telemetry.IncrCounterWithLabels([]string{"ibc", types.ModuleName, "forward"}, float32(len(subMsgs)), labels)
		telemetry.IncrCounterWithLabels([]string{"ibc", types.ModuleName, "callback", "registered"}, float32(callbacks), labels)
	}()

	return types.NewResponse().
		AddAttribute(types.AttributeKeyAction, "execute_msgs").
		AddAttribute(types.AttributeKeyBatchStart, batchStart).
		AddSubMessages(subMsgs...), nil
}

// forwardMsg applies the per message policy of cfg and turns a forwarded message into
// a dispatch instruction, registering its reply callback under index when one is requested.
func (k Keeper) forwardMsg(
	ctx sdk.Context, cfg types.Config, sender string, index uint32, info types.ExecuteMsgInfo,
) (types.SubMsg, error) {
	if err := info.Msg.ValidateBasic(); err != nil {
		return types.SubMsg{}, err
	}

	if err := types.AuthorizeEffect(cfg, sender, info.Msg); err != nil {
		return types.SubMsg{}, err
	}

	if info.ReplyCallback == nil {
		return types.NewSubMsg(info.Msg), nil
	}

	replyCallback := *info.ReplyCallback
	if err := replyCallback.ValidateBasic(); err != nil {
		return types.SubMsg{}, err
	}

	receiver, err := ResolveCallbackReceiver(cfg, sender, replyCallback)
	if err != nil {
		return types.SubMsg{}, err
	}

	if k.HasReplyCallback(ctx, index) {
		return types.SubMsg{}, sdkerrors.Wrapf(
			types.ErrInternalInvariant, "correlation index %d still has a pending reply callback", index,
		)
	}

	callbackInfo := types.NewReplyCallbackInfo(
		replyCallback.CallbackID, receiver, replyCallback.IBCPort, replyCallback.IBCChannel, replyCallback.Denom,
	)
	k.SetReplyCallback(ctx, index, callbackInfo)
	EmitCallbackRegisteredEvent(ctx, index, callbackInfo)

	// the upper 32 bits tell which kind of reply is handled, the lower 32 bits which callback
	replyID := types.NewReplyID(types.ExecuteMsgCallbackReplyKind, index)

	return types.NewSubMsgReplyOnSuccess(info.Msg, replyID), nil
}

// ResolveCallbackReceiver returns the address a reply callback is relayed to. The
// receiver defaults to sender; an explicit receiver must either be sender or the
// intermediary address of sender over the callback channel.
func ResolveCallbackReceiver(cfg types.Config, sender string, replyCallback types.ReplyCallback) (string, error) {
	if replyCallback.Receiver == "" || replyCallback.Receiver == sender {
		return sender, nil
	}

	intermediary, err := types.DeriveIntermediateSender(replyCallback.IBCChannel, sender, cfg.ChainPrefix)
	if err != nil {
		return "", sdkerrors.Wrapf(types.ErrInvalidInput, "cannot derive intermediary sender: %v", err)
	}

	if replyCallback.Receiver != intermediary {
		return "", sdkerrors.Wrapf(
			types.ErrInvalidInput, "callback receiver must be sender or intermediate to sender, got %s", replyCallback.Receiver,
		)
	}

	return replyCallback.Receiver, nil
}
