package host

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// EffectExecutor executes a single message dispatched by the proxy.
type EffectExecutor interface {
	ExecuteEffect(ctx sdk.Context, sender string, effect types.Effect) (*types.SubMsgResponse, error)
}

// ProxyKeeper defines the proxy operations driven by the Dispatcher.
type ProxyKeeper interface {
	GetAddress() string
	Instantiate(ctx sdk.Context, msg types.InstantiateMsg) (*types.Response, error)
	Execute(ctx sdk.Context, sender string, msg types.ExecuteMsg) (*types.Response, error)
	Reply(ctx sdk.Context, reply types.Reply) (*types.Response, error)
	SweepReplyCallbacks(ctx sdk.Context, indices []uint32) int
}

// Result describes everything a dispatched operation did.
type Result struct {
	// Response is the response of the operation itself.
	Response *types.Response
	// Executed lists every message executed, replies and callback packets included, in execution order.
	Executed []types.SubMsg
	// Packets are the callback transfers sent while relaying replies.
	Packets []*types.MsgTransfer
	// Expired is the number of reply callbacks removed without being answered.
	Expired int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithoutReplies makes the dispatcher drop completion notifications, leaving reply
// callbacks unanswered until they are swept at the end of the operation.
func WithoutReplies() Option {
	return func(d *Dispatcher) {
		d.deliverReplies = false
	}
}

// Dispatcher plays the host for the proxy: it runs an operation, executes the
// messages it dispatches, delivers completion notifications back to the proxy and
// executes the messages those produce. Everything happens in a branch of the
// store that is written only if every step succeeds.
type Dispatcher struct {
	keeper         ProxyKeeper
	executor       EffectExecutor
	deliverReplies bool
}

// NewDispatcher creates a new Dispatcher instance
func NewDispatcher(keeper ProxyKeeper, executor EffectExecutor, opts ...Option) Dispatcher {
	d := Dispatcher{
		keeper:         keeper,
		executor:       executor,
		deliverReplies: true,
	}

	for _, opt := range opts {
		opt(&d)
	}

	return d
}

// Instantiate bootstraps the proxy and executes its initial messages atomically.
func (d Dispatcher) Instantiate(ctx sdk.Context, msg types.InstantiateMsg) (*Result, error) {
	return d.run(ctx, func(cacheCtx sdk.Context) (*types.Response, error) {
		return d.keeper.Instantiate(cacheCtx, msg)
	})
}

// Execute runs an operation submitted by sender and everything it dispatches atomically.
func (d Dispatcher) Execute(ctx sdk.Context, sender string, msg types.ExecuteMsg) (*Result, error) {
	return d.run(ctx, func(cacheCtx sdk.Context) (*types.Response, error) {
		return d.keeper.Execute(cacheCtx, sender, msg)
	})
}

func (d Dispatcher) run(ctx sdk.Context, operation func(sdk.Context) (*types.Response, error)) (*Result, error) {
	// CacheContext returns a new context with the multi-store branched into a cached storage object
	// writeCache is called only if the operation and all dispatched msgs succeed, performing state transitions atomically
	cacheCtx, writeCache := ctx.CacheContext()
	// events of an aborted operation are discarded along with its writes
	cacheCtx = cacheCtx.WithEventManager(sdk.NewEventManager())

	res, err := operation(cacheCtx)
	if err != nil {
		return nil, err
	}

	result := &Result{Response: res}
	var awaiting []uint32
	if err := d.dispatch(cacheCtx, res, result, &awaiting); err != nil {
		return nil, err
	}

	result.Expired = d.keeper.SweepReplyCallbacks(cacheCtx, awaiting)

	writeCache()
	ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())

	return result, nil
}

// dispatch executes the messages of res in order. A message dispatched with a reply
// on success has its completion handed to the proxy right away, before the next
// message runs, and the messages of that reply are dispatched in turn.
func (d Dispatcher) dispatch(ctx sdk.Context, res *types.Response, result *Result, awaiting *[]uint32) error {
	for i, subMsg := range res.Messages {
		result.Executed = append(result.Executed, subMsg)

		if subMsg.ReplyOn == types.ReplySuccess {
			_, index := types.ParseReplyID(subMsg.ID)
			*awaiting = append(*awaiting, index)
		}

		out, err := d.executor.ExecuteEffect(ctx, d.keeper.GetAddress(), subMsg.Msg)
		if err != nil {
			// failures are never reported back, they abort the whole operation
			return sdkerrors.Wrapf(types.ErrRemoteFailure, "message %d: %s", i, err)
		}

		if packet, ok := decodeCallbackTransfer(subMsg.Msg); ok {
			result.Packets = append(result.Packets, packet)
		}

		if subMsg.ReplyOn != types.ReplySuccess || !d.deliverReplies {
			continue
		}

		if out == nil {
			out = &types.SubMsgResponse{}
		}

		replyRes, err := d.keeper.Reply(ctx, types.NewSuccessReply(subMsg.ID, out.Events, out.Data))
		if err != nil {
			return err
		}

		if err := d.dispatch(ctx, replyRes, result, awaiting); err != nil {
			return err
		}
	}

	return nil
}

func decodeCallbackTransfer(effect types.Effect) (*types.MsgTransfer, bool) {
	stargate, ok := effect.Stargate()
	if !ok {
		return nil, false
	}

	protoAny := stargate.ToAny()
	if protoAny.TypeUrl != types.MsgTransferTypeURL {
		return nil, false
	}

	var msg types.MsgTransfer
	if err := msg.Unmarshal(protoAny.Value); err != nil {
		return nil, false
	}

	return &msg, true
}
