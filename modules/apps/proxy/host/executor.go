package host

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

const (
	// EventTypeExecuted is emitted by the SimulatedExecutor for every executed message.
	EventTypeExecuted = "executed"

	AttributeKeyKind    = "kind"
	AttributeKeyVariant = "variant"
)

var _ EffectExecutor = (*SimulatedExecutor)(nil)

// SimulatedExecutor executes messages without side effects. Each message emits an
// executed event, which is also returned as its output. Messages whose variant is
// listed in FailVariants fail.
type SimulatedExecutor struct {
	FailVariants map[string]bool

	// Executed records every message executed, in order.
	Executed []types.Effect
}

// NewSimulatedExecutor returns an executor failing messages of the given variants.
func NewSimulatedExecutor(failVariants ...string) *SimulatedExecutor {
	fail := make(map[string]bool, len(failVariants))
	for _, variant := range failVariants {
		fail[variant] = true
	}

	return &SimulatedExecutor{FailVariants: fail}
}

// ExecuteEffect implements EffectExecutor.
func (e *SimulatedExecutor) ExecuteEffect(ctx sdk.Context, sender string, effect types.Effect) (*types.SubMsgResponse, error) {
	variant := effect.Variant
	if variant == "" {
		variant = string(effect.Kind)
	}

	if e.FailVariants[variant] {
		return nil, fmt.Errorf("%s message failed", variant)
	}

	e.Executed = append(e.Executed, effect)

	event := sdk.NewEvent(
		EventTypeExecuted,
		sdk.NewAttribute(sdk.AttributeKeySender, sender),
		sdk.NewAttribute(AttributeKeyKind, string(effect.Kind)),
		sdk.NewAttribute(AttributeKeyVariant, variant),
	)
	ctx.EventManager().EmitEvent(event)

	return &types.SubMsgResponse{
		Events: types.NewEventsFromABCI(sdk.Events{event}.ToABCIEvents()),
		Data:   effect.Body,
	}, nil
}
