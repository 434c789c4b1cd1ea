package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// InitGenesis initializes the ibc proxy state from a provided genesis state.
func (k Keeper) InitGenesis(ctx sdk.Context, state types.GenesisState) {
	if err := state.Validate(); err != nil {
		panic(fmt.Errorf("invalid ibc proxy genesis state: %w", err))
	}

	k.SetConfig(ctx, state.Config)

	for _, cb := range state.ActiveCallbacks {
		k.SetReplyCallback(ctx, cb.Index, cb.Callback)
	}

	k.SetNextCallbackIndex(ctx, state.NextCallbackIndex)
}

// ExportGenesis returns the ibc proxy exported genesis.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		panic(err)
	}

	return types.NewGenesisState(cfg, k.GetAllReplyCallbacks(ctx), k.GetNextCallbackIndex(ctx))
}
