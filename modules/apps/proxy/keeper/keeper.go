package keeper

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// Keeper defines the IBC proxy keeper
type Keeper struct {
	storeKey sdk.StoreKey

	// address is the account the proxy dispatches messages and sends callback packets as
	address string
}

// NewKeeper creates a new IBC proxy Keeper instance
func NewKeeper(key sdk.StoreKey, address string) Keeper {
	if address == "" {
		panic("the IBC proxy address must be set")
	}

	return Keeper{
		storeKey: key,
		address:  address,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/ibc-%s", types.ModuleName))
}

// GetAddress returns the address the proxy acts as.
func (k Keeper) GetAddress() string {
	return k.address
}

// HasConfig returns true if the proxy has been instantiated.
func (k Keeper) HasConfig(ctx sdk.Context) bool {
	store := ctx.KVStore(k.storeKey)
	return store.Has(types.KeyConfig())
}

// GetConfig returns the stored proxy configuration.
func (k Keeper) GetConfig(ctx sdk.Context) (types.Config, error) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyConfig())
	if bz == nil {
		return types.Config{}, sdkerrors.Wrap(types.ErrInternalInvariant, "proxy config not found")
	}

	var cfg types.Config
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return types.Config{}, sdkerrors.Wrapf(types.ErrInternalInvariant, "cannot decode proxy config: %v", err)
	}

	return cfg, nil
}

// SetConfig stores the proxy configuration.
func (k Keeper) SetConfig(ctx sdk.Context, cfg types.Config) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyConfig(), types.MustMarshalJSON(cfg))
}

// QueryConfig returns the proxy configuration verbatim.
func (k Keeper) QueryConfig(ctx sdk.Context) (*types.ConfigResponse, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &types.ConfigResponse{Config: cfg}, nil
}
