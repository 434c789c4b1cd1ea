package keeper

import (
	"encoding/json"
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// SetReplyCallback stores the pending reply callback for the given correlation index,
// overwriting any previous entry.
func (k Keeper) SetReplyCallback(ctx sdk.Context, index uint32, info types.ReplyCallbackInfo) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyActiveReplyCallback(index), types.MustMarshalJSON(info))
}

// GetReplyCallback retrieves the pending reply callback for the given correlation index.
func (k Keeper) GetReplyCallback(ctx sdk.Context, index uint32) (types.ReplyCallbackInfo, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyActiveReplyCallback(index))
	if bz == nil {
		return types.ReplyCallbackInfo{}, false
	}

	var info types.ReplyCallbackInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		panic(fmt.Errorf("cannot decode reply callback %d: %w", index, err))
	}

	return info, true
}

// HasReplyCallback returns true if a reply callback is pending for the given correlation index.
func (k Keeper) HasReplyCallback(ctx sdk.Context, index uint32) bool {
	store := ctx.KVStore(k.storeKey)
	return store.Has(types.KeyActiveReplyCallback(index))
}

// DeleteReplyCallback removes the pending reply callback for the given correlation index.
func (k Keeper) DeleteReplyCallback(ctx sdk.Context, index uint32) {
	store := ctx.KVStore(k.storeKey)
	store.Delete(types.KeyActiveReplyCallback(index))
}

// TakeReplyCallback retrieves and removes the pending reply callback for the given
// correlation index. A missing callback means the host replied to a message the
// proxy never registered a callback for.
func (k Keeper) TakeReplyCallback(ctx sdk.Context, index uint32) (types.ReplyCallbackInfo, error) {
	info, found := k.GetReplyCallback(ctx, index)
	if !found {
		return types.ReplyCallbackInfo{}, sdkerrors.Wrapf(
			types.ErrInternalInvariant, "invalid state: reply callback info not found for index %d, but expected", index,
		)
	}

	k.DeleteReplyCallback(ctx, index)

	return info, nil
}

// IterateReplyCallbacks iterates over every pending reply callback in store key order
// and performs a provided callback function. Iteration stops when cb returns true.
func (k Keeper) IterateReplyCallbacks(ctx sdk.Context, cb func(index uint32, info types.ReplyCallbackInfo) (stop bool)) {
	store := ctx.KVStore(k.storeKey)
	iterator := sdk.KVStorePrefixIterator(store, types.KeyActiveReplyCallbackPrefix())
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		index, err := types.ParseKeyActiveReplyCallback(string(iterator.Key()))
		if err != nil {
			panic(err)
		}

		var info types.ReplyCallbackInfo
		if err := json.Unmarshal(iterator.Value(), &info); err != nil {
			panic(fmt.Errorf("cannot decode reply callback %d: %w", index, err))
		}

		if cb(index, info) {
			break
		}
	}
}

// GetAllReplyCallbacks returns every pending reply callback ordered by correlation index.
func (k Keeper) GetAllReplyCallbacks(ctx sdk.Context) []types.IndexedReplyCallback {
	var callbacks []types.IndexedReplyCallback
	k.IterateReplyCallbacks(ctx, func(index uint32, info types.ReplyCallbackInfo) bool {
		callbacks = append(callbacks, types.IndexedReplyCallback{Index: index, Callback: info})
		return false
	})

	sort.Slice(callbacks, func(i, j int) bool {
		return callbacks[i].Index < callbacks[j].Index
	})

	return callbacks
}

// GetNextCallbackIndex returns the correlation index assigned to position 0 of the next batch.
func (k Keeper) GetNextCallbackIndex(ctx sdk.Context) uint32 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyNextCallbackIndex())
	if bz == nil {
		return 0
	}

	return uint32(sdk.BigEndianToUint64(bz))
}

// SetNextCallbackIndex stores the correlation index assigned to position 0 of the next batch.
func (k Keeper) SetNextCallbackIndex(ctx sdk.Context, index uint32) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyNextCallbackIndex(), sdk.Uint64ToBigEndian(uint64(index)))
}

// SweepReplyCallbacks deletes the reply callbacks still pending for the given correlation
// indices, emitting an expiry event for each one. It returns the number of callbacks removed.
func (k Keeper) SweepReplyCallbacks(ctx sdk.Context, indices []uint32) int {
	swept := 0
	for _, index := range indices {
		info, found := k.GetReplyCallback(ctx, index)
		if !found {
			continue
		}

		k.DeleteReplyCallback(ctx, index)
		EmitCallbackExpiredEvent(ctx, index, info)
		swept++
	}

	if swept > 0 {
		k.Logger(ctx).Info("expired unanswered reply callbacks", "count", swept)
	}

	return swept
}
