package types

import (
	"fmt"
	"strconv"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const (
	// ModuleName defines the ibc proxy module name
	ModuleName = "ibcproxy"

	// StoreKey is the store key string for the ibc proxy module
	StoreKey = ModuleName

	// ConfigKey is the key under which the singleton proxy configuration is stored
	ConfigKey = "config"

	// ActiveReplyCallbackPrefix is the key prefix for pending reply callbacks keyed by correlation index
	ActiveReplyCallbackPrefix = "activeReplyCallbacks"

	// NextCallbackIndexKey is the key storing the first correlation index handed to the next batch
	NextCallbackIndexKey = "nextCallbackIndex"
)

// KeyConfig returns the store key of the proxy configuration.
func KeyConfig() []byte {
	return []byte(ConfigKey)
}

// KeyNextCallbackIndex returns the store key of the correlation index counter.
func KeyNextCallbackIndex() []byte {
	return []byte(NextCallbackIndexKey)
}

// KeyActiveReplyCallback returns the key for index -> pending reply callback mapping
func KeyActiveReplyCallback(index uint32) []byte {
	return []byte(fmt.Sprintf("%s/%d", ActiveReplyCallbackPrefix, index))
}

// KeyActiveReplyCallbackPrefix returns the prefix shared by every pending reply callback key
func KeyActiveReplyCallbackPrefix() []byte {
	return []byte(fmt.Sprintf("%s/", ActiveReplyCallbackPrefix))
}

// ParseKeyActiveReplyCallback parses the key used to store a pending reply callback and returns its index
func ParseKeyActiveReplyCallback(key string) (uint32, error) {
	keySplit := strings.Split(key, "/")
	if len(keySplit) != 2 {
		return 0, sdkerrors.Wrapf(
			sdkerrors.ErrLogic, "key provided is incorrect: the key split has incorrect length, expected %d, got %d", 2, len(keySplit),
		)
	}

	if keySplit[0] != ActiveReplyCallbackPrefix {
		return 0, sdkerrors.Wrapf(sdkerrors.ErrLogic, "key prefix is incorrect: expected %s, got %s", ActiveReplyCallbackPrefix, keySplit[0])
	}

	index, err := strconv.ParseUint(keySplit[1], 10, 32)
	if err != nil {
		return 0, err
	}

	return uint32(index), nil
}
