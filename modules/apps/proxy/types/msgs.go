package types

import (
	"encoding/json"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-proxy/internal/validate"
)

// ExecuteMsg is the union of operations a caller can submit to the proxy.
// Exactly one field is set.
type ExecuteMsg struct {
	ExecuteMsgs     *ExecuteMsgsMsg     `json:"execute_msgs,omitempty"`
	UpdateWhitelist *UpdateWhitelistMsg `json:"update_whitelist,omitempty"`
	UpdateOwner     *UpdateOwnerMsg     `json:"update_owner,omitempty"`
}

// ValidateBasic checks that exactly one operation is set.
func (msg ExecuteMsg) ValidateBasic() error {
	set := 0
	for _, ok := range []bool{msg.ExecuteMsgs != nil, msg.UpdateWhitelist != nil, msg.UpdateOwner != nil} {
		if ok {
			set++
		}
	}

	if set != 1 {
		return sdkerrors.Wrapf(ErrInvalidInput, "expected exactly one operation, got %d", set)
	}

	return nil
}

// ExecuteMsgsMsg is a batch of messages to forward to the host.
type ExecuteMsgsMsg struct {
	Msgs []ExecuteMsgInfo `json:"msgs"`
}

// ExecuteMsgInfo is a single forwarded message and its optional reply callback.
type ExecuteMsgInfo struct {
	Msg           Effect         `json:"msg"`
	ReplyCallback *ReplyCallback `json:"reply_callback,omitempty"`
}

// ReplyCallback asks the proxy to relay the outputs of a forwarded message back
// over IBC once it succeeds.
type ReplyCallback struct {
	CallbackID uint32 `json:"callback_id"`
	IBCPort    string `json:"ibc_port"`
	IBCChannel string `json:"ibc_channel"`
	// Denom is sent back with the callback, as ibc hooks won't run without a coin.
	Denom string `json:"denom"`
	// Receiver defaults to the sender. Otherwise it must be the sender or the
	// intermediary address of the sender over IBCChannel.
	Receiver string `json:"receiver,omitempty"`
}

// ValidateBasic performs a basic check of the callback routing fields.
func (rc ReplyCallback) ValidateBasic() error {
	if err := validate.PacketRoute(rc.IBCPort, rc.IBCChannel); err != nil {
		return sdkerrors.Wrap(ErrInvalidInput, err.Error())
	}

	if err := sdk.ValidateDenom(rc.Denom); err != nil {
		return sdkerrors.Wrapf(ErrInvalidInput, "invalid callback denom: %v", err)
	}

	if rc.Receiver != "" && strings.TrimSpace(rc.Receiver) != rc.Receiver {
		return sdkerrors.Wrapf(ErrInvalidInput, "callback receiver %q contains surrounding whitespace", rc.Receiver)
	}

	return nil
}

// UpdateWhitelistMsg replaces the whitelist. A nil whitelist opens the proxy to everyone.
type UpdateWhitelistMsg struct {
	Whitelist []string `json:"whitelist"`
}

// UpdateOwnerMsg replaces the owner. An empty owner disables owner-only operations for good.
type UpdateOwnerMsg struct {
	Owner string `json:"owner,omitempty"`
}

// ReplyCallbackInfo is a pending reply callback, stored until the forwarded message replies.
type ReplyCallbackInfo struct {
	CallbackID uint32 `json:"callback_id" yaml:"callback_id"`
	Receiver   string `json:"receiver" yaml:"receiver"`
	PortID     string `json:"port_id" yaml:"port_id"`
	ChannelID  string `json:"channel_id" yaml:"channel_id"`
	// Denom to send back, as ibc hooks won't work without a coin sent back.
	Denom string `json:"denom" yaml:"denom"`
}

// NewReplyCallbackInfo creates a new ReplyCallbackInfo instance
func NewReplyCallbackInfo(callbackID uint32, receiver, portID, channelID, denom string) ReplyCallbackInfo {
	return ReplyCallbackInfo{
		CallbackID: callbackID,
		Receiver:   receiver,
		PortID:     portID,
		ChannelID:  channelID,
		Denom:      denom,
	}
}

// ConfigResponse is returned by configuration queries.
type ConfigResponse struct {
	Config Config `json:"config" yaml:"config"`
}

// MustMarshalJSON encodes v, panicking on failure. Used for values of types defined in this package.
func MustMarshalJSON(v interface{}) []byte {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
