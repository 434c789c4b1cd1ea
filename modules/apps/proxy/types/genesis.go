package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IndexedReplyCallback is a pending reply callback together with its correlation index.
type IndexedReplyCallback struct {
	Index    uint32            `json:"index" yaml:"index"`
	Callback ReplyCallbackInfo `json:"callback" yaml:"callback"`
}

// GenesisState is the ibc proxy state exported and imported at genesis.
type GenesisState struct {
	Config            Config                 `json:"config" yaml:"config"`
	ActiveCallbacks   []IndexedReplyCallback `json:"active_callbacks" yaml:"active_callbacks"`
	NextCallbackIndex uint32                 `json:"next_callback_index" yaml:"next_callback_index"`
}

// NewGenesisState creates a new ibc proxy GenesisState instance.
func NewGenesisState(config Config, activeCallbacks []IndexedReplyCallback, nextCallbackIndex uint32) *GenesisState {
	return &GenesisState{
		Config:            config,
		ActiveCallbacks:   activeCallbacks,
		NextCallbackIndex: nextCallbackIndex,
	}
}

// DefaultGenesisState returns a GenesisState with an open, unowned proxy for the cosmos prefix.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Config: Config{
			AllowAnyMsg: true,
			ChainPrefix: "cosmos",
		},
	}
}

// Validate performs basic genesis state validation returning an error upon any failure.
func (gs GenesisState) Validate() error {
	if err := gs.Config.Validate(); err != nil {
		return err
	}

	seen := make(map[uint32]bool, len(gs.ActiveCallbacks))
	for _, cb := range gs.ActiveCallbacks {
		if seen[cb.Index] {
			return sdkerrors.Wrap(ErrInvalidInput, fmt.Sprintf("duplicate reply callback index %d", cb.Index))
		}
		seen[cb.Index] = true

		if err := validateCallbackInfo(cb.Callback); err != nil {
			return sdkerrors.Wrapf(err, "reply callback %d", cb.Index)
		}
	}

	return nil
}

func validateCallbackInfo(info ReplyCallbackInfo) error {
	rc := ReplyCallback{
		CallbackID: info.CallbackID,
		IBCPort:    info.PortID,
		IBCChannel: info.ChannelID,
		Denom:      info.Denom,
		Receiver:   info.Receiver,
	}
	if err := rc.ValidateBasic(); err != nil {
		return err
	}

	if info.Receiver == "" {
		return sdkerrors.Wrap(ErrInvalidInput, "callback receiver cannot be empty")
	}

	return nil
}
