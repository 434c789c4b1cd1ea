package types

import (
	"strings"

	"github.com/cosmos/cosmos-sdk/types/bech32"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-proxy/internal/collections"
)

// Config is the singleton proxy configuration. An empty Owner disables every
// owner-only operation. A nil Whitelist lets anyone submit batches, while a
// non-nil one, even an empty one, restricts submission to its members.
type Config struct {
	Owner               string   `json:"owner,omitempty" yaml:"owner,omitempty"`
	Whitelist           []string `json:"whitelist" yaml:"whitelist"`
	AllowAnyMsg         bool     `json:"allow_any_msg" yaml:"allow_any_msg"`
	AllowCrossChainMsgs bool     `json:"allow_cross_chain_msgs" yaml:"allow_cross_chain_msgs"`
	// ChainPrefix is the bech32 prefix of the chain the proxy runs on.
	ChainPrefix string `json:"chain_prefix" yaml:"chain_prefix"`
}

// InstantiateMsg bootstraps the proxy configuration.
type InstantiateMsg struct {
	// AllowCrossChainMsgs blocks non-owners from forwarding cross-chain messages
	// when false, mainly to prevent fake reports of the proxy's callbacks.
	AllowCrossChainMsgs bool `json:"allow_cross_chain_msgs"`
	// AllowAnyMsg defaults to true when unset.
	AllowAnyMsg *bool    `json:"allow_any_msg,omitempty"`
	ChainPrefix string   `json:"chain_prefix"`
	Owner       string   `json:"owner,omitempty"`
	Whitelist   []string `json:"whitelist"`
	// Msgs are dispatched fire-and-forget once the configuration is stored.
	Msgs []Effect `json:"msgs,omitempty"`
}

// ValidateBasic checks the initial messages are well formed.
func (msg InstantiateMsg) ValidateBasic() error {
	for i, effect := range msg.Msgs {
		if err := effect.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "initial message %d", i)
		}
	}

	return nil
}

// NewConfig builds the configuration described by an instantiate message. When
// no whitelist is given but an owner is, the whitelist becomes the owner alone.
func NewConfig(msg InstantiateMsg) Config {
	allowAnyMsg := true
	if msg.AllowAnyMsg != nil {
		allowAnyMsg = *msg.AllowAnyMsg
	}

	whitelist := msg.Whitelist
	if whitelist == nil && msg.Owner != "" {
		whitelist = []string{}
	}

	return Config{
		Owner:               msg.Owner,
		Whitelist:           NormalizeWhitelist(whitelist, msg.Owner),
		AllowAnyMsg:         allowAnyMsg,
		AllowCrossChainMsgs: msg.AllowCrossChainMsgs,
		ChainPrefix:         msg.ChainPrefix,
	}
}

// NormalizeWhitelist appends the owner, if any, to accounts and removes duplicates.
// A nil whitelist stays nil.
func NormalizeWhitelist(accounts []string, owner string) []string {
	if accounts == nil {
		return nil
	}

	whitelist := make([]string, 0, len(accounts)+1)
	whitelist = append(whitelist, accounts...)
	if owner != "" {
		whitelist = append(whitelist, owner)
	}

	return collections.Dedup(whitelist)
}

// HasOwner reports whether owner-only operations are enabled.
func (c Config) HasOwner() bool {
	return c.Owner != ""
}

// IsOwner reports whether sender is the configured owner.
func (c Config) IsOwner(sender string) bool {
	return c.HasOwner() && c.Owner == sender
}

// HasWhitelist reports whether batch submission is restricted.
func (c Config) HasWhitelist() bool {
	return c.Whitelist != nil
}

// IsWhitelisted reports whether sender may submit batches.
func (c Config) IsWhitelisted(sender string) bool {
	return !c.HasWhitelist() || collections.Contains(sender, c.Whitelist)
}

// Validate performs a basic validation of the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ChainPrefix) == "" {
		return sdkerrors.Wrap(ErrInvalidInput, "chain prefix cannot be blank")
	}

	if c.HasOwner() {
		if err := ValidateAddress(c.Owner, c.ChainPrefix); err != nil {
			return sdkerrors.Wrap(err, "invalid owner")
		}
	}

	for _, account := range c.Whitelist {
		if err := ValidateAddress(account, c.ChainPrefix); err != nil {
			return sdkerrors.Wrap(err, "invalid whitelist entry")
		}
	}

	if len(collections.Dedup(c.Whitelist)) != len(c.Whitelist) {
		return sdkerrors.Wrap(ErrInvalidInput, "whitelist contains duplicate accounts")
	}

	return nil
}

// ValidateAddress checks that address is a bech32 address with the given prefix.
func ValidateAddress(address, prefix string) error {
	hrp, bz, err := bech32.DecodeAndConvert(address)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidInput, "invalid address %s: %v", address, err)
	}

	if hrp != prefix {
		return sdkerrors.Wrapf(ErrInvalidInput, "invalid address %s: expected prefix %s, got %s", address, prefix, hrp)
	}

	if len(bz) == 0 {
		return sdkerrors.Wrapf(ErrInvalidInput, "invalid address %s: empty address bytes", address)
	}

	return nil
}
