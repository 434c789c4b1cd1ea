package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// AuthorizeBatch checks that sender may submit a batch under cfg. When no whitelist
// is configured everyone passes.
func AuthorizeBatch(cfg Config, sender string) error {
	if !cfg.IsWhitelisted(sender) {
		return sdkerrors.Wrapf(ErrUnauthorized, "%s is not whitelisted", sender)
	}

	return nil
}

// AuthorizeOwner checks that sender is the configured owner. The whitelist never
// grants owner privileges.
func AuthorizeOwner(cfg Config, sender string) error {
	if !cfg.HasOwner() {
		return sdkerrors.Wrap(ErrUnauthorized, "proxy has no owner")
	}

	if !cfg.IsOwner(sender) {
		return sdkerrors.Wrapf(ErrUnauthorized, "expected owner %s, got %s", cfg.Owner, sender)
	}

	return nil
}

// AuthorizeEffect applies the per message restrictions of cfg to a message forwarded
// by sender. The owner is never restricted.
func AuthorizeEffect(cfg Config, sender string, effect Effect) error {
	if cfg.IsOwner(sender) {
		return nil
	}

	if !cfg.AllowAnyMsg {
		if err := authorizeRestrictedEffect(effect); err != nil {
			return err
		}
	}

	if !cfg.AllowCrossChainMsgs {
		if err := authorizeLocalEffect(effect); err != nil {
			return err
		}
	}

	return nil
}

// authorizeRestrictedEffect only lets contract instantiations without funds through.
func authorizeRestrictedEffect(effect Effect) error {
	instantiate, ok := effect.WasmInstantiate()
	if !ok {
		return sdkerrors.Wrapf(ErrInvalidInput, "message type not allowed: %s", effect.Variant)
	}

	if !instantiate.Funds.Empty() {
		return sdkerrors.Wrapf(ErrInvalidInput, "cannot spend funds: %s", instantiate.Funds)
	}

	return nil
}

// authorizeLocalEffect rejects messages that may leave the chain. Kinds the proxy
// does not recognise are rejected as well.
func authorizeLocalEffect(effect Effect) error {
	switch effect.Kind {
	case EffectKindCustom, EffectKindStargate, EffectKindIBC:
		// custom messages could be cross-chain messages too
		return sdkerrors.Wrapf(ErrInvalidInput, "message type not allowed: %s", effect.Kind)
	case EffectKindBank, EffectKindStaking, EffectKindDistribution, EffectKindWasm, EffectKindGov:
		return nil
	default:
		return sdkerrors.Wrapf(ErrInvalidInput, "message type unknown, potentially not allowed: %s", effect.Variant)
	}
}
