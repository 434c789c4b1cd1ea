package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// Instantiate stores the initial proxy configuration and returns the initial
// messages as fire-and-forget dispatches.
func (k Keeper) Instantiate(ctx sdk.Context, msg types.InstantiateMsg) (*types.Response, error) {
	if k.HasConfig(ctx) {
		return nil, sdkerrors.Wrap(types.ErrInvalidInput, "proxy is already instantiated")
	}

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	cfg := types.NewConfig(msg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	k.SetConfig(ctx, cfg)
	EmitConfigUpdatedEvent(ctx, "instantiate", cfg)

	owner := cfg.Owner
	if owner == "" {
		owner = "None"
	}

	res, err := types.NewResponse().
		AddAttribute(types.AttributeKeyAction, "instantiate").
		AddAttribute(types.AttributeKeyContract, k.address).
		AddAttribute(types.AttributeKeyOwner, owner).
		AddJSONAttribute(types.AttributeKeyWhitelist, cfg.Whitelist)
	if err != nil {
		return nil, sdkerrors.Wrap(types.ErrInternalInvariant, err.Error())
	}

	return res.AddMessages(msg.Msgs...), nil
}

// UpdateWhitelist replaces the whitelist. Only the owner may call it; the owner is
// always kept in the resulting whitelist.
func (k Keeper) UpdateWhitelist(ctx sdk.Context, sender string, msg types.UpdateWhitelistMsg) (*types.Response, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if err := types.AuthorizeOwner(cfg, sender); err != nil {
		return nil, err
	}

	for _, account := range msg.Whitelist {
		if err := types.ValidateAddress(account, cfg.ChainPrefix); err != nil {
			return nil, err
		}
	}

	cfg.Whitelist = types.NormalizeWhitelist(msg.Whitelist, cfg.Owner)
	k.SetConfig(ctx, cfg)
	EmitConfigUpdatedEvent(ctx, "update_whitelist", cfg)

	res, err := types.NewResponse().
		AddAttribute(types.AttributeKeyAction, "update_whitelist").
		AddJSONAttribute(types.AttributeKeyWhitelist, cfg.Whitelist)
	if err != nil {
		return nil, sdkerrors.Wrap(types.ErrInternalInvariant, err.Error())
	}

	return res, nil
}

// UpdateOwner replaces the owner. Only the owner may call it; clearing the owner
// disables owner-only operations permanently.
func (k Keeper) UpdateOwner(ctx sdk.Context, sender string, msg types.UpdateOwnerMsg) (*types.Response, error) {
	cfg, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if err := types.AuthorizeOwner(cfg, sender); err != nil {
		return nil, err
	}

	if msg.Owner != "" {
		if err := types.ValidateAddress(msg.Owner, cfg.ChainPrefix); err != nil {
			return nil, err
		}
	}

	cfg.Owner = msg.Owner
	k.SetConfig(ctx, cfg)
	EmitConfigUpdatedEvent(ctx, "update_owner", cfg)

	k.Logger(ctx).Info("proxy owner updated", "previous", sender, "owner", msg.Owner)

	// a cleared owner is reported as null
	var owner *string
	if msg.Owner != "" {
		owner = &msg.Owner
	}

	res, err := types.NewResponse().
		AddAttribute(types.AttributeKeyAction, "update_owner").
		AddJSONAttribute(types.AttributeKeyOwner, owner)
	if err != nil {
		return nil, sdkerrors.Wrap(types.ErrInternalInvariant, err.Error())
	}

	return res, nil
}

// Execute routes an operation submitted by sender to its handler.
func (k Keeper) Execute(ctx sdk.Context, sender string, msg types.ExecuteMsg) (*types.Response, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	switch {
	case msg.ExecuteMsgs != nil:
		return k.ExecuteMsgs(ctx, sender, *msg.ExecuteMsgs)
	case msg.UpdateWhitelist != nil:
		return k.UpdateWhitelist(ctx, sender, *msg.UpdateWhitelist)
	default:
		return k.UpdateOwner(ctx, sender, *msg.UpdateOwner)
	}
}
