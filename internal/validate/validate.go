package validate

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	host "github.com/cosmos/ibc-go/v3/modules/core/24-host"
)

// PacketRoute validates that the portID and channelID a packet is sent over are valid identifiers.
func PacketRoute(portID, channelID string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return sdkerrors.Wrapf(err, "invalid source port ID %s", portID)
	}

	if err := host.ChannelIdentifierValidator(channelID); err != nil {
		return sdkerrors.Wrapf(err, "invalid source channel ID %s", channelID)
	}

	return nil
}
