package cmd

import (
	transfertypes "github.com/cosmos/ibc-go/v3/modules/apps/transfer/types"
	"github.com/spf13/cobra"
)

const (
	flagDebug      = "debug"
	flagLogFormat  = "log-format"
	flagPrefix     = "prefix"
	flagPort       = "port"
	flagChannel    = "channel"
	flagDenom      = "denom"
	flagSender     = "sender"
	flagData       = "data"
	flagEvents     = "events"
	flagBlockTime  = "block-time"
	flagNoReplies  = "no-replies"
	flagJSONOutput = "json"
)

func prefixFlag(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String(flagPrefix, "neutron", "bech32 prefix of the chain the proxy runs on")
	return cmd
}

func callbackRouteFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String(flagPort, transfertypes.PortID, "port the callback packet is sent over")
	cmd.Flags().String(flagChannel, "channel-0", "channel the callback packet is sent over")
	cmd.Flags().String(flagDenom, "untrn", "denom of the token sent along with the callback")
	return cmd
}

func jsonFlag(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Bool(flagJSONOutput, false, "output using json instead of yaml")
	return cmd
}
