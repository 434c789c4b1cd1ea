package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

func deriveIntermediaryCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive-intermediary [channel] [original-sender]",
		Short: "Print the address ibc hooks execute as for a remote sender calling in over a channel",
		Long: `Print the intermediary address the ibc hooks middleware executes as when
original-sender calls the proxy over channel. A reply callback may name this
address as its receiver.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := cmd.Flags().GetString(flagPrefix)
			if err != nil {
				return err
			}

			addr, err := types.DeriveIntermediateSender(args[0], args[1], prefix)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}

	return prefixFlag(cmd)
}
