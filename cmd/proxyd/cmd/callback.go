package cmd

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// encodedCallback is the printed form of a callback transfer.
type encodedCallback struct {
	TypeURL          string `json:"type_url" yaml:"type_url"`
	Value            string `json:"value" yaml:"value"`
	Receiver         string `json:"receiver" yaml:"receiver"`
	SourceChannel    string `json:"source_channel" yaml:"source_channel"`
	TimeoutTimestamp uint64 `json:"timeout_timestamp" yaml:"timeout_timestamp"`
	Fee              string `json:"fee" yaml:"fee"`
	Memo             string `json:"memo" yaml:"memo"`
}

func newEncodedCallback(msg *types.MsgTransfer) (*encodedCallback, error) {
	bz, err := msg.Marshal()
	if err != nil {
		return nil, err
	}

	fee, err := msg.Fee.FeeTotal()
	if err != nil {
		return nil, err
	}

	return &encodedCallback{
		TypeURL:          types.MsgTransferTypeURL,
		Value:            base64.StdEncoding.EncodeToString(bz),
		Receiver:         msg.Receiver,
		SourceChannel:    msg.SourceChannel,
		TimeoutTimestamp: msg.TimeoutTimestamp,
		Fee:              fee.String(),
		Memo:             msg.Memo,
	}, nil
}

func encodeCallbackCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode-callback [receiver] [callback-id]",
		Short: "Encode the transfer relaying a reply callback to receiver",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			callbackID, err := cast.ToUint32E(args[1])
			if err != nil {
				return errors.Wrapf(err, "invalid callback id %s", args[1])
			}

			port, err := cmd.Flags().GetString(flagPort)
			if err != nil {
				return err
			}
			channel, err := cmd.Flags().GetString(flagChannel)
			if err != nil {
				return err
			}
			denom, err := cmd.Flags().GetString(flagDenom)
			if err != nil {
				return err
			}
			sender, err := cmd.Flags().GetString(flagSender)
			if err != nil {
				return err
			}
			data, err := cmd.Flags().GetBytesBase64(flagData)
			if err != nil {
				return err
			}
			blockTime, err := cmd.Flags().GetInt64(flagBlockTime)
			if err != nil {
				return err
			}

			replyCallback := types.ReplyCallback{
				CallbackID: callbackID,
				IBCPort:    port,
				IBCChannel: channel,
				Denom:      denom,
				Receiver:   args[0],
			}
			if err := replyCallback.ValidateBasic(); err != nil {
				return err
			}

			events, err := readEvents(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			if blockTime > 0 {
				now = time.Unix(blockTime, 0)
			}

			info := types.NewReplyCallbackInfo(callbackID, args[0], port, channel, denom)
			msg, err := types.NewCallbackTransfer(info, sender, now, events, data)
			if err != nil {
				return err
			}

			out, err := newEncodedCallback(msg)
			if err != nil {
				return err
			}

			a.Log.Debug("encoded callback transfer",
				zap.Uint32("callback_id", callbackID),
				zap.String("channel", channel),
				zap.Int("events", len(events)),
			)

			asJSON, err := cmd.Flags().GetBool(flagJSONOutput)
			if err != nil {
				return err
			}

			return printOutput(cmd, out, asJSON)
		},
	}

	cmd.Flags().String(flagSender, "", "address the proxy sends the callback as")
	cmd.Flags().BytesBase64(flagData, nil, "base64 encoded data returned by the forwarded message")
	cmd.Flags().String(flagEvents, "", "JSON file holding the events emitted by the forwarded message")
	cmd.Flags().Int64(flagBlockTime, 0, "unix time of the block relaying the callback, defaults to now")
	if err := cmd.MarkFlagRequired(flagSender); err != nil {
		panic(err)
	}

	return jsonFlag(callbackRouteFlags(cmd))
}

func readEvents(cmd *cobra.Command) ([]types.Event, error) {
	file, err := cmd.Flags().GetString(flagEvents)
	if err != nil || file == "" {
		return nil, err
	}

	bz, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read events file %s", file)
	}

	var events []types.Event
	if err := json.Unmarshal(bz, &events); err != nil {
		return nil, errors.Wrapf(err, "failed to decode events file %s", file)
	}

	return events, nil
}
