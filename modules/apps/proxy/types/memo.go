package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const (
	// CallbackTimeout is how long the relayed callback packet stays valid.
	CallbackTimeout = 900 * time.Second

	// CallbackTokenAmount is sent along with every callback packet, since ibc hooks
	// only interpret the memo of a transfer moving a non-zero amount.
	CallbackTokenAmount = "1"

	// FeeDenom is the native fee denomination relayer incentives are paid in.
	FeeDenom = "untrn"

	RecvFeeAmount    = "0"
	AckFeeAmount     = "100000"
	TimeoutFeeAmount = "100000"
)

// ExecuteMsgReplyCallbackMsg reports the outputs of a forwarded message to the
// remote receiver that registered the callback.
type ExecuteMsgReplyCallbackMsg struct {
	CallbackID uint32  `json:"callback_id"`
	Events     []Event `json:"events"`
	Data       []byte  `json:"data"`
}

// ExecuteMsgHook is the message executed by the remote contract receiving a callback.
type ExecuteMsgHook struct {
	ExecuteMsgReplyCallback *ExecuteMsgReplyCallbackMsg `json:"execute_msg_reply_callback,omitempty"`
}

// WasmHookMemo is the memo format understood by the ibc hooks middleware.
type WasmHookMemo struct {
	Wasm WasmHookCall `json:"wasm"`
}

// WasmHookCall names the contract called by ibc hooks and the message it executes.
type WasmHookCall struct {
	Contract string         `json:"contract"`
	Msg      ExecuteMsgHook `json:"msg"`
}

// NewCallbackMemo returns the memo instructing the ibc hooks middleware of the
// receiving chain to call receiver with the reply callback.
func NewCallbackMemo(receiver string, callbackID uint32, events []Event, data []byte) (string, error) {
	// the receiving contract rejects null lists
	relayed := make([]Event, len(events))
	for i, event := range events {
		relayed[i] = event
		if relayed[i].Attributes == nil {
			relayed[i].Attributes = []Attribute{}
		}
	}

	memo := WasmHookMemo{
		Wasm: WasmHookCall{
			Contract: receiver,
			Msg: ExecuteMsgHook{
				ExecuteMsgReplyCallback: &ExecuteMsgReplyCallbackMsg{
					CallbackID: callbackID,
					Events:     relayed,
					Data:       data,
				},
			},
		},
	}

	// event attributes are relayed verbatim, html characters included
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(memo); err != nil {
		return "", sdkerrors.Wrapf(ErrInternalInvariant, "cannot encode callback memo: %v", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DefaultCallbackFee returns the fixed relayer incentives attached to callback packets.
func DefaultCallbackFee() *IbcFee {
	return &IbcFee{
		RecvFee:    []Coin{{Denom: FeeDenom, Amount: RecvFeeAmount}},
		AckFee:     []Coin{{Denom: FeeDenom, Amount: AckFeeAmount}},
		TimeoutFee: []Coin{{Denom: FeeDenom, Amount: TimeoutFeeAmount}},
	}
}

// NewCallbackTransfer builds the transfer relaying a reply callback from sender to
// the receiver registered in info. The packet times out CallbackTimeout after blockTime.
func NewCallbackTransfer(
	info ReplyCallbackInfo, sender string, blockTime time.Time, events []Event, data []byte,
) (*MsgTransfer, error) {
	memo, err := NewCallbackMemo(info.Receiver, info.CallbackID, events, data)
	if err != nil {
		return nil, err
	}

	return &MsgTransfer{
		SourcePort:    info.PortID,
		SourceChannel: info.ChannelID,
		Token: &Coin{
			Denom:  info.Denom,
			Amount: CallbackTokenAmount,
		},
		Sender:           sender,
		Receiver:         info.Receiver,
		TimeoutTimestamp: uint64(blockTime.Add(CallbackTimeout).UnixNano()),
		Memo:             memo,
		Fee:              DefaultCallbackFee(),
	}, nil
}

// FeeTotal returns the sum of every fee as sdk coins.
func (m IbcFee) FeeTotal() (sdk.Coins, error) {
	total := sdk.NewCoins()
	for _, fees := range [][]Coin{m.RecvFee, m.AckFee, m.TimeoutFee} {
		for _, fee := range fees {
			amount, ok := sdk.NewIntFromString(fee.Amount)
			if !ok {
				return nil, sdkerrors.Wrapf(sdkerrors.ErrInvalidCoins, "invalid fee amount %s", fee.Amount)
			}
			total = total.Add(sdk.NewCoin(fee.Denom, amount))
		}
	}
	return total, nil
}
