package types_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

func TestReplyID(t *testing.T) {
	for _, index := range []uint32{0, 1, 3, math.MaxUint32} {
		id := types.NewReplyID(types.ExecuteMsgCallbackReplyKind, index)

		kind, parsed := types.ParseReplyID(id)
		require.Equal(t, types.ExecuteMsgCallbackReplyKind, kind)
		require.Equal(t, index, parsed)
	}

	require.Equal(t, uint64(4294967297), types.NewReplyID(types.ExecuteMsgCallbackReplyKind, 1))

	kind, index := types.ParseReplyID(7)
	require.Zero(t, kind)
	require.Equal(t, uint32(7), index)
}

func TestNewEventsFromABCI(t *testing.T) {
	events := types.NewEventsFromABCI([]abci.Event{
		{
			Type: "transfer",
			Attributes: []abci.EventAttribute{
				{Key: []byte("recipient"), Value: []byte("neutron1abc")},
				{Key: []byte("amount"), Value: []byte("5untrn")},
			},
		},
		{Type: "empty"},
	})

	require.Equal(t, []types.Event{
		{
			Type: "transfer",
			Attributes: []types.Attribute{
				{Key: "recipient", Value: "neutron1abc"},
				{Key: "amount", Value: "5untrn"},
			},
		},
		{Type: "empty", Attributes: []types.Attribute{}},
	}, events)
}

func TestResponse(t *testing.T) {
	effect, err := types.NewEffect(types.EffectKindBank, map[string]string{"burn": "1untrn"})
	require.NoError(t, err)

	res, err := types.NewResponse().
		AddAttribute("action", "test").
		AddAttribute("index", uint32(3)).
		AddMessages(effect).
		AddJSONAttribute("list", []string{"a"})
	require.NoError(t, err)

	require.Equal(t, []types.Attribute{
		{Key: "action", Value: "test"},
		{Key: "index", Value: "3"},
		{Key: "list", Value: `["a"]`},
	}, res.Attributes)
	require.Equal(t, []types.SubMsg{{Msg: effect, ReplyOn: types.ReplyNever}}, res.Messages)
}
