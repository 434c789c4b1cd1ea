package types_test

import (
	"encoding/json"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

func TestEffectUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name       string
		json       string
		expKind    types.EffectKind
		expVariant string
		expPass    bool
	}{
		{"bank", `{"bank":{"send":{"to_address":"a","amount":[]}}}`, types.EffectKindBank, "bank", true},
		{"stargate", `{"stargate":{"type_url":"/x","value":""}}`, types.EffectKindStargate, "stargate", true},
		{"unknown variant", `{"teleport":{}}`, types.EffectKindUnknown, "teleport", true},
		{"two variants", `{"bank":{},"wasm":{}}`, "", "", false},
		{"no variant", `{}`, "", "", false},
		{"not an object", `"bank"`, "", "", false},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			var effect types.Effect
			err := json.Unmarshal([]byte(tc.json), &effect)

			if tc.expPass {
				require.NoError(t, err)
				require.Equal(t, tc.expKind, effect.Kind)
				require.Equal(t, tc.expVariant, effect.Variant)

				// the original encoding is kept verbatim
				bz, err := json.Marshal(effect)
				require.NoError(t, err)
				require.JSONEq(t, tc.json, string(bz))
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestEffectValidateBasic(t *testing.T) {
	bank, err := types.NewEffect(types.EffectKindBank, map[string]interface{}{"send": map[string]interface{}{}})
	require.NoError(t, err)
	require.NoError(t, bank.ValidateBasic())

	testCases := []struct {
		name   string
		effect types.Effect
	}{
		{"zero value", types.Effect{}},
		{"missing variant", types.Effect{Kind: types.EffectKindBank, Body: []byte(`{}`)}},
		{"missing body", types.Effect{Kind: types.EffectKindBank, Variant: "bank"}},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.effect.ValidateBasic(), types.ErrInvalidInput)
		})
	}
}

func TestEffectWasmInstantiate(t *testing.T) {
	effect, err := types.NewEffect(types.EffectKindWasm, map[string]interface{}{
		"instantiate": types.WasmInstantiateMsg{
			CodeID: 3,
			Msg:    []byte(`{"count":0}`),
			Funds:  sdk.NewCoins(sdk.NewInt64Coin("untrn", 10)),
			Label:  "counter",
		},
	})
	require.NoError(t, err)

	instantiate, ok := effect.WasmInstantiate()
	require.True(t, ok)
	require.Equal(t, uint64(3), instantiate.CodeID)
	require.Equal(t, "10untrn", instantiate.Funds.String())

	execute, err := types.NewEffect(types.EffectKindWasm, map[string]interface{}{"execute": map[string]string{}})
	require.NoError(t, err)
	_, ok = execute.WasmInstantiate()
	require.False(t, ok)

	bank, err := types.NewEffect(types.EffectKindBank, map[string]interface{}{"instantiate": map[string]string{}})
	require.NoError(t, err)
	_, ok = bank.WasmInstantiate()
	require.False(t, ok)
}

func TestEffectStargate(t *testing.T) {
	effect, err := types.NewStargateEffect(types.MsgTransferTypeURL, []byte{0x0a, 0x01})
	require.NoError(t, err)

	msg, ok := effect.Stargate()
	require.True(t, ok)
	require.Equal(t, types.MsgTransferTypeURL, msg.TypeURL)
	require.Equal(t, []byte{0x0a, 0x01}, msg.Value)

	protoAny := msg.ToAny()
	require.Equal(t, types.MsgTransferTypeURL, protoAny.TypeUrl)
	require.Equal(t, msg.Value, protoAny.Value)
}
