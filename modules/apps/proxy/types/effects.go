package types

import (
	"encoding/json"
	"fmt"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// EffectKind is the top level variant of a message forwarded to the host.
type EffectKind string

const (
	EffectKindBank         EffectKind = "bank"
	EffectKindStaking      EffectKind = "staking"
	EffectKindDistribution EffectKind = "distribution"
	EffectKindGov          EffectKind = "gov"
	EffectKindWasm         EffectKind = "wasm"
	EffectKindCustom       EffectKind = "custom"
	EffectKindStargate     EffectKind = "stargate"
	EffectKindIBC          EffectKind = "ibc"

	// EffectKindUnknown is assigned to any variant the proxy does not recognise.
	EffectKindUnknown EffectKind = "unknown"
)

// knownEffectKinds lists the variants the proxy can decode
var knownEffectKinds = map[string]EffectKind{
	string(EffectKindBank):         EffectKindBank,
	string(EffectKindStaking):      EffectKindStaking,
	string(EffectKindDistribution): EffectKindDistribution,
	string(EffectKindGov):          EffectKindGov,
	string(EffectKindWasm):         EffectKindWasm,
	string(EffectKindCustom):       EffectKindCustom,
	string(EffectKindStargate):     EffectKindStargate,
	string(EffectKindIBC):          EffectKindIBC,
}

// Effect is an opaque message forwarded to the host for execution. It is encoded
// as a single-key JSON object, {"<variant>": <body>}. The body is kept verbatim;
// the proxy only inspects it where authorization requires it.
type Effect struct {
	Kind EffectKind
	// Variant is the JSON key the effect was decoded from. It differs from Kind
	// only for unknown variants.
	Variant string
	Body    json.RawMessage
}

// NewEffect returns an effect of the given kind with a JSON encoded body.
func NewEffect(kind EffectKind, body interface{}) (Effect, error) {
	bz, err := json.Marshal(body)
	if err != nil {
		return Effect{}, sdkerrors.Wrapf(ErrInvalidInput, "cannot encode %s message: %v", kind, err)
	}

	return Effect{Kind: kind, Variant: string(kind), Body: bz}, nil
}

// ValidateBasic rejects effects that do not name a variant or carry no body, such as
// the zero value decoded from a batch item without a message.
func (e Effect) ValidateBasic() error {
	if e.Variant == "" || e.Kind == "" {
		return sdkerrors.Wrap(ErrInvalidInput, "message variant cannot be empty")
	}

	if len(e.Body) == 0 {
		return sdkerrors.Wrapf(ErrInvalidInput, "%s message has no body", e.Variant)
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (e Effect) MarshalJSON() ([]byte, error) {
	variant := e.Variant
	if variant == "" {
		variant = string(e.Kind)
	}

	body := e.Body
	if len(body) == 0 {
		body = json.RawMessage("{}")
	}

	return json.Marshal(map[string]json.RawMessage{variant: body})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Effect) UnmarshalJSON(bz []byte) error {
	var variants map[string]json.RawMessage
	if err := json.Unmarshal(bz, &variants); err != nil {
		return err
	}

	if len(variants) != 1 {
		return fmt.Errorf("message must contain exactly one variant, got %d", len(variants))
	}

	for variant, body := range variants {
		kind, ok := knownEffectKinds[variant]
		if !ok {
			kind = EffectKindUnknown
		}

		*e = Effect{Kind: kind, Variant: variant, Body: body}
	}

	return nil
}

// WasmInstantiateMsg is the body of {"wasm":{"instantiate":{...}}}.
type WasmInstantiateMsg struct {
	Admin  *string   `json:"admin"`
	CodeID uint64    `json:"code_id"`
	Msg    []byte    `json:"msg"`
	Funds  sdk.Coins `json:"funds"`
	Label  string    `json:"label"`
}

// WasmInstantiate decodes the effect as a wasm instantiate message. It returns false
// for every other message.
func (e Effect) WasmInstantiate() (*WasmInstantiateMsg, bool) {
	if e.Kind != EffectKindWasm {
		return nil, false
	}

	var wasm map[string]json.RawMessage
	if err := json.Unmarshal(e.Body, &wasm); err != nil || len(wasm) != 1 {
		return nil, false
	}

	body, ok := wasm["instantiate"]
	if !ok {
		return nil, false
	}

	var msg WasmInstantiateMsg
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, false
	}

	return &msg, true
}

// StargateMsg is a protobuf encoded message addressed by its type url.
type StargateMsg struct {
	TypeURL string `json:"type_url"`
	Value   []byte `json:"value"`
}

// NewStargateEffect wraps an encoded protobuf message as a stargate effect.
func NewStargateEffect(typeURL string, value []byte) (Effect, error) {
	return NewEffect(EffectKindStargate, StargateMsg{TypeURL: typeURL, Value: value})
}

// Stargate decodes the effect as a stargate message.
func (e Effect) Stargate() (*StargateMsg, bool) {
	if e.Kind != EffectKindStargate {
		return nil, false
	}

	var msg StargateMsg
	if err := json.Unmarshal(e.Body, &msg); err != nil {
		return nil, false
	}

	return &msg, true
}

// ToAny converts the stargate message into a protobuf Any.
func (m StargateMsg) ToAny() *codectypes.Any {
	return &codectypes.Any{TypeUrl: m.TypeURL, Value: m.Value}
}
