package types

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"google.golang.org/protobuf/encoding/protowire"
)

// MsgTransferTypeURL is the type url of the fee-annotated ICS-20 transfer message
// understood by the chain the proxy is deployed to.
const MsgTransferTypeURL = "/neutron.transfer.MsgTransfer"

var (
	_ proto.Message = (*Coin)(nil)
	_ proto.Message = (*IbcFee)(nil)
	_ proto.Message = (*MsgTransfer)(nil)
)

// Coin is the protobuf wire form of a token amount.
type Coin struct {
	Denom  string `protobuf:"bytes,1,opt,name=denom,proto3" json:"denom,omitempty"`
	Amount string `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

// IbcFee holds the relayer incentives paid for a packet.
type IbcFee struct {
	RecvFee    []Coin `protobuf:"bytes,1,rep,name=recv_fee,json=recvFee,proto3" json:"recv_fee"`
	AckFee     []Coin `protobuf:"bytes,2,rep,name=ack_fee,json=ackFee,proto3" json:"ack_fee"`
	TimeoutFee []Coin `protobuf:"bytes,3,rep,name=timeout_fee,json=timeoutFee,proto3" json:"timeout_fee"`
}

// MsgTransfer is an ICS-20 transfer carrying a memo and the fees for relaying it.
// Field 6, the timeout height, is never set by the proxy.
type MsgTransfer struct {
	SourcePort       string  `protobuf:"bytes,1,opt,name=source_port,json=sourcePort,proto3" json:"source_port,omitempty"`
	SourceChannel    string  `protobuf:"bytes,2,opt,name=source_channel,json=sourceChannel,proto3" json:"source_channel,omitempty"`
	Token            *Coin   `protobuf:"bytes,3,opt,name=token,proto3" json:"token,omitempty"`
	Sender           string  `protobuf:"bytes,4,opt,name=sender,proto3" json:"sender,omitempty"`
	Receiver         string  `protobuf:"bytes,5,opt,name=receiver,proto3" json:"receiver,omitempty"`
	TimeoutTimestamp uint64  `protobuf:"varint,7,opt,name=timeout_timestamp,json=timeoutTimestamp,proto3" json:"timeout_timestamp,omitempty"`
	Memo             string  `protobuf:"bytes,8,opt,name=memo,proto3" json:"memo,omitempty"`
	Fee              *IbcFee `protobuf:"bytes,9,opt,name=fee,proto3" json:"fee,omitempty"`
}

func (m *Coin) Reset()         { *m = Coin{} }
func (m *Coin) String() string { return proto.CompactTextString(m) }
func (*Coin) ProtoMessage()    {}

// Marshal encodes the coin in protobuf wire format.
func (m *Coin) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Denom)
	b = appendString(b, 2, m.Amount)
	return b, nil
}

// Unmarshal decodes a protobuf encoded coin.
func (m *Coin) Unmarshal(b []byte) error {
	*m = Coin{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Denom)
		case 2:
			return consumeString(typ, b, &m.Amount)
		default:
			return skipField(num, typ, b)
		}
	})
}

func (m *IbcFee) Reset()         { *m = IbcFee{} }
func (m *IbcFee) String() string { return proto.CompactTextString(m) }
func (*IbcFee) ProtoMessage()    {}

// Marshal encodes the fee in protobuf wire format.
func (m *IbcFee) Marshal() ([]byte, error) {
	var b []byte
	for _, fees := range []struct {
		num   protowire.Number
		coins []Coin
	}{{1, m.RecvFee}, {2, m.AckFee}, {3, m.TimeoutFee}} {
		for i := range fees.coins {
			bz, err := fees.coins[i].Marshal()
			if err != nil {
				return nil, err
			}
			b = appendMessage(b, fees.num, bz)
		}
	}
	return b, nil
}

// Unmarshal decodes a protobuf encoded fee.
func (m *IbcFee) Unmarshal(b []byte) error {
	*m = IbcFee{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var target *[]Coin
		switch num {
		case 1:
			target = &m.RecvFee
		case 2:
			target = &m.AckFee
		case 3:
			target = &m.TimeoutFee
		default:
			return skipField(num, typ, b)
		}

		var coin Coin
		n, err := consumeMessage(typ, b, &coin)
		if err != nil {
			return 0, err
		}
		*target = append(*target, coin)
		return n, nil
	})
}

func (m *MsgTransfer) Reset()         { *m = MsgTransfer{} }
func (m *MsgTransfer) String() string { return proto.CompactTextString(m) }
func (*MsgTransfer) ProtoMessage()    {}

// Marshal encodes the transfer in protobuf wire format. Scalar fields holding their
// zero value are omitted, message fields are written whenever they are set.
func (m *MsgTransfer) Marshal() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.SourcePort)
	b = appendString(b, 2, m.SourceChannel)
	if m.Token != nil {
		bz, err := m.Token.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessage(b, 3, bz)
	}
	b = appendString(b, 4, m.Sender)
	b = appendString(b, 5, m.Receiver)
	if m.TimeoutTimestamp != 0 {
		b = protowire.AppendTag(b, 7, protowire.VarintType)
		b = protowire.AppendVarint(b, m.TimeoutTimestamp)
	}
	b = appendString(b, 8, m.Memo)
	if m.Fee != nil {
		bz, err := m.Fee.Marshal()
		if err != nil {
			return nil, err
		}
		b = appendMessage(b, 9, bz)
	}
	return b, nil
}

// Unmarshal decodes a protobuf encoded transfer.
func (m *MsgTransfer) Unmarshal(b []byte) error {
	*m = MsgTransfer{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.SourcePort)
		case 2:
			return consumeString(typ, b, &m.SourceChannel)
		case 3:
			m.Token = &Coin{}
			return consumeMessage(typ, b, m.Token)
		case 4:
			return consumeString(typ, b, &m.Sender)
		case 5:
			return consumeString(typ, b, &m.Receiver)
		case 7:
			if typ != protowire.VarintType {
				return 0, fmt.Errorf("field %d: unexpected wire type %d", num, typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			m.TimeoutTimestamp = v
			return n, nil
		case 8:
			return consumeString(typ, b, &m.Memo)
		case 9:
			m.Fee = &IbcFee{}
			return consumeMessage(typ, b, m.Fee)
		default:
			return skipField(num, typ, b)
		}
	})
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, bz []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, bz)
}

type unmarshaler interface {
	Unmarshal([]byte) error
}

// consumeFields walks every field of an encoded message, handing the bytes following
// each tag to fn. fn returns the number of bytes it consumed.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, target *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, fmt.Errorf("unexpected wire type %d for string field", typ)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*target = v
	return n, nil
}

func consumeMessage(typ protowire.Type, b []byte, target unmarshaler) (int, error) {
	if typ != protowire.BytesType {
		return 0, fmt.Errorf("unexpected wire type %d for message field", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if err := target.Unmarshal(v); err != nil {
		return 0, err
	}
	return n, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}
