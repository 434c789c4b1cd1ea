package types

import (
	"encoding/json"
	"fmt"
	"math"

	abci "github.com/tendermint/tendermint/abci/types"
)

// ExecuteMsgCallbackReplyKind tags the replies of forwarded messages that registered a
// reply callback. It occupies the upper 32 bits of a reply id.
const ExecuteMsgCallbackReplyKind uint64 = 1

// MaxBatchLength is the largest batch whose positions fit in a 32 bit correlation index.
const MaxBatchLength uint64 = math.MaxUint32

// NewReplyID packs the reply kind into the upper 32 bits and the correlation index
// into the lower 32 bits.
func NewReplyID(kind uint64, index uint32) uint64 {
	return kind<<32 | uint64(index)
}

// ParseReplyID splits a reply id into its reply kind and correlation index.
func ParseReplyID(id uint64) (kind uint64, index uint32) {
	return id >> 32, uint32(id)
}

// ReplyOn selects which completions of a dispatched message are reported back.
type ReplyOn string

const (
	ReplyNever   ReplyOn = "never"
	ReplySuccess ReplyOn = "success"
)

// SubMsg is a dispatch instruction handed to the host.
type SubMsg struct {
	ID      uint64  `json:"id"`
	Msg     Effect  `json:"msg"`
	ReplyOn ReplyOn `json:"reply_on"`
}

// NewSubMsg returns a fire-and-forget dispatch of msg.
func NewSubMsg(msg Effect) SubMsg {
	return SubMsg{Msg: msg, ReplyOn: ReplyNever}
}

// NewSubMsgReplyOnSuccess returns a dispatch of msg whose successful completion is
// reported back with the given reply id.
func NewSubMsgReplyOnSuccess(msg Effect, id uint64) SubMsg {
	return SubMsg{ID: id, Msg: msg, ReplyOn: ReplySuccess}
}

// Attribute is a key value pair attached to a response or event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is an event emitted by an executed message.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// NewEventsFromABCI converts events emitted by the host into callback events.
func NewEventsFromABCI(abciEvents []abci.Event) []Event {
	events := make([]Event, 0, len(abciEvents))
	for _, ev := range abciEvents {
		attributes := make([]Attribute, 0, len(ev.Attributes))
		for _, attr := range ev.Attributes {
			attributes = append(attributes, Attribute{Key: string(attr.Key), Value: string(attr.Value)})
		}
		events = append(events, Event{Type: ev.Type, Attributes: attributes})
	}
	return events
}

// SubMsgResponse holds the observable outputs of a successfully executed message.
type SubMsgResponse struct {
	Events []Event `json:"events"`
	Data   []byte  `json:"data"`
}

// SubMsgResult is the outcome of a dispatched message; exactly one of Ok and Err is set.
type SubMsgResult struct {
	Ok  *SubMsgResponse `json:"ok,omitempty"`
	Err string          `json:"error,omitempty"`
}

// Reply is the completion notification delivered by the host for a dispatched message.
type Reply struct {
	ID     uint64       `json:"id"`
	Result SubMsgResult `json:"result"`
}

// NewSuccessReply returns a reply reporting a successful completion.
func NewSuccessReply(id uint64, events []Event, data []byte) Reply {
	return Reply{ID: id, Result: SubMsgResult{Ok: &SubMsgResponse{Events: events, Data: data}}}
}

// NewErrorReply returns a reply reporting a failed completion.
func NewErrorReply(id uint64, err string) Reply {
	return Reply{ID: id, Result: SubMsgResult{Err: err}}
}

// Response is the result of a proxy operation: the messages to dispatch, in order,
// and the attributes describing what was done.
type Response struct {
	Messages   []SubMsg    `json:"messages"`
	Attributes []Attribute `json:"attributes"`
}

// NewResponse returns an empty response.
func NewResponse() *Response {
	return &Response{}
}

// AddAttribute appends a key value attribute to the response.
func (r *Response) AddAttribute(key string, value interface{}) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: fmt.Sprint(value)})
	return r
}

// AddJSONAttribute appends the JSON encoding of value as an attribute.
func (r *Response) AddJSONAttribute(key string, value interface{}) (*Response, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return r.AddAttribute(key, string(bz)), nil
}

// AddSubMessages appends dispatch instructions to the response.
func (r *Response) AddSubMessages(msgs ...SubMsg) *Response {
	r.Messages = append(r.Messages, msgs...)
	return r
}

// AddMessages appends fire-and-forget dispatches of msgs to the response.
func (r *Response) AddMessages(msgs ...Effect) *Response {
	for _, msg := range msgs {
		r.Messages = append(r.Messages, NewSubMsg(msg))
	}
	return r
}
