package types

// ibc proxy events
const (
	EventTypeForward            = "proxy_forward"
	EventTypeCallbackRegistered = "proxy_callback_registered"
	EventTypeReplyCallback      = "proxy_reply_callback"
	EventTypeCallbackExpired    = "proxy_callback_expired"
	EventTypeConfigUpdated      = "proxy_config_updated"

	AttributeKeySender     = "sender"
	AttributeKeyMsgCount   = "msg_count"
	AttributeKeyIndex      = "callback_index"
	AttributeKeyCallbackID = "callback_id"
	AttributeKeyReceiver   = "receiver"
	AttributeKeyPortID     = "port_id"
	AttributeKeyChannelID  = "channel_id"
	AttributeKeyDenom      = "denom"
	AttributeKeyReplyID    = "reply_id"
	AttributeKeyFee        = "fee"
	AttributeKeyOwner      = "owner"
	AttributeKeyWhitelist  = "whitelist"
	AttributeKeyAction     = "action"
	AttributeValueCategory = ModuleName
	AttributeKeyContract   = "contract_addr"
	AttributeKeyTimeout    = "timeout_timestamp"
	AttributeKeyBatchStart = "batch_start"
)
