package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeSendRequested   = "ccip_send_requested"
	EventTypeMessageExecuted = "ccip_message_executed"
	EventTypeCounterpartSet  = "ccip_counterpart_set"
	EventTypeExtraArgsSet    = "ccip_extra_args_set"

	AttributeKeyMessageID     = "message_id"
	AttributeKeySequence      = "sequence"
	AttributeKeySourceChain   = "source_chain_selector"
	AttributeKeyDestChain     = "dest_chain_selector"
	AttributeKeySender        = "sender"
	AttributeKeyReceiver      = "receiver"
	AttributeKeyOpcode        = "opcode"
	AttributeKeyCounterpart   = "counterpart"
	AttributeKeyChainSelector = "chain_selector"
	AttributeKeyEnabled       = "enabled"
	AttributeKeyExtraArgs     = "extra_args"
	AttributeKeyData          = "data"
)

// NewSendRequestedEvent describes a message accepted into the outbox.
func NewSendRequestedEvent(m OutboundMessage) (sdk.Event, error) {
	bz, err := json.Marshal(m)
	if err != nil {
		return sdk.Event{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	return sdk.NewEvent(
		EventTypeSendRequested,
		sdk.NewAttribute(AttributeKeyMessageID, m.MessageID.Hex()),
		sdk.NewAttribute(AttributeKeySequence, strconv.FormatUint(m.Sequence, 10)),
		sdk.NewAttribute(AttributeKeyDestChain, strconv.FormatUint(m.DestChainSelector, 10)),
		sdk.NewAttribute(AttributeKeySender, m.Sender.Hex()),
		sdk.NewAttribute(AttributeKeyReceiver, m.Receiver.Hex()),
		sdk.NewAttribute(AttributeKeyData, string(bz)),
	), nil
}

func NewMessageExecutedEvent(msg Any2EVMMessage, receiver string) sdk.Event {
	opcode := "none"
	if len(msg.Data) > 0 {
		opcode = Opcode(msg.Data[0]).String()
	}
	return sdk.NewEvent(
		EventTypeMessageExecuted,
		sdk.NewAttribute(AttributeKeyMessageID, msg.MessageID.Hex()),
		sdk.NewAttribute(AttributeKeySourceChain, strconv.FormatUint(msg.SourceChainSelector, 10)),
		sdk.NewAttribute(AttributeKeyReceiver, receiver),
		sdk.NewAttribute(AttributeKeyOpcode, opcode),
	)
}

func NewCounterpartSetEvent(counterpart string, chainSelector uint64, enabled bool) sdk.Event {
	return sdk.NewEvent(
		EventTypeCounterpartSet,
		sdk.NewAttribute(AttributeKeyCounterpart, counterpart),
		sdk.NewAttribute(AttributeKeyChainSelector, strconv.FormatUint(chainSelector, 10)),
		sdk.NewAttribute(AttributeKeyEnabled, strconv.FormatBool(enabled)),
	)
}

func NewExtraArgsSetEvent(extraArgs string) sdk.Event {
	return sdk.NewEvent(EventTypeExtraArgsSet, sdk.NewAttribute(AttributeKeyExtraArgs, extraArgs))
}
