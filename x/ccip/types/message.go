package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

// EVMTokenAmount is a token transferred alongside a message.
type EVMTokenAmount struct {
	Token  common.Address `json:"token"`
	Amount math.Int       `json:"amount"`
}

// EVM2AnyMessage is what a sender hands to its local router.
type EVM2AnyMessage struct {
	Receiver     []byte           `json:"receiver"` // abi-encoded destination address
	Data         []byte           `json:"data"`
	TokenAmounts []EVMTokenAmount `json:"token_amounts"`
	FeeToken     common.Address   `json:"fee_token"`
	ExtraArgs    []byte           `json:"extra_args"`
}

// Any2EVMMessage is what the destination router hands to the receiver.
type Any2EVMMessage struct {
	MessageID           common.Hash      `json:"message_id"`
	SourceChainSelector uint64           `json:"source_chain_selector"`
	Sender              []byte           `json:"sender"` // abi-encoded source address
	Data                []byte           `json:"data"`
	DestTokenAmounts    []EVMTokenAmount `json:"dest_token_amounts"`
}

// OutboundMessage is an accepted message waiting in the source router outbox.
type OutboundMessage struct {
	Sequence            uint64         `json:"sequence"`
	MessageID           common.Hash    `json:"message_id"`
	SourceChainSelector uint64         `json:"source_chain_selector"`
	DestChainSelector   uint64         `json:"dest_chain_selector"`
	Sender              common.Address `json:"sender"`
	Receiver            common.Address `json:"receiver"`
	Data                []byte         `json:"data"`
	ExtraArgs           []byte         `json:"extra_args"`
	FeeToken            common.Address `json:"fee_token"`
	Fee                 math.Int       `json:"fee"`
	BlockHeight         int64          `json:"block_height"`
}

// ToAny2EVM converts an outbox entry to its delivered form.
func (m OutboundMessage) ToAny2EVM() Any2EVMMessage {
	return Any2EVMMessage{
		MessageID:           m.MessageID,
		SourceChainSelector: m.SourceChainSelector,
		Sender:              EncodeAddress(m.Sender),
		Data:                m.Data,
	}
}

// Receiver is implemented by contracts that accept cross-chain messages.
// caller is the address invoking the callback and must be the local router.
type Receiver interface {
	CCIPReceive(ctx context.Context, caller common.Address, msg Any2EVMMessage) error
}

// Params configures the router fee.
type Params struct {
	FeeToken   common.Address `json:"fee_token"`
	BaseFee    math.Int       `json:"base_fee"`
	FeePerByte math.Int       `json:"fee_per_byte"`
}

// DefaultParams charges 0.1 LINK plus nothing per byte.
func DefaultParams(feeToken common.Address) Params {
	return Params{
		FeeToken:   feeToken,
		BaseFee:    math.NewIntWithDecimal(1, 17),
		FeePerByte: math.ZeroInt(),
	}
}
