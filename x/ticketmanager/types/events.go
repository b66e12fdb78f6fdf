package types

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventTypeRafflePrizeLocked = "raffle_prize_locked"
	EventTypeNewRaffle         = "new_raffle"
	EventTypeTicketsBought     = "tickets_bought"
	EventTypeRequestSent       = "request_sent"
	EventTypeRequestFulfilled  = "request_fulfilled"
	EventTypeWinnerDrawn       = "winner_drawn"
	EventTypeInvalidVRFRequest = "invalid_vrf_request"
	EventTypeRaffleCanceled    = "raffle_canceled"
	EventTypePlayerRefund      = "player_refund"
	EventTypeWinnerPropagated  = "winner_propagated"

	AttributeKeyRaffleID      = "raffle_id"
	AttributeKeySender        = "sender"
	AttributeKeyChainSelector = "chain_selector"
	AttributeKeyBuyer         = "buyer"
	AttributeKeyCount         = "count"
	AttributeKeyStart         = "start"
	AttributeKeyValue         = "value"
	AttributeKeyRequestID     = "request_id"
	AttributeKeyRandomWord    = "random_word"
	AttributeKeyWinner        = "winner"
	AttributeKeyTicket        = "ticket"
	AttributeKeyPlayer        = "player"
	AttributeKeyAmount        = "amount"
	AttributeKeyMessageID     = "message_id"
	AttributeKeyReason        = "reason"
)

func u64(v uint64) string { return strconv.FormatUint(v, 10) }

func NewRafflePrizeLockedEvent(raffleID uint64, origin Counterpart) sdk.Event {
	return sdk.NewEvent(
		EventTypeRafflePrizeLocked,
		sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)),
		sdk.NewAttribute(AttributeKeySender, origin.Address.Hex()),
		sdk.NewAttribute(AttributeKeyChainSelector, u64(origin.ChainSelector)),
	)
}

func NewNewRaffleEvent(raffleID uint64) sdk.Event {
	return sdk.NewEvent(EventTypeNewRaffle, sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)))
}

func NewTicketsBoughtEvent(raffleID uint64, buyer common.Address, start, count uint64, value math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeTicketsBought,
		sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)),
		sdk.NewAttribute(AttributeKeyBuyer, buyer.Hex()),
		sdk.NewAttribute(AttributeKeyStart, u64(start)),
		sdk.NewAttribute(AttributeKeyCount, u64(count)),
		sdk.NewAttribute(AttributeKeyValue, value.String()),
	)
}

func NewRequestSentEvent(requestID, raffleID uint64) sdk.Event {
	return sdk.NewEvent(
		EventTypeRequestSent,
		sdk.NewAttribute(AttributeKeyRequestID, u64(requestID)),
		sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)),
	)
}

func NewRequestFulfilledEvent(requestID uint64, randomWord string) sdk.Event {
	return sdk.NewEvent(
		EventTypeRequestFulfilled,
		sdk.NewAttribute(AttributeKeyRequestID, u64(requestID)),
		sdk.NewAttribute(AttributeKeyRandomWord, randomWord),
	)
}

func NewWinnerDrawnEvent(raffleID, ticket uint64, winner common.Address) sdk.Event {
	return sdk.NewEvent(
		EventTypeWinnerDrawn,
		sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)),
		sdk.NewAttribute(AttributeKeyTicket, u64(ticket)),
		sdk.NewAttribute(AttributeKeyWinner, winner.Hex()),
	)
}

func NewInvalidVRFRequestEvent(requestID uint64, reason string) sdk.Event {
	return sdk.NewEvent(
		EventTypeInvalidVRFRequest,
		sdk.NewAttribute(AttributeKeyRequestID, u64(requestID)),
		sdk.NewAttribute(AttributeKeyReason, reason),
	)
}

func NewRaffleCanceledEvent(raffleID uint64, messageID common.Hash) sdk.Event {
	return sdk.NewEvent(
		EventTypeRaffleCanceled,
		sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)),
		sdk.NewAttribute(AttributeKeyMessageID, messageID.Hex()),
	)
}

func NewPlayerRefundEvent(raffleID uint64, player common.Address, amount math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypePlayerRefund,
		sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)),
		sdk.NewAttribute(AttributeKeyPlayer, player.Hex()),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
	)
}

func NewWinnerPropagatedEvent(raffleID uint64, winner common.Address, messageID common.Hash) sdk.Event {
	return sdk.NewEvent(
		EventTypeWinnerPropagated,
		sdk.NewAttribute(AttributeKeyRaffleID, u64(raffleID)),
		sdk.NewAttribute(AttributeKeyWinner, winner.Hex()),
		sdk.NewAttribute(AttributeKeyMessageID, messageID.Hex()),
	)
}
