package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventTypePrizeLocked      = "prize_locked"
	EventTypePrizeUnlocked    = "prize_unlocked"
	EventTypeWinnerPropagated = "winner_propagated"
	EventTypePrizeClaimed     = "prize_claimed"

	AttributeKeyRaffleID      = "raffle_id"
	AttributeKeyRaffleType    = "raffle_type"
	AttributeKeyCounterpart   = "counterpart"
	AttributeKeyChainSelector = "chain_selector"
	AttributeKeyMessageID     = "message_id"
	AttributeKeyWinner        = "winner"
)

func NewPrizeLockedEvent(r Raffle, messageID common.Hash) sdk.Event {
	return sdk.NewEvent(
		EventTypePrizeLocked,
		sdk.NewAttribute(AttributeKeyRaffleID, strconv.FormatUint(r.ID, 10)),
		sdk.NewAttribute(AttributeKeyRaffleType, r.Type.String()),
		sdk.NewAttribute(AttributeKeyCounterpart, r.Counterpart.Hex()),
		sdk.NewAttribute(AttributeKeyChainSelector, strconv.FormatUint(r.ChainSelector, 10)),
		sdk.NewAttribute(AttributeKeyMessageID, messageID.Hex()),
	)
}

func NewPrizeUnlockedEvent(raffleID uint64) sdk.Event {
	return sdk.NewEvent(EventTypePrizeUnlocked, sdk.NewAttribute(AttributeKeyRaffleID, strconv.FormatUint(raffleID, 10)))
}

func NewWinnerPropagatedEvent(raffleID uint64, winner common.Address) sdk.Event {
	return sdk.NewEvent(
		EventTypeWinnerPropagated,
		sdk.NewAttribute(AttributeKeyRaffleID, strconv.FormatUint(raffleID, 10)),
		sdk.NewAttribute(AttributeKeyWinner, winner.Hex()),
	)
}

func NewPrizeClaimedEvent(raffleID uint64, winner common.Address) sdk.Event {
	return sdk.NewEvent(
		EventTypePrizeClaimed,
		sdk.NewAttribute(AttributeKeyRaffleID, strconv.FormatUint(raffleID, 10)),
		sdk.NewAttribute(AttributeKeyWinner, winner.Hex()),
	)
}
