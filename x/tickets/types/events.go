package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventTypeNewTicket            = "new_ticket"
	EventTypeTransferSingle       = "transfer_single"
	EventTypeURISet               = "uri_set"
	EventTypeOwnershipTransferred = "ownership_transferred"

	AttributeKeyRaffleID = "raffle_id"
	AttributeKeyStart    = "start"
	AttributeKeyCount    = "count"
	AttributeKeyOwner    = "owner"
	AttributeKeyOperator = "operator"
	AttributeKeyFrom     = "from"
	AttributeKeyTo       = "to"
	AttributeKeyValue    = "value"
	AttributeKeyURI      = "uri"
	AttributeKeyPrevious = "previous_owner"
)

func NewNewTicketEvent(raffleID, start, count uint64, owner common.Address) sdk.Event {
	return sdk.NewEvent(
		EventTypeNewTicket,
		sdk.NewAttribute(AttributeKeyRaffleID, strconv.FormatUint(raffleID, 10)),
		sdk.NewAttribute(AttributeKeyStart, strconv.FormatUint(start, 10)),
		sdk.NewAttribute(AttributeKeyCount, strconv.FormatUint(count, 10)),
		sdk.NewAttribute(AttributeKeyOwner, owner.Hex()),
	)
}

func NewTransferSingleEvent(operator, from, to common.Address, raffleID, value uint64) sdk.Event {
	return sdk.NewEvent(
		EventTypeTransferSingle,
		sdk.NewAttribute(AttributeKeyOperator, operator.Hex()),
		sdk.NewAttribute(AttributeKeyFrom, from.Hex()),
		sdk.NewAttribute(AttributeKeyTo, to.Hex()),
		sdk.NewAttribute(AttributeKeyRaffleID, strconv.FormatUint(raffleID, 10)),
		sdk.NewAttribute(AttributeKeyValue, strconv.FormatUint(value, 10)),
	)
}

func NewURISetEvent(uri string) sdk.Event {
	return sdk.NewEvent(EventTypeURISet, sdk.NewAttribute(AttributeKeyURI, uri))
}

func NewOwnershipTransferredEvent(previous, owner common.Address) sdk.Event {
	return sdk.NewEvent(
		EventTypeOwnershipTransferred,
		sdk.NewAttribute(AttributeKeyPrevious, previous.Hex()),
		sdk.NewAttribute(AttributeKeyOwner, owner.Hex()),
	)
}
