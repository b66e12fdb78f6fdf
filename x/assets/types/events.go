package types

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventTypeTokenTransfer = "token_transfer"
	EventTypeNFTTransfer   = "nft_transfer"

	AttributeKeyToken   = "token"
	AttributeKeyFrom    = "from"
	AttributeKeyTo      = "to"
	AttributeKeyAmount  = "amount"
	AttributeKeyTokenID = "token_id"
)

func NewTokenTransferEvent(token, from, to common.Address, amount math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeTokenTransfer,
		sdk.NewAttribute(AttributeKeyToken, token.Hex()),
		sdk.NewAttribute(AttributeKeyFrom, from.Hex()),
		sdk.NewAttribute(AttributeKeyTo, to.Hex()),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
	)
}

func NewNFTTransferEvent(collection, from, to common.Address, tokenID uint64) sdk.Event {
	return sdk.NewEvent(
		EventTypeNFTTransfer,
		sdk.NewAttribute(AttributeKeyToken, collection.Hex()),
		sdk.NewAttribute(AttributeKeyFrom, from.Hex()),
		sdk.NewAttribute(AttributeKeyTo, to.Hex()),
		sdk.NewAttribute(AttributeKeyTokenID, strconv.FormatUint(tokenID, 10)),
	)
}
