package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

const (
	EventTypeTransfer = "native_transfer"

	AttributeKeyFrom   = "from"
	AttributeKeyTo     = "to"
	AttributeKeyAmount = "amount"
)

func NewTransferEvent(from, to common.Address, amount math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeTransfer,
		sdk.NewAttribute(AttributeKeyFrom, from.Hex()),
		sdk.NewAttribute(AttributeKeyTo, to.Hex()),
		sdk.NewAttribute(AttributeKeyAmount, amount.String()),
	)
}
