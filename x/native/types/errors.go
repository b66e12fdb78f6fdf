package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

var (
	ErrInvalidAmount     = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "invalid amount")
	ErrInsufficientFunds = errorsmod.Register(ModuleName, utils.ResourceCodeBase+1, "insufficient funds")
	ErrTransferRejected  = errorsmod.Register(ModuleName, utils.ResourceCodeBase+2, "recipient does not accept native transfers")
)
