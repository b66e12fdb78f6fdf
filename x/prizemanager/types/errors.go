package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

var (
	ErrUnauthorizedToClaim = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+1, "caller is not the raffle winner")

	ErrInvalidRaffle   = errorsmod.Register(ModuleName, utils.StateCodeBase+1, "invalid raffle")
	ErrInvalidRaffleId = errorsmod.Register(ModuleName, utils.StateCodeBase+2, "raffle id already used")
	ErrAlreadyClaimed  = errorsmod.Register(ModuleName, utils.StateCodeBase+3, "prize already claimed")
	ErrNFTLocked       = errorsmod.Register(ModuleName, utils.StateCodeBase+4, "nft is locked in a raffle")

	ErrIllegalRaffleId = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "raffle id 0 is reserved")
	ErrInvalidPrize    = errorsmod.Register(ModuleName, utils.ValidationCodeBase+2, "prize is not held by the prize manager")
	ErrInvalidAmount   = errorsmod.Register(ModuleName, utils.ValidationCodeBase+3, "amount must be positive")

	ErrInsufficientBalance = errorsmod.Register(ModuleName, utils.ResourceCodeBase+1, "insufficient unlocked balance")
	ErrETHTransferFail     = errorsmod.Register(ModuleName, utils.ResourceCodeBase+2, "eth transfer failed")
)

// KindOf reports whether err is an authorization, state, validation,
// resource or transport failure.
func KindOf(err error) utils.ErrorKind {
	return utils.KindOf(err)
}
