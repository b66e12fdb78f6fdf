package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

var (
	ErrNotNFTOwner              = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+1, "caller is not the token owner")
	ErrNonexistentToken         = errorsmod.Register(ModuleName, utils.StateCodeBase+1, "nonexistent token")
	ErrTokenExists              = errorsmod.Register(ModuleName, utils.StateCodeBase+2, "token already minted")
	ErrInvalidAmount            = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "invalid amount")
	ErrInvalidReceiver          = errorsmod.Register(ModuleName, utils.ValidationCodeBase+2, "invalid receiver")
	ErrInsufficientTokenBalance = errorsmod.Register(ModuleName, utils.ResourceCodeBase+1, "transfer amount exceeds balance")
)
