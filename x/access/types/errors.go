package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

var (
	ErrMissingRole = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+1, "missing role")
	ErrZeroAddress = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "role holder cannot be the zero address")
)
