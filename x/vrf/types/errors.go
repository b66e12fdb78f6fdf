package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

var (
	ErrInvalidConsumer      = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+1, "consumer not registered on subscription")
	ErrMustBeSubOwner       = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+2, "caller is not the subscription owner")
	ErrInvalidSubscription  = errorsmod.Register(ModuleName, utils.StateCodeBase+1, "invalid subscription")
	ErrRequestNotFound      = errorsmod.Register(ModuleName, utils.StateCodeBase+2, "request not found")
	ErrNotConfirmed         = errorsmod.Register(ModuleName, utils.StateCodeBase+3, "request not confirmed yet")
	ErrInvalidConfirmations = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "invalid request confirmations")
	ErrInvalidNumWords      = errorsmod.Register(ModuleName, utils.ValidationCodeBase+2, "invalid number of words")
	ErrWrongWordCount       = errorsmod.Register(ModuleName, utils.ValidationCodeBase+3, "fulfillment word count mismatch")
	ErrGasLimitTooBig       = errorsmod.Register(ModuleName, utils.ValidationCodeBase+4, "callback gas limit too big")
)
