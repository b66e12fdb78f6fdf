package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

var (
	ErrMessageAlreadyExecuted = errorsmod.Register(ModuleName, utils.StateCodeBase+1, "message already executed")

	ErrUnknownOpcode      = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "unknown opcode")
	ErrMalformedPayload   = errorsmod.Register(ModuleName, utils.ValidationCodeBase+2, "malformed payload")
	ErrInvalidAddress     = errorsmod.Register(ModuleName, utils.ValidationCodeBase+3, "invalid encoded address")
	ErrInvalidCounterpart = errorsmod.Register(ModuleName, utils.ValidationCodeBase+4, "counterpart address and chain selector must be set")
	ErrUnsupportedMessage = errorsmod.Register(ModuleName, utils.ValidationCodeBase+5, "message not accepted by receiver")

	ErrInsufficientLinkBalance = errorsmod.Register(ModuleName, utils.ResourceCodeBase+1, "insufficient LINK balance for fees")
	ErrUnsupportedFeeToken     = errorsmod.Register(ModuleName, utils.ResourceCodeBase+2, "unsupported fee token")

	ErrInvalidRouter               = errorsmod.Register(ModuleName, utils.TransportCodeBase+1, "caller is not the router")
	ErrUnauthorizedCCIPSender      = errorsmod.Register(ModuleName, utils.TransportCodeBase+2, "unauthorized ccip sender")
	ErrUnsupportedDestinationChain = errorsmod.Register(ModuleName, utils.TransportCodeBase+3, "unsupported destination chain")
	ErrNoReceiver                  = errorsmod.Register(ModuleName, utils.TransportCodeBase+4, "receiver is not registered")
)
