package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

var (
	ErrNotTicketManager              = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+1, "caller is not the ticket manager")
	ErrCallerNotContractOwner        = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+2, "caller is not the contract owner")
	ErrInexistentTicket              = errorsmod.Register(ModuleName, utils.StateCodeBase+1, "ticket does not exist")
	ErrNotImplemented                = errorsmod.Register(ModuleName, utils.StateCodeBase+2, "not implemented")
	ErrTransferToAddressZero         = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "transfer to the zero address")
	ErrInvalidTicketCount            = errorsmod.Register(ModuleName, utils.ValidationCodeBase+2, "invalid ticket count")
	ErrInconsistentParametersLengths = errorsmod.Register(ModuleName, utils.ValidationCodeBase+3, "inconsistent parameters lengths")
	ErrTransferRejected              = errorsmod.Register(ModuleName, utils.ResourceCodeBase+1, "receiver does not accept tickets")
)
