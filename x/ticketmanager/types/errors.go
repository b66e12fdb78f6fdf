package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/push-raffle-node/utils"
)

// authorization
var (
	ErrUnauthorized              = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+1, "coupon not signed by an authorized signer")
	ErrOnlyCoordinatorCanFulfill = errorsmod.Register(ModuleName, utils.AuthorizationCodeBase+2, "only the coordinator can fulfill")
)

// state
var (
	ErrInvalidRaffle           = errorsmod.Register(ModuleName, utils.StateCodeBase+1, "invalid raffle")
	ErrInvalidRaffleStatus     = errorsmod.Register(ModuleName, utils.StateCodeBase+2, "invalid raffle status")
	ErrPrizeNotLocked          = errorsmod.Register(ModuleName, utils.StateCodeBase+3, "prize not locked")
	ErrRaffleHasNotStarted     = errorsmod.Register(ModuleName, utils.StateCodeBase+4, "raffle has not started")
	ErrRaffleHasEnded          = errorsmod.Register(ModuleName, utils.StateCodeBase+5, "raffle has ended")
	ErrRaffleIsStillOpen       = errorsmod.Register(ModuleName, utils.StateCodeBase+6, "raffle is still open")
	ErrNoParticipants          = errorsmod.Register(ModuleName, utils.StateCodeBase+7, "raffle has no participants")
	ErrTargetTicketsNotReached = errorsmod.Register(ModuleName, utils.StateCodeBase+8, "minimum tickets not reached")
	ErrTargetTicketsReached    = errorsmod.Register(ModuleName, utils.StateCodeBase+9, "minimum tickets reached")
	ErrRaffleNotFulfilled      = errorsmod.Register(ModuleName, utils.StateCodeBase+10, "raffle winner not drawn")
	ErrRequestNotFound         = errorsmod.Register(ModuleName, utils.StateCodeBase+11, "randomness request not found")
	ErrPlayerAlreadyRefunded   = errorsmod.Register(ModuleName, utils.StateCodeBase+12, "player already refunded")
)

// validation
var (
	ErrInvalidTicketCount            = errorsmod.Register(ModuleName, utils.ValidationCodeBase+1, "invalid ticket count")
	ErrMaxTicketExceed               = errorsmod.Register(ModuleName, utils.ValidationCodeBase+2, "ticket count above raffle supply")
	ErrTooManyTickets                = errorsmod.Register(ModuleName, utils.ValidationCodeBase+3, "too many tickets")
	ErrExpiredCoupon                 = errorsmod.Register(ModuleName, utils.ValidationCodeBase+4, "coupon expired")
	ErrRaffleClosingTooSoon          = errorsmod.Register(ModuleName, utils.ValidationCodeBase+5, "raffle closing too soon")
	ErrRaffleRequiresTicketSupplyCap = errorsmod.Register(ModuleName, utils.ValidationCodeBase+6, "raffle requires a ticket supply cap")
	ErrRaffleRequiresMaxHoldings     = errorsmod.Register(ModuleName, utils.ValidationCodeBase+7, "raffle requires max holdings")
	ErrRaffleWontDraw                = errorsmod.Register(ModuleName, utils.ValidationCodeBase+8, "minimum tickets above supply cap")
	ErrInvalidPayment                = errorsmod.Register(ModuleName, utils.ValidationCodeBase+9, "invalid payment")
	ErrMissingCounterpart            = errorsmod.Register(ModuleName, utils.ValidationCodeBase+10, "counterpart address and chain selector required")
	ErrNotRaffleOrigin               = errorsmod.Register(ModuleName, utils.ValidationCodeBase+11, "target is not the prize manager that locked the raffle")
)

// resource
var (
	ErrNothingToSend   = errorsmod.Register(ModuleName, utils.ResourceCodeBase+1, "nothing to send")
	ErrETHTransferFail = errorsmod.Register(ModuleName, utils.ResourceCodeBase+2, "eth transfer failed")
)

// KindOf reports whether err is an authorization, state, validation,
// resource or transport failure.
func KindOf(err error) utils.ErrorKind {
	return utils.KindOf(err)
}
