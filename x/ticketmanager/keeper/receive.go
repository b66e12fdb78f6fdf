package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	"github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

var _ cciptypes.Receiver = Keeper{}

// CCIPReceive records a PrizeLocked notification, unblocking raffle creation.
// The sender becomes the raffle origin, where Cancel and WinnerDrawn go back.
func (k Keeper) CCIPReceive(ctx context.Context, caller common.Address, msg cciptypes.Any2EVMMessage) error {
	sender, payload, err := k.messenger.ValidateInbound(ctx, caller, msg)
	if err != nil {
		return err
	}
	locked, ok := payload.(cciptypes.PrizeLocked)
	if !ok {
		return errorsmod.Wrapf(cciptypes.ErrUnsupportedMessage, "%s is not accepted by the ticket manager", payload.Opcode())
	}

	r, err := k.GetRaffle(ctx, locked.RaffleID)
	if err != nil {
		return err
	}
	if r.Status != types.RaffleStatusNone {
		return errorsmod.Wrapf(types.ErrInvalidRaffleStatus, "raffle %d is %s", locked.RaffleID, r.Status)
	}

	r = types.Raffle{
		ID:          locked.RaffleID,
		Status:      types.RaffleStatusPrizeLocked,
		TotalRaised: math.ZeroInt(),
		Origin:      types.Counterpart{Address: sender, ChainSelector: msg.SourceChainSelector},
	}
	if err := k.Raffles.Set(ctx, r.ID, r); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewRafflePrizeLockedEvent(r.ID, r.Origin))
	k.Logger().Info("raffle prize locked", "raffle_id", r.ID, "origin", sender.Hex())
	return nil
}
