package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	"github.com/pushchain/push-raffle-node/x/prizemanager/types"
)

var _ cciptypes.Receiver = Keeper{}

// CCIPReceive handles Cancel and WinnerDrawn messages from the ticket chain.
// Both only apply to a LOCKED prize and only from the counterpart the prize
// was announced to, so replays fail with ErrInvalidRaffle.
func (k Keeper) CCIPReceive(ctx context.Context, caller common.Address, msg cciptypes.Any2EVMMessage) error {
	sender, payload, err := k.messenger.ValidateInbound(ctx, caller, msg)
	if err != nil {
		return err
	}

	switch p := payload.(type) {
	case cciptypes.Cancel:
		r, err := k.lockedRaffle(ctx, p.RaffleID, sender, msg.SourceChainSelector)
		if err != nil {
			return err
		}
		return k.cancel(ctx, r)
	case cciptypes.WinnerDrawn:
		r, err := k.lockedRaffle(ctx, p.RaffleID, sender, msg.SourceChainSelector)
		if err != nil {
			return err
		}
		return k.propagateWinner(ctx, r, p.Winner)
	default:
		return errorsmod.Wrapf(cciptypes.ErrUnsupportedMessage, "%s is not accepted by the prize manager", payload.Opcode())
	}
}

func (k Keeper) lockedRaffle(ctx context.Context, raffleID uint64, sender common.Address, chainSelector uint64) (types.Raffle, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return types.Raffle{}, err
	}
	if r.Status != types.PrizeStatusLocked {
		return types.Raffle{}, errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is %s", raffleID, r.Status)
	}
	if sender != r.Counterpart || chainSelector != r.ChainSelector {
		return types.Raffle{}, errorsmod.Wrapf(cciptypes.ErrUnauthorizedCCIPSender,
			"raffle %d was announced to %s on chain %d", raffleID, r.Counterpart.Hex(), r.ChainSelector)
	}
	return r, nil
}

func (k Keeper) cancel(ctx context.Context, r types.Raffle) error {
	if err := k.release(ctx, r); err != nil {
		return err
	}
	r.Status = types.PrizeStatusUnlocked
	if err := k.Raffles.Set(ctx, r.ID, r); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewPrizeUnlockedEvent(r.ID))
	k.Logger().Info("prize unlocked", "raffle_id", r.ID)
	return nil
}

func (k Keeper) propagateWinner(ctx context.Context, r types.Raffle, winner common.Address) error {
	r.Status = types.PrizeStatusWinnerDrawn
	r.Winner = winner
	if err := k.Raffles.Set(ctx, r.ID, r); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewWinnerPropagatedEvent(r.ID, winner))
	k.Logger().Info("winner propagated", "raffle_id", r.ID, "winner", winner.Hex())
	return nil
}
