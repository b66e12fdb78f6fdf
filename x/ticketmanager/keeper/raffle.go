package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	"github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

// CreateRaffle opens ticket sales for a raffle whose prize has been locked.
// A start time in the past is moved to the current block time.
func (k Keeper) CreateRaffle(
	ctx context.Context,
	caller common.Address,
	raffleID uint64,
	startTime, endTime int64,
	minTicketsThreshold, maxTicketSupply, maxHoldings uint64,
) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}

	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return err
	}
	if r.Status != types.RaffleStatusPrizeLocked {
		return errorsmod.Wrapf(types.ErrPrizeNotLocked, "raffle %d is %s", raffleID, r.Status)
	}

	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if startTime < now {
		startTime = now
	}
	if endTime < startTime+types.MinRaffleDuration {
		return errorsmod.Wrapf(types.ErrRaffleClosingTooSoon, "end %d is less than %ds after start %d", endTime, types.MinRaffleDuration, startTime)
	}
	if maxTicketSupply == 0 {
		return types.ErrRaffleRequiresTicketSupplyCap
	}
	if maxHoldings == 0 {
		return types.ErrRaffleRequiresMaxHoldings
	}
	if minTicketsThreshold > maxTicketSupply {
		return errorsmod.Wrapf(types.ErrRaffleWontDraw, "minimum %d above supply %d", minTicketsThreshold, maxTicketSupply)
	}

	r.Status = types.RaffleStatusIdle
	r.StartTime = startTime
	r.EndTime = endTime
	r.MinTicketsThreshold = minTicketsThreshold
	r.MaxTicketSupply = maxTicketSupply
	r.MaxHoldings = maxHoldings
	if err := k.Raffles.Set(ctx, raffleID, r); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewNewRaffleEvent(raffleID))
	k.Logger().Info("raffle created", "raffle_id", raffleID, "start", startTime, "end", endTime, "supply", maxTicketSupply)
	return nil
}

// ShouldDrawRaffle reports whether raffleID can be drawn now. The returned
// error names the first failed condition.
func (k Keeper) ShouldDrawRaffle(ctx context.Context, raffleID uint64) (bool, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return false, err
	}
	if r.Status != types.RaffleStatusIdle {
		return false, errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is %s", raffleID, r.Status)
	}
	if err := k.checkShouldDraw(ctx, r); err != nil {
		return false, err
	}
	return true, nil
}

// checkShouldDraw requires a sold-out raffle, or an ended one that sold at
// least its minimum.
func (k Keeper) checkShouldDraw(ctx context.Context, r types.Raffle) error {
	supply, err := k.tickets.SupplyOf(ctx, r.ID)
	if err != nil {
		return err
	}
	if supply >= r.MaxTicketSupply {
		return nil
	}
	if sdk.UnwrapSDKContext(ctx).BlockTime().Unix() < r.EndTime {
		return errorsmod.Wrapf(types.ErrRaffleIsStillOpen, "raffle %d ends at %d", r.ID, r.EndTime)
	}
	if supply == 0 {
		return errorsmod.Wrapf(types.ErrNoParticipants, "raffle %d", r.ID)
	}
	if supply < r.MinTicketsThreshold {
		return errorsmod.Wrapf(types.ErrTargetTicketsNotReached, "%d of %d tickets sold", supply, r.MinTicketsThreshold)
	}
	return nil
}

// ShouldCancelRaffle reports whether raffleID can be canceled now.
func (k Keeper) ShouldCancelRaffle(ctx context.Context, raffleID uint64) (bool, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return false, err
	}
	if err := k.checkShouldCancel(ctx, r); err != nil {
		return false, err
	}
	return true, nil
}

// checkShouldCancel allows canceling a raffle never opened, an ended one
// that missed its minimum, or one whose draw request timed out.
func (k Keeper) checkShouldCancel(ctx context.Context, r types.Raffle) error {
	switch r.Status {
	case types.RaffleStatusPrizeLocked:
		return nil
	case types.RaffleStatusIdle:
		if sdk.UnwrapSDKContext(ctx).BlockTime().Unix() < r.EndTime {
			return errorsmod.Wrapf(types.ErrRaffleIsStillOpen, "raffle %d ends at %d", r.ID, r.EndTime)
		}
		supply, err := k.tickets.SupplyOf(ctx, r.ID)
		if err != nil {
			return err
		}
		if supply > 0 && supply >= r.MinTicketsThreshold {
			return errorsmod.Wrapf(types.ErrTargetTicketsReached, "%d tickets sold", supply)
		}
		return nil
	case types.RaffleStatusRequested:
		if !k.requestTimedOut(ctx, r) {
			return errorsmod.Wrapf(types.ErrInvalidRaffle, "draw request %d still pending", r.ChainlinkRequestID)
		}
		return nil
	default:
		return errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is %s", r.ID, r.Status)
	}
}

func (k Keeper) requestTimedOut(ctx context.Context, r types.Raffle) bool {
	return sdk.UnwrapSDKContext(ctx).BlockHeight()-r.RequestedAt > k.vrfTimeout
}

// CancelRaffle tells the prize manager to release the prize and opens
// refunds for the ticket holders. Admin only.
func (k Keeper) CancelRaffle(ctx context.Context, caller common.Address, raffleID uint64) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}

	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return err
	}
	if err := k.checkShouldCancel(ctx, r); err != nil {
		return err
	}

	msgID, err := k.messenger.SendMessage(ctx, r.Origin.Address, r.Origin.ChainSelector, cciptypes.Cancel{RaffleID: raffleID})
	if err != nil {
		return errorsmod.Wrapf(err, "failed to send cancel for raffle %d", raffleID)
	}

	r.Status = types.RaffleStatusCanceled
	if err := k.Raffles.Set(ctx, raffleID, r); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewRaffleCanceledEvent(raffleID, msgID))
	k.Logger().Info("raffle canceled", "raffle_id", raffleID, "message_id", msgID.Hex())
	return nil
}
