package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	"github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

// DrawWinner asks the coordinator for one random word for raffleID. A
// request left unanswered for longer than the timeout can be re-issued.
// Admin only.
func (k Keeper) DrawWinner(ctx context.Context, caller common.Address, raffleID uint64) (uint64, error) {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return 0, err
	}

	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return 0, err
	}
	switch {
	case r.Status == types.RaffleStatusIdle:
	case r.Status == types.RaffleStatusRequested && k.requestTimedOut(ctx, r):
		k.Logger().Info("re-issuing timed out draw request", "raffle_id", raffleID, "request_id", r.ChainlinkRequestID)
	default:
		return 0, errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is %s", raffleID, r.Status)
	}
	if err := k.checkShouldDraw(ctx, r); err != nil {
		return 0, err
	}

	cfg, err := k.VRFConfig.Get(ctx)
	if err != nil {
		return 0, err
	}
	requestID, err := k.coordinator.RequestRandomWords(
		ctx,
		k.address,
		cfg.KeyHash,
		cfg.SubscriptionID,
		cfg.RequestConfirmations,
		cfg.CallbackGasLimit,
		1,
	)
	if err != nil {
		return 0, errorsmod.Wrapf(err, "failed to request randomness for raffle %d", raffleID)
	}

	if err := k.Requests.Set(ctx, requestID, types.RequestStatus{RaffleID: raffleID}); err != nil {
		return 0, err
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	r.Status = types.RaffleStatusRequested
	r.ChainlinkRequestID = requestID
	r.RequestedAt = sdkCtx.BlockHeight()
	if err := k.Raffles.Set(ctx, raffleID, r); err != nil {
		return 0, err
	}

	sdkCtx.EventManager().EmitEvent(types.NewRequestSentEvent(requestID, raffleID))
	k.Logger().Info("draw requested", "raffle_id", raffleID, "request_id", requestID)
	return requestID, nil
}

// RawFulfillRandomWords is the coordinator callback. Requests it cannot use
// are reported with an event instead of an error so the delivery of other
// requests is never blocked.
func (k Keeper) RawFulfillRandomWords(ctx context.Context, caller common.Address, requestID uint64, words []*uint256.Int) error {
	if caller != k.coordinator.Address() {
		return errorsmod.Wrapf(types.ErrOnlyCoordinatorCanFulfill, "caller %s", caller.Hex())
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	invalid := func(reason string) error {
		sdkCtx.EventManager().EmitEvent(types.NewInvalidVRFRequestEvent(requestID, reason))
		k.Logger().Warn("ignoring randomness fulfillment", "request_id", requestID, "reason", reason)
		return nil
	}

	req, err := k.Requests.Get(ctx, requestID)
	if err != nil {
		return invalid("unknown request")
	}
	if req.Fulfilled {
		return invalid("already fulfilled")
	}
	if len(words) == 0 || words[0] == nil {
		return invalid("no random words")
	}
	r, err := k.GetRaffle(ctx, req.RaffleID)
	if err != nil {
		return err
	}
	if r.Status != types.RaffleStatusRequested || r.ChainlinkRequestID != requestID {
		return invalid("stale request")
	}

	supply, err := k.tickets.SupplyOf(ctx, r.ID)
	if err != nil {
		return err
	}
	if supply == 0 {
		return invalid("raffle has no tickets")
	}
	ticket := new(uint256.Int).Mod(words[0], uint256.NewInt(supply)).Uint64()
	winner, err := k.tickets.OwnerOf(ctx, r.ID, ticket)
	if err != nil {
		return err
	}

	req.Fulfilled = true
	req.RandomWord = new(uint256.Int).Set(words[0])
	if err := k.Requests.Set(ctx, requestID, req); err != nil {
		return err
	}
	r.Status = types.RaffleStatusFulfilled
	r.Winner = winner
	if err := k.Raffles.Set(ctx, r.ID, r); err != nil {
		return err
	}

	em := sdkCtx.EventManager()
	em.EmitEvent(types.NewRequestFulfilledEvent(requestID, words[0].Dec()))
	em.EmitEvent(types.NewWinnerDrawnEvent(r.ID, ticket, winner))
	k.Logger().Info("winner drawn", "raffle_id", r.ID, "ticket", ticket, "winner", winner.Hex())
	return nil
}

// PropagateRaffleWinner sends the winner of raffleID to the prize manager at
// prizeManager on chainSelector and releases the raffle revenue for
// withdrawal. The target must be the raffle origin. Admin only.
func (k Keeper) PropagateRaffleWinner(
	ctx context.Context,
	caller, prizeManager common.Address,
	chainSelector uint64,
	raffleID uint64,
) (common.Hash, error) {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return common.Hash{}, err
	}
	target := types.Counterpart{Address: prizeManager, ChainSelector: chainSelector}
	if target.IsZero() {
		return common.Hash{}, types.ErrMissingCounterpart
	}

	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return common.Hash{}, err
	}
	if r.Status != types.RaffleStatusFulfilled {
		return common.Hash{}, errorsmod.Wrapf(types.ErrInvalidRaffleStatus, "raffle %d is %s", raffleID, r.Status)
	}
	if target != r.Origin {
		return common.Hash{}, errorsmod.Wrapf(types.ErrNotRaffleOrigin, "raffle %d was locked by %s on chain %d",
			raffleID, r.Origin.Address.Hex(), r.Origin.ChainSelector)
	}

	msgID, err := k.messenger.SendMessage(ctx, prizeManager, chainSelector, cciptypes.WinnerDrawn{RaffleID: raffleID, Winner: r.Winner})
	if err != nil {
		return common.Hash{}, errorsmod.Wrapf(err, "failed to propagate winner of raffle %d", raffleID)
	}

	r.Status = types.RaffleStatusPropagated
	if err := k.Raffles.Set(ctx, raffleID, r); err != nil {
		return common.Hash{}, err
	}
	if err := k.addLockedETH(ctx, r.TotalRaised.Neg()); err != nil {
		return common.Hash{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewWinnerPropagatedEvent(raffleID, r.Winner, msgID))
	k.Logger().Info("winner propagated", "raffle_id", raffleID, "winner", r.Winner.Hex(), "message_id", msgID.Hex())
	return msgID, nil
}
