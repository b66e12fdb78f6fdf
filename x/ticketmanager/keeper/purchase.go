package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	"github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

// BuyTickets sells count tickets of raffleID to buyer against a coupon
// signed by an operational signer. value is paid from the buyer balance and
// must match the signed value. It returns the first ticket number.
func (k Keeper) BuyTickets(
	ctx context.Context,
	buyer common.Address,
	raffleID uint64,
	count uint16,
	expiryBlock uint64,
	value math.Int,
	signature []byte,
) (uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return 0, err
	}
	now := sdkCtx.BlockTime().Unix()
	if r.Status == types.RaffleStatusIdle && now < r.StartTime {
		return 0, errorsmod.Wrapf(types.ErrRaffleHasNotStarted, "raffle %d starts at %d", raffleID, r.StartTime)
	}
	if r.Status != types.RaffleStatusIdle || now >= r.EndTime {
		return 0, errorsmod.Wrapf(types.ErrRaffleHasEnded, "raffle %d is %s", raffleID, r.Status)
	}

	if count == 0 {
		return 0, types.ErrInvalidTicketCount
	}
	if uint64(count) > r.MaxTicketSupply {
		return 0, errorsmod.Wrapf(types.ErrMaxTicketExceed, "%d above supply %d", count, r.MaxTicketSupply)
	}
	supply, err := k.tickets.SupplyOf(ctx, raffleID)
	if err != nil {
		return 0, err
	}
	held, err := k.tickets.BalanceOf(ctx, buyer, raffleID)
	if err != nil {
		return 0, err
	}
	if supply+uint64(count) > r.MaxTicketSupply {
		return 0, errorsmod.Wrapf(types.ErrTooManyTickets, "%d sold, %d left", supply, r.MaxTicketSupply-supply)
	}
	if held+uint64(count) > r.MaxHoldings {
		return 0, errorsmod.Wrapf(types.ErrTooManyTickets, "buyer holds %d of %d", held, r.MaxHoldings)
	}
	if value.IsNil() || value.IsNegative() {
		return 0, types.ErrInvalidPayment
	}

	if expiryBlock < uint64(sdkCtx.BlockHeight()) {
		return 0, errorsmod.Wrapf(types.ErrExpiredCoupon, "expired at block %d", expiryBlock)
	}
	nonce, err := k.GetNonce(ctx, buyer)
	if err != nil {
		return 0, err
	}
	coupon := types.Coupon{
		Buyer:       buyer,
		Nonce:       nonce,
		RaffleID:    raffleID,
		Count:       count,
		ExpiryBlock: expiryBlock,
		Value:       value,
	}
	signer, err := coupon.Signer(signature)
	if err != nil {
		return 0, err
	}
	ok, err := k.access.HasRole(ctx, signer, accesstypes.RoleUtility)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errorsmod.Wrapf(types.ErrUnauthorized, "signer %s", signer.Hex())
	}

	var start uint64
	err = atomic(ctx, func(tmpCtx sdk.Context) error {
		if value.IsPositive() {
			if err := k.native.Transfer(tmpCtx, buyer, k.address, value); err != nil {
				return errorsmod.Wrap(types.ErrInvalidPayment, err.Error())
			}
		}

		first, err := k.tickets.Mint(tmpCtx, k.address, buyer, raffleID, uint64(count))
		if err != nil {
			return err
		}
		start = first

		p, err := k.GetParticipation(tmpCtx, raffleID, buyer)
		if err != nil {
			return err
		}
		p.TotalPurchased += uint64(count)
		p.TotalSpent = p.TotalSpent.Add(value)
		if err := k.Participations.Set(tmpCtx, collections.Join(raffleID, buyer), p); err != nil {
			return err
		}

		if err := k.Nonces.Set(tmpCtx, buyer, nonce+1); err != nil {
			return err
		}

		r.TotalRaised = r.TotalRaised.Add(value)
		if err := k.Raffles.Set(tmpCtx, raffleID, r); err != nil {
			return err
		}
		if err := k.addLockedETH(tmpCtx, value); err != nil {
			return err
		}

		tmpCtx.EventManager().EmitEvent(types.NewTicketsBoughtEvent(raffleID, buyer, start, uint64(count), value))
		return nil
	})
	if err != nil {
		return 0, err
	}

	k.Logger().Debug("tickets bought", "raffle_id", raffleID, "buyer", buyer.Hex(), "count", count, "value", value.String())
	return start, nil
}
