package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/x/prizemanager/types"
)

// ClaimPrize sends the prize of raffleID to its winner. A failed ETH payout
// leaves the record untouched so the claim can be retried.
func (k Keeper) ClaimPrize(ctx context.Context, caller common.Address, raffleID uint64) error {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return err
	}
	switch {
	case r.Status == types.PrizeStatusNone:
		return errorsmod.Wrapf(types.ErrInvalidRaffle, "%d", raffleID)
	case r.Status == types.PrizeStatusClaimed:
		return errorsmod.Wrapf(types.ErrAlreadyClaimed, "%d", raffleID)
	case r.Status != types.PrizeStatusWinnerDrawn || r.Winner != caller:
		return errorsmod.Wrapf(types.ErrUnauthorizedToClaim, "%s on raffle %d", caller.Hex(), raffleID)
	}

	switch r.Type {
	case types.RaffleTypeNFT:
		err = k.assets.TransferNFT(ctx, r.NFT.Contract, k.address, caller, r.NFT.TokenID)
	case types.RaffleTypeETH:
		if err = k.native.Transfer(ctx, k.address, caller, r.ETH.Amount); err != nil {
			err = errorsmod.Wrap(types.ErrETHTransferFail, err.Error())
		}
	case types.RaffleTypeToken:
		err = k.assets.TransferTokens(ctx, r.Token.Token, k.address, caller, r.Token.Amount)
	default:
		err = errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d has no prize", raffleID)
	}
	if err != nil {
		return err
	}

	if err := k.release(ctx, r); err != nil {
		return err
	}
	r.Status = types.PrizeStatusClaimed
	if err := k.Raffles.Set(ctx, raffleID, r); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewPrizeClaimedEvent(raffleID, caller))
	k.Logger().Info("prize claimed", "raffle_id", raffleID, "winner", caller.Hex())
	return nil
}
