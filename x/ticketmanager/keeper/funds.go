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

// RefundPlayers pays back what each player spent on a canceled raffle. The
// call is all-or-nothing: one failing player leaves every refund undone.
func (k Keeper) RefundPlayers(ctx context.Context, raffleID uint64, players []common.Address) error {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return err
	}
	if r.Status != types.RaffleStatusCanceled {
		return errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is %s", raffleID, r.Status)
	}

	return atomic(ctx, func(tmpCtx sdk.Context) error {
		for _, player := range players {
			p, err := k.GetParticipation(tmpCtx, raffleID, player)
			if err != nil {
				return err
			}
			if p.Withdrawn {
				return errorsmod.Wrapf(types.ErrPlayerAlreadyRefunded, "%s", player.Hex())
			}
			if !p.TotalSpent.IsPositive() {
				return errorsmod.Wrapf(types.ErrNothingToSend, "%s spent nothing on raffle %d", player.Hex(), raffleID)
			}

			if err := k.native.Transfer(tmpCtx, k.address, player, p.TotalSpent); err != nil {
				return errorsmod.Wrapf(types.ErrETHTransferFail, "refund to %s: %s", player.Hex(), err)
			}
			p.Withdrawn = true
			if err := k.Participations.Set(tmpCtx, collections.Join(raffleID, player), p); err != nil {
				return err
			}
			if err := k.addLockedETH(tmpCtx, p.TotalSpent.Neg()); err != nil {
				return err
			}

			tmpCtx.EventManager().EmitEvent(types.NewPlayerRefundEvent(raffleID, player, p.TotalSpent))
			k.Logger().Info("player refunded", "raffle_id", raffleID, "player", player.Hex(), "amount", p.TotalSpent.String())
		}
		return nil
	})
}

// WithdrawETH sends the admin the balance not earmarked for refunds or
// pending winners. Admin only.
func (k Keeper) WithdrawETH(ctx context.Context, caller common.Address) (math.Int, error) {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return math.Int{}, err
	}

	balance, err := k.native.GetBalance(ctx, k.address)
	if err != nil {
		return math.Int{}, err
	}
	locked, err := k.GetLockedETH(ctx)
	if err != nil {
		return math.Int{}, err
	}
	surplus := balance.Sub(locked)
	if !surplus.IsPositive() {
		return math.Int{}, errorsmod.Wrapf(types.ErrNothingToSend, "balance %s, locked %s", balance, locked)
	}

	if err := k.native.Transfer(ctx, k.address, caller, surplus); err != nil {
		return math.Int{}, errorsmod.Wrap(types.ErrETHTransferFail, err.Error())
	}
	k.Logger().Info("eth withdrawn", "to", caller.Hex(), "amount", surplus.String())
	return surplus, nil
}

// WithdrawTokens sends amount of token held by the ticket manager to the
// admin. Admin only.
func (k Keeper) WithdrawTokens(ctx context.Context, caller, token common.Address, amount math.Int) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	if err := k.tokens.TransferTokens(ctx, token, k.address, caller, amount); err != nil {
		return err
	}
	k.Logger().Info("tokens withdrawn", "token", token.Hex(), "to", caller.Hex(), "amount", amount.String())
	return nil
}
