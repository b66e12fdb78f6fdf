package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	"github.com/pushchain/push-raffle-node/x/prizemanager/types"
)

// WithdrawNFT sends an NFT that backs no live raffle to caller. Admin only.
func (k Keeper) WithdrawNFT(ctx context.Context, caller, collection common.Address, tokenID uint64) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	locked, err := k.IsNFTLocked(ctx, collection, tokenID)
	if err != nil {
		return err
	}
	if locked {
		return errorsmod.Wrapf(types.ErrNFTLocked, "%s #%d", collection.Hex(), tokenID)
	}
	return k.assets.TransferNFT(ctx, collection, k.address, caller, tokenID)
}

// WithdrawTokens sends amount of token, out of the unreserved balance, to caller. Admin only.
func (k Keeper) WithdrawTokens(ctx context.Context, caller, token common.Address, amount math.Int) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	balance, err := k.assets.TokenBalance(ctx, token, k.address)
	if err != nil {
		return err
	}
	locked, err := k.GetLockedTokens(ctx, token)
	if err != nil {
		return err
	}
	if balance.Sub(locked).LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "%s of %s available", balance.Sub(locked), token.Hex())
	}
	return k.assets.TransferTokens(ctx, token, k.address, caller, amount)
}

// WithdrawETH sends amount, out of the unreserved native balance, to caller. Admin only.
func (k Keeper) WithdrawETH(ctx context.Context, caller common.Address, amount math.Int) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	balance, err := k.native.GetBalance(ctx, k.address)
	if err != nil {
		return err
	}
	locked, err := k.GetLockedETH(ctx)
	if err != nil {
		return err
	}
	if balance.Sub(locked).LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "%s available", balance.Sub(locked))
	}
	if err := k.native.Transfer(ctx, k.address, caller, amount); err != nil {
		return errorsmod.Wrap(types.ErrETHTransferFail, err.Error())
	}
	return nil
}
