package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/x/assets/types"
)

// TokenBalance returns holder's balance of token.
func (k Keeper) TokenBalance(ctx context.Context, token, holder common.Address) (math.Int, error) {
	bal, err := k.TokenBalances.Get(ctx, collections.Join(token, holder))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	return bal, nil
}

// TotalSupply returns the minted supply of token.
func (k Keeper) TotalSupply(ctx context.Context, token common.Address) (math.Int, error) {
	supply, err := k.TokenSupply.Get(ctx, token)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	return supply, nil
}

// MintTokens creates amount of token for to.
func (k Keeper) MintTokens(ctx context.Context, token, to common.Address, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "mint %s", amount)
	}
	if to == (common.Address{}) {
		return errorsmod.Wrap(types.ErrInvalidReceiver, "mint to zero address")
	}

	supply, err := k.TotalSupply(ctx, token)
	if err != nil {
		return err
	}
	if err := k.TokenSupply.Set(ctx, token, supply.Add(amount)); err != nil {
		return err
	}

	bal, err := k.TokenBalance(ctx, token, to)
	if err != nil {
		return err
	}
	if err := k.TokenBalances.Set(ctx, collections.Join(token, to), bal.Add(amount)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewTokenTransferEvent(token, common.Address{}, to, amount))
	return nil
}

// TransferTokens moves amount of token from one holder to another.
func (k Keeper) TransferTokens(ctx context.Context, token, from, to common.Address, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "transfer %s", amount)
	}
	if to == (common.Address{}) {
		return errorsmod.Wrap(types.ErrInvalidReceiver, "transfer to zero address")
	}

	fromBal, err := k.TokenBalance(ctx, token, from)
	if err != nil {
		return err
	}
	if fromBal.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientTokenBalance, "token %s: %s has %s, needs %s", token.Hex(), from.Hex(), fromBal, amount)
	}
	if amount.IsZero() {
		return nil
	}
	if err := k.TokenBalances.Set(ctx, collections.Join(token, from), fromBal.Sub(amount)); err != nil {
		return err
	}

	toBal, err := k.TokenBalance(ctx, token, to)
	if err != nil {
		return err
	}
	if err := k.TokenBalances.Set(ctx, collections.Join(token, to), toBal.Add(amount)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewTokenTransferEvent(token, from, to, amount))
	return nil
}
