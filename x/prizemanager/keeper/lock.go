package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	"github.com/pushchain/push-raffle-node/x/prizemanager/types"
)

// LockNFT reserves an NFT already transferred to the prize manager as the
// prize of raffleID and announces it to the ticket manager. Admin only.
func (k Keeper) LockNFT(ctx context.Context, caller, counterpart common.Address, chainSelector, raffleID uint64, collection common.Address, tokenID uint64) error {
	if err := k.checkLock(ctx, caller, raffleID); err != nil {
		return err
	}

	owner, err := k.assets.OwnerOfNFT(ctx, collection, tokenID)
	if err != nil || owner != k.address {
		return errorsmod.Wrapf(types.ErrInvalidPrize, "%s #%d not held", collection.Hex(), tokenID)
	}
	locked, err := k.IsNFTLocked(ctx, collection, tokenID)
	if err != nil {
		return err
	}
	if locked {
		return errorsmod.Wrapf(types.ErrInvalidPrize, "%s #%d already locked", collection.Hex(), tokenID)
	}

	r := types.Raffle{
		ID:   raffleID,
		Type: types.RaffleTypeNFT,
		NFT:  &types.NFTInfo{Contract: collection, TokenID: tokenID},
	}
	return k.lock(ctx, r, counterpart, chainSelector)
}

// LockETH reserves amount of the unreserved native balance as the prize of
// raffleID. Admin only.
func (k Keeper) LockETH(ctx context.Context, caller, counterpart common.Address, chainSelector, raffleID uint64, amount math.Int) error {
	if err := k.checkLock(ctx, caller, raffleID); err != nil {
		return err
	}

	balance, err := k.native.GetBalance(ctx, k.address)
	if err != nil {
		return err
	}
	locked, err := k.GetLockedETH(ctx)
	if err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() || balance.Sub(locked).LT(amount) {
		return errorsmod.Wrapf(types.ErrInvalidPrize, "%s ETH not held", amount)
	}

	r := types.Raffle{
		ID:   raffleID,
		Type: types.RaffleTypeETH,
		ETH:  &types.ETHInfo{Amount: amount},
	}
	return k.lock(ctx, r, counterpart, chainSelector)
}

// LockTokens reserves amount of the unreserved token balance as the prize of
// raffleID. Admin only.
func (k Keeper) LockTokens(ctx context.Context, caller, counterpart common.Address, chainSelector, raffleID uint64, token common.Address, amount math.Int) error {
	if err := k.checkLock(ctx, caller, raffleID); err != nil {
		return err
	}

	balance, err := k.assets.TokenBalance(ctx, token, k.address)
	if err != nil {
		return err
	}
	locked, err := k.GetLockedTokens(ctx, token)
	if err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() || balance.Sub(locked).LT(amount) {
		return errorsmod.Wrapf(types.ErrInvalidPrize, "%s of %s not held", amount, token.Hex())
	}

	r := types.Raffle{
		ID:    raffleID,
		Type:  types.RaffleTypeToken,
		Token: &types.TokenInfo{Token: token, Amount: amount},
	}
	return k.lock(ctx, r, counterpart, chainSelector)
}

func (k Keeper) checkLock(ctx context.Context, caller common.Address, raffleID uint64) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	if raffleID == 0 {
		return types.ErrIllegalRaffleId
	}
	exists, err := k.Raffles.Has(ctx, raffleID)
	if err != nil {
		return err
	}
	if exists {
		return errorsmod.Wrapf(types.ErrInvalidRaffleId, "%d", raffleID)
	}
	return nil
}

// lock announces r to the counterpart first: a fee failure aborts before any
// custody state is written.
func (k Keeper) lock(ctx context.Context, r types.Raffle, counterpart common.Address, chainSelector uint64) error {
	payload := cciptypes.PrizeLocked{RaffleID: r.ID}
	if err := k.checkFeeReserve(ctx, r, counterpart, chainSelector, payload); err != nil {
		return err
	}
	messageID, err := k.messenger.SendMessage(ctx, counterpart, chainSelector, payload)
	if err != nil {
		return err
	}

	r.Status = types.PrizeStatusLocked
	r.Counterpart = counterpart
	r.ChainSelector = chainSelector
	if err := k.Raffles.Set(ctx, r.ID, r); err != nil {
		return err
	}
	if err := k.reserve(ctx, r); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewPrizeLockedEvent(r, messageID))
	k.Logger().Info("prize locked", "raffle_id", r.ID, "type", r.Type.String(), "counterpart", counterpart.Hex())
	return nil
}

// checkFeeReserve makes sure the fee is paid out of LINK that backs no prize,
// counting r itself when its prize is LINK.
func (k Keeper) checkFeeReserve(ctx context.Context, r types.Raffle, counterpart common.Address, chainSelector uint64, payload cciptypes.Payload) error {
	link := k.messenger.LinkToken()
	reserved, err := k.GetLockedTokens(ctx, link)
	if err != nil {
		return err
	}
	if r.Type == types.RaffleTypeToken && r.Token.Token == link {
		reserved = reserved.Add(r.Token.Amount)
	}
	if reserved.IsZero() {
		return nil
	}

	fee, err := k.messenger.QuoteFee(ctx, counterpart, chainSelector, payload)
	if err != nil {
		return err
	}
	balance, err := k.assets.TokenBalance(ctx, link, k.address)
	if err != nil {
		return err
	}
	if balance.Sub(reserved).LT(fee) {
		return errorsmod.Wrapf(cciptypes.ErrInsufficientLinkBalance, "have %s unreserved, fee %s", balance.Sub(reserved), fee)
	}
	return nil
}

func (k Keeper) reserve(ctx context.Context, r types.Raffle) error {
	switch r.Type {
	case types.RaffleTypeNFT:
		return k.LockedNFTs.Set(ctx, collections.Join(r.NFT.Contract, r.NFT.TokenID))
	case types.RaffleTypeETH:
		locked, err := k.GetLockedETH(ctx)
		if err != nil {
			return err
		}
		return k.LockedETH.Set(ctx, locked.Add(r.ETH.Amount))
	case types.RaffleTypeToken:
		locked, err := k.GetLockedTokens(ctx, r.Token.Token)
		if err != nil {
			return err
		}
		return k.LockedTokens.Set(ctx, r.Token.Token, locked.Add(r.Token.Amount))
	}
	return nil
}

func (k Keeper) release(ctx context.Context, r types.Raffle) error {
	switch r.Type {
	case types.RaffleTypeNFT:
		return k.LockedNFTs.Remove(ctx, collections.Join(r.NFT.Contract, r.NFT.TokenID))
	case types.RaffleTypeETH:
		locked, err := k.GetLockedETH(ctx)
		if err != nil {
			return err
		}
		return k.LockedETH.Set(ctx, locked.Sub(r.ETH.Amount))
	case types.RaffleTypeToken:
		locked, err := k.GetLockedTokens(ctx, r.Token.Token)
		if err != nil {
			return err
		}
		return k.LockedTokens.Set(ctx, r.Token.Token, locked.Sub(r.Token.Amount))
	}
	return nil
}
