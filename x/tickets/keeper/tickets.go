package keeper

import (
	"context"
	"math"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/x/tickets/types"
)

// Mint assigns the next count ticket numbers of raffleID to to and returns
// the first one. Only the ticket manager may mint.
func (k Keeper) Mint(ctx context.Context, operator, to common.Address, raffleID, count uint64) (uint64, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return 0, err
	}
	if operator != cfg.Manager {
		return 0, errorsmod.Wrapf(types.ErrNotTicketManager, "%s", operator.Hex())
	}
	if to == (common.Address{}) {
		return 0, types.ErrTransferToAddressZero
	}
	if count == 0 {
		return 0, types.ErrInvalidTicketCount
	}

	ok, err := k.accounts.CanReceiveERC1155(ctx, to)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errorsmod.Wrapf(types.ErrTransferRejected, "%s", to.Hex())
	}

	start, err := k.SupplyOf(ctx, raffleID)
	if err != nil {
		return 0, err
	}
	if count > math.MaxUint64-start {
		return 0, errorsmod.Wrapf(types.ErrInvalidTicketCount, "supply overflow")
	}
	balance, err := k.BalanceOf(ctx, to, raffleID)
	if err != nil {
		return 0, err
	}

	if err := k.Ranges.Set(ctx, collections.Join(raffleID, start), to); err != nil {
		return 0, err
	}
	if err := k.Supply.Set(ctx, raffleID, start+count); err != nil {
		return 0, err
	}
	if err := k.Balances.Set(ctx, collections.Join(to, raffleID), balance+count); err != nil {
		return 0, err
	}

	em := sdk.UnwrapSDKContext(ctx).EventManager()
	em.EmitEvent(types.NewNewTicketEvent(raffleID, start, count, to))
	em.EmitEvent(types.NewTransferSingleEvent(operator, common.Address{}, to, raffleID, count))
	return start, nil
}

// OwnerOf returns the holder of ticket number n of raffleID: the owner of the
// last range starting at or before n.
func (k Keeper) OwnerOf(ctx context.Context, raffleID, n uint64) (common.Address, error) {
	supply, err := k.SupplyOf(ctx, raffleID)
	if err != nil {
		return common.Address{}, err
	}
	if n >= supply {
		return common.Address{}, errorsmod.Wrapf(types.ErrInexistentTicket, "raffle %d ticket %d, supply %d", raffleID, n, supply)
	}

	rng := collections.NewPrefixedPairRange[uint64, uint64](raffleID).EndInclusive(n).Descending()
	var owner common.Address
	found := false
	err = k.Ranges.Walk(ctx, rng, func(_ collections.Pair[uint64, uint64], o common.Address) (bool, error) {
		owner, found = o, true
		return true, nil
	})
	if err != nil {
		return common.Address{}, err
	}
	if !found {
		return common.Address{}, errorsmod.Wrapf(types.ErrInexistentTicket, "raffle %d ticket %d", raffleID, n)
	}
	return owner, nil
}

// SupplyOf returns the number of tickets minted for raffleID.
func (k Keeper) SupplyOf(ctx context.Context, raffleID uint64) (uint64, error) {
	return getOrZero(ctx, k.Supply, raffleID)
}

// BalanceOf returns how many tickets of raffleID owner holds.
func (k Keeper) BalanceOf(ctx context.Context, owner common.Address, raffleID uint64) (uint64, error) {
	return getOrZero(ctx, k.Balances, collections.Join(owner, raffleID))
}

// BalanceOfBatch returns BalanceOf for each (owners[i], raffleIDs[i]).
func (k Keeper) BalanceOfBatch(ctx context.Context, owners []common.Address, raffleIDs []uint64) ([]uint64, error) {
	if len(owners) != len(raffleIDs) {
		return nil, errorsmod.Wrapf(types.ErrInconsistentParametersLengths, "%d owners, %d ids", len(owners), len(raffleIDs))
	}
	out := make([]uint64, len(owners))
	for i := range owners {
		bal, err := k.BalanceOf(ctx, owners[i], raffleIDs[i])
		if err != nil {
			return nil, err
		}
		out[i] = bal
	}
	return out, nil
}

// Tickets are soulbound to their buyer: transfers and approvals are refused.

func (k Keeper) SafeTransferFrom(context.Context, common.Address, common.Address, common.Address, uint64, uint64) error {
	return types.ErrNotImplemented
}

func (k Keeper) SafeBatchTransferFrom(context.Context, common.Address, common.Address, common.Address, []uint64, []uint64) error {
	return types.ErrNotImplemented
}

func (k Keeper) SetApprovalForAll(context.Context, common.Address, common.Address, bool) error {
	return types.ErrNotImplemented
}

func (k Keeper) IsApprovedForAll(context.Context, common.Address, common.Address) (bool, error) {
	return false, types.ErrNotImplemented
}
