package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/utils"
	"github.com/pushchain/push-raffle-node/x/native/types"
)

type Keeper struct {
	logger log.Logger

	Schema   collections.Schema
	Balances collections.Map[common.Address, math.Int]
	Accounts collections.Map[common.Address, types.AccountTraits]
}

// NewKeeper creates a new native currency Keeper instance
func NewKeeper(storeService storetypes.KVStoreService, logger log.Logger) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:   logger,
		Balances: collections.NewMap(sb, types.BalancesKey, types.BalancesName, utils.AddressKey, sdk.IntValue),
		Accounts: collections.NewMap(sb, types.AccountsKey, types.AccountsName, utils.AddressKey, utils.JSONValue[types.AccountTraits]()),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

// GetBalance returns the native balance of addr, zero for unknown accounts.
func (k Keeper) GetBalance(ctx context.Context, addr common.Address) (math.Int, error) {
	bal, err := k.Balances.Get(ctx, addr)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	return bal, nil
}

// Mint credits new native currency to addr. Used for genesis funding.
func (k Keeper) Mint(ctx context.Context, addr common.Address, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "mint %s", amount)
	}
	bal, err := k.GetBalance(ctx, addr)
	if err != nil {
		return err
	}
	return k.Balances.Set(ctx, addr, bal.Add(amount))
}

// Transfer moves amount from one account to another. A zero amount is a no-op
// that still honours the recipient's traits, like a plain value call would.
func (k Keeper) Transfer(ctx context.Context, from, to common.Address, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "transfer %s", amount)
	}

	canReceive, err := k.CanReceiveETH(ctx, to)
	if err != nil {
		return err
	}
	if !canReceive {
		return errorsmod.Wrapf(types.ErrTransferRejected, "recipient %s", to.Hex())
	}
	if amount.IsZero() {
		return nil
	}

	fromBal, err := k.GetBalance(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "%s has %s, needs %s", from.Hex(), fromBal, amount)
	}
	if err := k.Balances.Set(ctx, from, fromBal.Sub(amount)); err != nil {
		return err
	}

	toBal, err := k.GetBalance(ctx, to)
	if err != nil {
		return err
	}
	if err := k.Balances.Set(ctx, to, toBal.Add(amount)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewTransferEvent(from, to, amount))
	return nil
}

// SetAccountTraits marks addr as a contract (or resets it to an EOA).
func (k Keeper) SetAccountTraits(ctx context.Context, addr common.Address, traits types.AccountTraits) error {
	return k.Accounts.Set(ctx, addr, traits)
}

// GetAccountTraits returns the stored traits or the EOA defaults.
func (k Keeper) GetAccountTraits(ctx context.Context, addr common.Address) (types.AccountTraits, error) {
	traits, err := k.Accounts.Get(ctx, addr)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.EOA(), nil
		}
		return types.AccountTraits{}, err
	}
	return traits, nil
}

func (k Keeper) CanReceiveETH(ctx context.Context, addr common.Address) (bool, error) {
	traits, err := k.GetAccountTraits(ctx, addr)
	if err != nil {
		return false, err
	}
	return traits.AcceptsETH, nil
}

func (k Keeper) CanReceiveERC1155(ctx context.Context, addr common.Address) (bool, error) {
	traits, err := k.GetAccountTraits(ctx, addr)
	if err != nil {
		return false, err
	}
	return traits.AcceptsERC1155, nil
}
