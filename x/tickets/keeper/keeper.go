package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/utils"
	"github.com/pushchain/push-raffle-node/x/tickets/types"
)

// Keeper is the ticket collection. Every raffle id is one token id; each
// purchase mints a contiguous range of ticket numbers to the buyer.
type Keeper struct {
	logger  log.Logger
	address common.Address

	Schema   collections.Schema
	Config   collections.Item[types.Config]
	Ranges   collections.Map[collections.Pair[uint64, uint64], common.Address] // (raffle, first number) -> owner
	Supply   collections.Map[uint64, uint64]
	Balances collections.Map[collections.Pair[common.Address, uint64], uint64]

	accounts types.AccountKeeper
}

// NewKeeper creates a new tickets Keeper deployed at address.
func NewKeeper(storeService storetypes.KVStoreService, logger log.Logger, address common.Address, accounts types.AccountKeeper) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:  logger,
		address: address,

		Config: collections.NewItem(sb, types.ConfigKey, types.ConfigName, utils.JSONValue[types.Config]()),
		Ranges: collections.NewMap(sb, types.RangesKey, types.RangesName,
			collections.PairKeyCodec(collections.Uint64Key, collections.Uint64Key), utils.JSONValue[common.Address]()),
		Supply: collections.NewMap(sb, types.SupplyKey, types.SupplyName, collections.Uint64Key, collections.Uint64Value),
		Balances: collections.NewMap(sb, types.BalancesKey, types.BalancesName,
			collections.PairKeyCodec(utils.AddressKey, collections.Uint64Key), collections.Uint64Value),

		accounts: accounts,
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

// Address returns the address the ticket collection is deployed at.
func (k Keeper) Address() common.Address {
	return k.address
}

// InitGenesis stores the collection owner, uri and the only minter.
func (k Keeper) InitGenesis(ctx context.Context, cfg types.Config) error {
	return k.Config.Set(ctx, cfg)
}

// URI returns the metadata uri shared by every raffle id.
func (k Keeper) URI(ctx context.Context) (string, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return "", err
	}
	return cfg.URI, nil
}

// SetURI replaces the metadata uri. Owner only.
func (k Keeper) SetURI(ctx context.Context, caller common.Address, uri string) error {
	cfg, err := k.ownerConfig(ctx, caller)
	if err != nil {
		return err
	}
	cfg.URI = uri
	if err := k.Config.Set(ctx, cfg); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewURISetEvent(uri))
	return nil
}

// Owner returns the collection owner.
func (k Keeper) Owner(ctx context.Context) (common.Address, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return cfg.Owner, nil
}

// TransferOwnership hands the collection to newOwner. Owner only.
func (k Keeper) TransferOwnership(ctx context.Context, caller, newOwner common.Address) error {
	if newOwner == (common.Address{}) {
		return types.ErrTransferToAddressZero
	}
	cfg, err := k.ownerConfig(ctx, caller)
	if err != nil {
		return err
	}
	previous := cfg.Owner
	cfg.Owner = newOwner
	if err := k.Config.Set(ctx, cfg); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewOwnershipTransferredEvent(previous, newOwner))
	return nil
}

func (k Keeper) ownerConfig(ctx context.Context, caller common.Address) (types.Config, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return types.Config{}, err
	}
	if cfg.Owner != caller {
		return types.Config{}, errorsmod.Wrapf(types.ErrCallerNotContractOwner, "%s", caller.Hex())
	}
	return cfg, nil
}

func getOrZero[K any](ctx context.Context, m collections.Map[K, uint64], key K) (uint64, error) {
	v, err := m.Get(ctx, key)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}
