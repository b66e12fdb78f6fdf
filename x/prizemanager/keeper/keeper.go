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
	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	"github.com/pushchain/push-raffle-node/x/prizemanager/types"
)

// Keeper holds raffle prizes in custody on the prize chain until a winner
// claims them or a cancellation frees them.
type Keeper struct {
	logger  log.Logger
	address common.Address

	Schema       collections.Schema
	Raffles      collections.Map[uint64, types.Raffle]
	LockedETH    collections.Item[math.Int]
	LockedTokens collections.Map[common.Address, math.Int]
	LockedNFTs   collections.KeySet[collections.Pair[common.Address, uint64]]

	access    types.AccessKeeper
	messenger types.Messenger
	native    types.NativeKeeper
	assets    types.AssetsKeeper
}

// NewKeeper creates a new prize manager Keeper deployed at address.
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	address common.Address,
	access types.AccessKeeper,
	messenger types.Messenger,
	native types.NativeKeeper,
	assets types.AssetsKeeper,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:  logger,
		address: address,

		Raffles:      collections.NewMap(sb, types.RafflesKey, types.RafflesName, collections.Uint64Key, utils.JSONValue[types.Raffle]()),
		LockedETH:    collections.NewItem(sb, types.LockedETHKey, types.LockedETHName, sdk.IntValue),
		LockedTokens: collections.NewMap(sb, types.LockedTokensKey, types.LockedTokensName, utils.AddressKey, sdk.IntValue),
		LockedNFTs: collections.NewKeySet(sb, types.LockedNFTsKey, types.LockedNFTsName,
			collections.PairKeyCodec(utils.AddressKey, collections.Uint64Key)),

		access:    access,
		messenger: messenger,
		native:    native,
		assets:    assets,
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

// Address returns the address the prize manager is deployed at.
func (k Keeper) Address() common.Address {
	return k.address
}

// SetRole grants or revokes a role on the prize manager. Admin only.
func (k Keeper) SetRole(ctx context.Context, caller, user common.Address, role accesstypes.Role, status bool) error {
	return k.access.SetRole(ctx, caller, user, role, status)
}

// SetCCIPCounterpart enables or disables a ticket manager as a message peer. Admin only.
func (k Keeper) SetCCIPCounterpart(ctx context.Context, caller, counterpart common.Address, chainSelector uint64, enabled bool) error {
	return k.messenger.SetCounterpart(ctx, caller, counterpart, chainSelector, enabled)
}

// SetCCIPExtraArgs sets the extra args of outbound messages. Admin only.
func (k Keeper) SetCCIPExtraArgs(ctx context.Context, caller common.Address, extraArgs []byte) error {
	return k.messenger.SetExtraArgs(ctx, caller, extraArgs)
}

// GetRaffle returns the prize record of raffleID, with status NONE when unknown.
func (k Keeper) GetRaffle(ctx context.Context, raffleID uint64) (types.Raffle, error) {
	r, err := k.Raffles.Get(ctx, raffleID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Raffle{ID: raffleID}, nil
		}
		return types.Raffle{}, err
	}
	return r, nil
}

// GetNFTRaffle returns the NFT prize of raffleID; ErrInvalidRaffle for other types.
func (k Keeper) GetNFTRaffle(ctx context.Context, raffleID uint64) (types.NFTInfo, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return types.NFTInfo{}, err
	}
	if r.Type != types.RaffleTypeNFT || r.NFT == nil {
		return types.NFTInfo{}, errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is not an NFT raffle", raffleID)
	}
	return *r.NFT, nil
}

// GetETHRaffle returns the ETH prize of raffleID; ErrInvalidRaffle for other types.
func (k Keeper) GetETHRaffle(ctx context.Context, raffleID uint64) (types.ETHInfo, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return types.ETHInfo{}, err
	}
	if r.Type != types.RaffleTypeETH || r.ETH == nil {
		return types.ETHInfo{}, errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is not an ETH raffle", raffleID)
	}
	return *r.ETH, nil
}

// GetTokenRaffle returns the token prize of raffleID; ErrInvalidRaffle for other types.
func (k Keeper) GetTokenRaffle(ctx context.Context, raffleID uint64) (types.TokenInfo, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return types.TokenInfo{}, err
	}
	if r.Type != types.RaffleTypeToken || r.Token == nil {
		return types.TokenInfo{}, errorsmod.Wrapf(types.ErrInvalidRaffle, "raffle %d is not a token raffle", raffleID)
	}
	return *r.Token, nil
}

// GetWinner returns the propagated winner of raffleID, zero before propagation.
func (k Keeper) GetWinner(ctx context.Context, raffleID uint64) (common.Address, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return common.Address{}, err
	}
	if r.Status == types.PrizeStatusNone {
		return common.Address{}, errorsmod.Wrapf(types.ErrInvalidRaffle, "%d", raffleID)
	}
	return r.Winner, nil
}

// GetLockedETH returns the native amount reserved by live raffles.
func (k Keeper) GetLockedETH(ctx context.Context) (math.Int, error) {
	v, err := k.LockedETH.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	return v, nil
}

// GetLockedTokens returns the amount of token reserved by live raffles.
func (k Keeper) GetLockedTokens(ctx context.Context, token common.Address) (math.Int, error) {
	v, err := k.LockedTokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	return v, nil
}

// IsNFTLocked reports whether (collection, tokenID) backs a live raffle.
func (k Keeper) IsNFTLocked(ctx context.Context, collection common.Address, tokenID uint64) (bool, error) {
	return k.LockedNFTs.Has(ctx, collections.Join(collection, tokenID))
}
