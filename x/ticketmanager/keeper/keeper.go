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
	"github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

// Keeper runs the raffles on the ticket chain: creation once the prize is
// locked, coupon-gated ticket sales, randomness-backed draws, cancellation
// with refunds and winner propagation back to the prize chain.
type Keeper struct {
	logger     log.Logger
	address    common.Address
	vrfTimeout int64

	Schema         collections.Schema
	Raffles        collections.Map[uint64, types.Raffle]
	Participations collections.Map[collections.Pair[uint64, common.Address], types.Participation]
	Requests       collections.Map[uint64, types.RequestStatus]
	Nonces         collections.Map[common.Address, uint64]
	LockedETH      collections.Item[math.Int]
	VRFConfig      collections.Item[types.VRFConfig]

	access      types.AccessKeeper
	messenger   types.Messenger
	tickets     types.TicketsKeeper
	native      types.NativeKeeper
	tokens      types.TokenKeeper
	coordinator types.Coordinator
}

// NewKeeper creates a new ticket manager Keeper deployed at address.
// vrfTimeout is the number of blocks a draw request may stay unanswered
// before it can be re-issued or the raffle canceled.
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	address common.Address,
	vrfTimeout int64,
	access types.AccessKeeper,
	messenger types.Messenger,
	tickets types.TicketsKeeper,
	native types.NativeKeeper,
	tokens types.TokenKeeper,
	coordinator types.Coordinator,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:     logger,
		address:    address,
		vrfTimeout: vrfTimeout,

		Raffles: collections.NewMap(sb, types.RafflesKey, types.RafflesName, collections.Uint64Key, utils.JSONValue[types.Raffle]()),
		Participations: collections.NewMap(sb, types.ParticipationsKey, types.ParticipationsName,
			collections.PairKeyCodec(collections.Uint64Key, utils.AddressKey), utils.JSONValue[types.Participation]()),
		Requests:  collections.NewMap(sb, types.RequestsKey, types.RequestsName, collections.Uint64Key, utils.JSONValue[types.RequestStatus]()),
		Nonces:    collections.NewMap(sb, types.NoncesKey, types.NoncesName, utils.AddressKey, collections.Uint64Value),
		LockedETH: collections.NewItem(sb, types.LockedETHKey, types.LockedETHName, sdk.IntValue),
		VRFConfig: collections.NewItem(sb, types.VRFConfigKey, types.VRFConfigName, utils.JSONValue[types.VRFConfig]()),

		access:      access,
		messenger:   messenger,
		tickets:     tickets,
		native:      native,
		tokens:      tokens,
		coordinator: coordinator,
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

// Address returns the address the ticket manager is deployed at.
func (k Keeper) Address() common.Address {
	return k.address
}

// VRFTimeout returns the draw request timeout in blocks.
func (k Keeper) VRFTimeout() int64 {
	return k.vrfTimeout
}

// InitGenesis stores the randomness settings.
func (k Keeper) InitGenesis(ctx context.Context, cfg types.VRFConfig) error {
	return k.VRFConfig.Set(ctx, cfg)
}

// SetRole grants or revokes a role on the ticket manager. Admin only.
func (k Keeper) SetRole(ctx context.Context, caller, user common.Address, role accesstypes.Role, status bool) error {
	return k.access.SetRole(ctx, caller, user, role, status)
}

// SetCCIPCounterpart enables or disables a prize manager as a message peer. Admin only.
func (k Keeper) SetCCIPCounterpart(ctx context.Context, caller, counterpart common.Address, chainSelector uint64, enabled bool) error {
	return k.messenger.SetCounterpart(ctx, caller, counterpart, chainSelector, enabled)
}

// SetCCIPExtraArgs sets the extra args of outbound messages. Admin only.
func (k Keeper) SetCCIPExtraArgs(ctx context.Context, caller common.Address, extraArgs []byte) error {
	return k.messenger.SetExtraArgs(ctx, caller, extraArgs)
}

// SetRequestConfirmations changes the confirmations asked of the oracle. Admin only.
func (k Keeper) SetRequestConfirmations(ctx context.Context, caller common.Address, confirmations uint16) error {
	if err := k.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	cfg, err := k.VRFConfig.Get(ctx)
	if err != nil {
		return err
	}
	cfg.RequestConfirmations = confirmations
	return k.VRFConfig.Set(ctx, cfg)
}

// GetRaffle returns the raffle record, with status NONE when unknown.
func (k Keeper) GetRaffle(ctx context.Context, raffleID uint64) (types.Raffle, error) {
	r, err := k.Raffles.Get(ctx, raffleID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Raffle{ID: raffleID, TotalRaised: math.ZeroInt()}, nil
		}
		return types.Raffle{}, err
	}
	return r, nil
}

// GetParticipation returns what buyer did in raffleID.
func (k Keeper) GetParticipation(ctx context.Context, raffleID uint64, buyer common.Address) (types.Participation, error) {
	p, err := k.Participations.Get(ctx, collections.Join(raffleID, buyer))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Participation{TotalSpent: math.ZeroInt()}, nil
		}
		return types.Participation{}, err
	}
	return p, nil
}

// GetWinner returns the drawn winner of raffleID.
func (k Keeper) GetWinner(ctx context.Context, raffleID uint64) (common.Address, error) {
	r, err := k.GetRaffle(ctx, raffleID)
	if err != nil {
		return common.Address{}, err
	}
	switch r.Status {
	case types.RaffleStatusFulfilled, types.RaffleStatusPropagated, types.RaffleStatusClaimed:
		return r.Winner, nil
	default:
		return common.Address{}, errorsmod.Wrapf(types.ErrRaffleNotFulfilled, "raffle %d is %s", raffleID, r.Status)
	}
}

// GetRequestStatus returns a randomness request issued by a draw.
func (k Keeper) GetRequestStatus(ctx context.Context, requestID uint64) (types.RequestStatus, error) {
	req, err := k.Requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.RequestStatus{}, errorsmod.Wrapf(types.ErrRequestNotFound, "%d", requestID)
		}
		return types.RequestStatus{}, err
	}
	return req, nil
}

// GetNonce returns the coupon nonce expected for buyer.
func (k Keeper) GetNonce(ctx context.Context, buyer common.Address) (uint64, error) {
	n, err := k.Nonces.Get(ctx, buyer)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

// GetLockedETH returns the ticket revenue still reserved for refunds or
// awaiting winner propagation.
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

func (k Keeper) addLockedETH(ctx context.Context, delta math.Int) error {
	locked, err := k.GetLockedETH(ctx)
	if err != nil {
		return err
	}
	return k.LockedETH.Set(ctx, locked.Add(delta))
}

// atomic runs fn on a branch of ctx that is written back only when fn succeeds.
func atomic(ctx context.Context, fn func(ctx sdk.Context) error) error {
	tmpCtx, commit := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := fn(tmpCtx); err != nil {
		return err
	}
	commit()
	return nil
}
