package keeper

import (
	"context"
	"errors"
	"sync"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/utils"
	"github.com/pushchain/push-raffle-node/x/ccip/types"
)

// Keeper is the messaging router of one chain. It accepts outbound messages
// into an outbox and executes inbound messages delivered by the relayer.
type Keeper struct {
	logger        log.Logger
	address       common.Address
	chainSelector uint64

	Schema       collections.Schema
	Params       collections.Item[types.Params]
	NextSequence collections.Sequence
	Outbox       collections.Map[uint64, types.OutboundMessage]
	Executed     collections.KeySet[[]byte]
	Lanes        collections.KeySet[uint64]

	tokens    types.TokenKeeper
	receivers *receiverRegistry
}

type receiverRegistry struct {
	mu        sync.RWMutex
	receivers map[common.Address]types.Receiver
}

// NewKeeper creates a new router Keeper instance
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	address common.Address,
	chainSelector uint64,
	tokens types.TokenKeeper,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:        logger,
		address:       address,
		chainSelector: chainSelector,

		Params:       collections.NewItem(sb, types.ParamsKey, types.ParamsName, utils.JSONValue[types.Params]()),
		NextSequence: collections.NewSequence(sb, types.NextSequenceKey, types.NextSequenceName),
		Outbox:       collections.NewMap(sb, types.OutboxKey, types.OutboxName, collections.Uint64Key, utils.JSONValue[types.OutboundMessage]()),
		Executed:     collections.NewKeySet(sb, types.ExecutedKey, types.ExecutedName, collections.BytesKey),
		Lanes:        collections.NewKeySet(sb, types.LanesKey, types.LanesName, collections.Uint64Key),

		tokens:    tokens,
		receivers: &receiverRegistry{receivers: make(map[common.Address]types.Receiver)},
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

// Address returns the router contract address.
func (k Keeper) Address() common.Address {
	return k.address
}

// ChainSelector returns the selector identifying this chain.
func (k Keeper) ChainSelector() uint64 {
	return k.chainSelector
}

// InitGenesis stores the fee parameters and the lanes served by the router.
func (k Keeper) InitGenesis(ctx context.Context, params types.Params, lanes ...uint64) error {
	if err := k.Params.Set(ctx, params); err != nil {
		return err
	}
	for _, lane := range lanes {
		if err := k.Lanes.Set(ctx, lane); err != nil {
			return err
		}
	}
	return nil
}

// RegisterReceiver binds the callback invoked for messages addressed to addr.
// Contracts register at wiring time, before any block is produced.
func (k Keeper) RegisterReceiver(addr common.Address, r types.Receiver) {
	k.receivers.mu.Lock()
	defer k.receivers.mu.Unlock()
	k.receivers.receivers[addr] = r
}

func (k Keeper) receiver(addr common.Address) (types.Receiver, bool) {
	k.receivers.mu.RLock()
	defer k.receivers.mu.RUnlock()
	r, ok := k.receivers.receivers[addr]
	return r, ok
}

// IsExecuted reports whether an inbound message id was already executed.
func (k Keeper) IsExecuted(ctx context.Context, messageID common.Hash) (bool, error) {
	return k.Executed.Has(ctx, messageID.Bytes())
}

// GetOutboundMessage returns the outbox entry with the given sequence.
func (k Keeper) GetOutboundMessage(ctx context.Context, seq uint64) (types.OutboundMessage, bool, error) {
	msg, err := k.Outbox.Get(ctx, seq)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.OutboundMessage{}, false, nil
		}
		return types.OutboundMessage{}, false, err
	}
	return msg, true, nil
}

// OutboxFrom lists up to limit outbox entries starting at sequence from.
func (k Keeper) OutboxFrom(ctx context.Context, from uint64, limit int) ([]types.OutboundMessage, error) {
	var out []types.OutboundMessage
	rng := new(collections.Range[uint64]).StartInclusive(from)
	err := k.Outbox.Walk(ctx, rng, func(_ uint64, msg types.OutboundMessage) (bool, error) {
		out = append(out, msg)
		return limit > 0 && len(out) >= limit, nil
	})
	return out, err
}
