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
	"github.com/pushchain/push-raffle-node/x/vrf/types"
)

// Keeper is the randomness coordinator of one chain.
type Keeper struct {
	logger  log.Logger
	address common.Address

	Schema           collections.Schema
	Params           collections.Item[types.Params]
	Subscriptions    collections.Map[uint64, types.Subscription]
	NextSubscription collections.Sequence
	Consumers        collections.KeySet[collections.Pair[uint64, common.Address]]
	Requests         collections.Map[uint64, types.Request]
	NextRequest      collections.Sequence

	callbacks *consumerRegistry
}

type consumerRegistry struct {
	mu        sync.RWMutex
	consumers map[common.Address]types.Consumer
}

// NewKeeper creates a new coordinator Keeper deployed at address.
func NewKeeper(storeService storetypes.KVStoreService, logger log.Logger, address common.Address) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger:  logger,
		address: address,

		Params:           collections.NewItem(sb, types.ParamsKey, types.ParamsName, utils.JSONValue[types.Params]()),
		Subscriptions:    collections.NewMap(sb, types.SubscriptionsKey, types.SubscriptionsName, collections.Uint64Key, utils.JSONValue[types.Subscription]()),
		NextSubscription: collections.NewSequence(sb, types.NextSubscriptionKey, types.NextSubscriptionName),
		Consumers: collections.NewKeySet(sb, types.ConsumersKey, types.ConsumersName,
			collections.PairKeyCodec(collections.Uint64Key, utils.AddressKey)),
		Requests:    collections.NewMap(sb, types.RequestsKey, types.RequestsName, collections.Uint64Key, utils.JSONValue[types.Request]()),
		NextRequest: collections.NewSequence(sb, types.NextRequestKey, types.NextRequestName),

		callbacks: &consumerRegistry{consumers: make(map[common.Address]types.Consumer)},
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

// Address returns the coordinator address seen by consumers.
func (k Keeper) Address() common.Address {
	return k.address
}

func (k Keeper) InitGenesis(ctx context.Context, params types.Params) error {
	return k.Params.Set(ctx, params)
}

// RegisterConsumer binds the callback invoked when a request of addr is fulfilled.
func (k Keeper) RegisterConsumer(addr common.Address, c types.Consumer) {
	k.callbacks.mu.Lock()
	defer k.callbacks.mu.Unlock()
	k.callbacks.consumers[addr] = c
}

func (k Keeper) consumer(addr common.Address) (types.Consumer, bool) {
	k.callbacks.mu.RLock()
	defer k.callbacks.mu.RUnlock()
	c, ok := k.callbacks.consumers[addr]
	return c, ok
}

// GetRequest returns a pending request.
func (k Keeper) GetRequest(ctx context.Context, requestID uint64) (types.Request, bool, error) {
	req, err := k.Requests.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Request{}, false, nil
		}
		return types.Request{}, false, err
	}
	return req, true, nil
}

// PendingRequests lists every request not fulfilled yet, oldest first.
func (k Keeper) PendingRequests(ctx context.Context) ([]types.Request, error) {
	var out []types.Request
	err := k.Requests.Walk(ctx, nil, func(_ uint64, req types.Request) (bool, error) {
		out = append(out, req)
		return false, nil
	})
	return out, err
}
