package app

import (
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	corestore "cosmossdk.io/core/store"
)

// Receipt is the outcome of one executed transaction.
type Receipt struct {
	Height int64
	Time   time.Time
	Events sdk.Events
}

// Attributes returns the values of key across the receipt events of eventType.
func (r Receipt) Attributes(eventType, key string) []string {
	var out []string
	for _, ev := range r.Events.ToABCIEvents() {
		if ev.Type != eventType {
			continue
		}
		out = append(out, attributeValues(ev, key)...)
	}
	return out
}

func attributeValues(ev abci.Event, key string) []string {
	var out []string
	for _, attr := range ev.Attributes {
		if attr.Key == key {
			out = append(out, attr.Value)
		}
	}
	return out
}

// Chain is a single ledger: a multistore with one KV store per module and a
// block clock. Transactions run one at a time.
type Chain struct {
	mu sync.Mutex

	params ChainParams
	logger log.Logger
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey
	header cmtproto.Header

	deployer common.Address
	nonce    uint64
}

// NewChain mounts storeNames on a fresh in-memory multistore and starts the
// clock at height 1 and genesisTime.
func NewChain(params ChainParams, genesisTime time.Time, deployer common.Address, logger log.Logger, storeNames ...string) (*Chain, error) {
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, logger.With("module", "store"), metrics.NewNoOpMetrics())

	keys := make(map[string]*storetypes.KVStoreKey, len(storeNames))
	for _, name := range storeNames {
		if _, dup := keys[name]; dup {
			return nil, fmt.Errorf("store %q mounted twice", name)
		}
		key := storetypes.NewKVStoreKey(name)
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
		keys[name] = key
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load %s stores: %w", params.ChainID, err)
	}

	return &Chain{
		params:   params,
		logger:   logger.With("chain", params.ChainID),
		cms:      cms,
		keys:     keys,
		header:   cmtproto.Header{ChainID: params.ChainID, Height: 1, Time: genesisTime.UTC()},
		deployer: deployer,
	}, nil
}

func (c *Chain) Logger() log.Logger {
	return c.logger
}

func (c *Chain) ChainID() string {
	return c.params.ChainID
}

// Selector returns the cross-chain selector of this chain.
func (c *Chain) Selector() uint64 {
	return c.params.Selector
}

// StoreService returns the KV store service of a mounted store.
func (c *Chain) StoreService(name string) corestore.KVStoreService {
	key, ok := c.keys[name]
	if !ok {
		panic(fmt.Sprintf("store %q is not mounted on %s", name, c.params.ChainID))
	}
	return runtime.NewKVStoreService(key)
}

// Deploy reserves the next contract address of the chain deployer.
func (c *Chain) Deploy() common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	addr := crypto.CreateAddress(c.deployer, c.nonce)
	c.nonce++
	return addr
}

// context must be called with mu held.
func (c *Chain) context() sdk.Context {
	return sdk.NewContext(c.cms, c.header, false, c.logger)
}

// Exec runs fn as one transaction. Its writes and events are kept only when
// fn succeeds.
func (c *Chain) Exec(fn func(ctx sdk.Context) error) (Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := c.context()
	tmpCtx, commit := ctx.CacheContext()
	if err := fn(tmpCtx); err != nil {
		return Receipt{}, err
	}
	commit()

	return Receipt{
		Height: c.header.Height,
		Time:   c.header.Time,
		Events: ctx.EventManager().Events(),
	}, nil
}

// Query runs fn on a branch that is always discarded.
func (c *Chain) Query(fn func(ctx sdk.Context) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tmpCtx, _ := c.context().CacheContext()
	return fn(tmpCtx)
}

// Height returns the current block height.
func (c *Chain) Height() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header.Height
}

// Time returns the current block time.
func (c *Chain) Time() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header.Time
}

// NextBlock commits the current block and opens the next one, one block
// time later.
func (c *Chain) NextBlock() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextBlock()
}

func (c *Chain) nextBlock() {
	id := c.cms.Commit()
	c.header.Height++
	c.header.Time = c.header.Time.Add(c.params.BlockTime)
	c.header.AppHash = id.Hash
}

// AdvanceBlocks produces n empty blocks.
func (c *Chain) AdvanceBlocks(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i < n; i++ {
		c.nextBlock()
	}
}

// AdvanceTime moves the clock forward by d without producing blocks.
func (c *Chain) AdvanceTime(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header.Time = c.header.Time.Add(d)
}

// SetTime moves the clock to t. Time never goes backwards.
func (c *Chain) SetTime(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Before(c.header.Time) {
		return fmt.Errorf("cannot move %s clock back from %s to %s", c.params.ChainID, c.header.Time, t)
	}
	c.header.Time = t.UTC()
	return nil
}
