package testutils

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	corestore "cosmossdk.io/core/store"
)

// GenesisTime is the block time every test context starts from.
var GenesisTime = time.Unix(1_700_000_000, 0).UTC()

// TestStores holds a context over a fresh multistore and one KVStoreService
// per mounted store name.
type TestStores struct {
	Ctx      sdk.Context
	Services map[string]corestore.KVStoreService
}

// NewTestStores mounts one IAVL store per name on an in-memory multistore and
// returns a context at height 1 and GenesisTime.
func NewTestStores(t testing.TB, names ...string) TestStores {
	t.Helper()

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())

	services := make(map[string]corestore.KVStoreService, len(names))
	for _, name := range names {
		key := storetypes.NewKVStoreKey(name)
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
		services[name] = runtime.NewKVStoreService(key)
	}
	require.NoError(t, cms.LoadLatestVersion())

	header := cmtproto.Header{ChainID: "test-chain", Height: 1, Time: GenesisTime}
	ctx := sdk.NewContext(cms, header, false, log.NewTestLogger(t))

	return TestStores{Ctx: ctx, Services: services}
}

// EventsOfType returns the events of the given type emitted on ctx so far.
func EventsOfType(ctx sdk.Context, eventType string) []sdk.Event {
	var out []sdk.Event
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// Attribute returns the value of key in ev, or "" when absent.
func Attribute(ev sdk.Event, key string) string {
	for _, attr := range ev.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}
