package keeper

import (
	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/utils"
	"github.com/pushchain/push-raffle-node/x/assets/types"
)

// Keeper holds the fungible token and NFT ledgers of one chain. Every token
// contract is identified by its address; balances are keyed by it.
type Keeper struct {
	logger log.Logger

	Schema        collections.Schema
	TokenBalances collections.Map[collections.Pair[common.Address, common.Address], math.Int] // (token, holder) -> balance
	TokenSupply   collections.Map[common.Address, math.Int]                                   // token -> total supply
	NFTOwners     collections.Map[collections.Pair[common.Address, uint64], common.Address]   // (collection, id) -> owner
	NFTURIs       collections.Map[collections.Pair[common.Address, uint64], string]           // (collection, id) -> uri
}

// NewKeeper creates a new assets Keeper instance
func NewKeeper(storeService storetypes.KVStoreService, logger log.Logger) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger: logger,
		TokenBalances: collections.NewMap(sb, types.TokenBalancesKey, types.TokenBalancesName,
			collections.PairKeyCodec(utils.AddressKey, utils.AddressKey), sdk.IntValue),
		TokenSupply: collections.NewMap(sb, types.TokenSupplyKey, types.TokenSupplyName, utils.AddressKey, sdk.IntValue),
		NFTOwners: collections.NewMap(sb, types.NFTOwnersKey, types.NFTOwnersName,
			collections.PairKeyCodec(utils.AddressKey, collections.Uint64Key), utils.JSONValue[common.Address]()),
		NFTURIs: collections.NewMap(sb, types.NFTURIsKey, types.NFTURIsName,
			collections.PairKeyCodec(utils.AddressKey, collections.Uint64Key), collections.StringValue),
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
