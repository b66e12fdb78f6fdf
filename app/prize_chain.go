package app

import (
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	accesskeeper "github.com/pushchain/push-raffle-node/x/access/keeper"
	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	assetskeeper "github.com/pushchain/push-raffle-node/x/assets/keeper"
	assetstypes "github.com/pushchain/push-raffle-node/x/assets/types"
	ccipkeeper "github.com/pushchain/push-raffle-node/x/ccip/keeper"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	nativekeeper "github.com/pushchain/push-raffle-node/x/native/keeper"
	nativetypes "github.com/pushchain/push-raffle-node/x/native/types"
	prizemanagerkeeper "github.com/pushchain/push-raffle-node/x/prizemanager/keeper"
	prizemanagertypes "github.com/pushchain/push-raffle-node/x/prizemanager/types"
)

// PrizeChain is the chain holding raffle prizes in custody.
type PrizeChain struct {
	*Chain

	LinkToken   common.Address
	RouterAddr  common.Address
	ManagerAddr common.Address
	Collection  common.Address // sample NFT collection
	PrizeToken  common.Address // sample fungible prize token

	Native       nativekeeper.Keeper
	Assets       assetskeeper.Keeper
	Router       ccipkeeper.Keeper
	Access       accesskeeper.Keeper
	Messenger    ccipkeeper.Messenger
	PrizeManager prizemanagerkeeper.Keeper
}

// NewPrizeChain deploys the router and the prize manager and runs genesis.
func NewPrizeChain(params NetworkParams, logger log.Logger) (*PrizeChain, error) {
	owner := prizemanagertypes.ModuleName
	chain, err := NewChain(params.Prize, params.GenesisTime, params.Admin, logger,
		nativetypes.StoreKey,
		assetstypes.StoreKey,
		cciptypes.StoreKey,
		accesstypes.StoreKey(owner),
		cciptypes.MessengerStoreKey(owner),
		prizemanagertypes.StoreKey,
	)
	if err != nil {
		return nil, err
	}

	c := &PrizeChain{Chain: chain}
	c.LinkToken = chain.Deploy()
	c.RouterAddr = chain.Deploy()
	c.ManagerAddr = chain.Deploy()
	c.Collection = chain.Deploy()
	c.PrizeToken = chain.Deploy()

	c.Native = nativekeeper.NewKeeper(chain.StoreService(nativetypes.StoreKey), chain.Logger())
	c.Assets = assetskeeper.NewKeeper(chain.StoreService(assetstypes.StoreKey), chain.Logger())
	c.Router = ccipkeeper.NewKeeper(chain.StoreService(cciptypes.StoreKey), chain.Logger(), c.RouterAddr, params.Prize.Selector, c.Assets)
	c.Access = accesskeeper.NewKeeper(chain.StoreService(accesstypes.StoreKey(owner)), chain.Logger(), owner)
	c.Messenger = ccipkeeper.NewMessenger(chain.StoreService(cciptypes.MessengerStoreKey(owner)), chain.Logger(),
		c.ManagerAddr, c.LinkToken, c.Router, c.Assets, c.Access)
	c.PrizeManager = prizemanagerkeeper.NewKeeper(chain.StoreService(prizemanagertypes.StoreKey), chain.Logger(),
		c.ManagerAddr, c.Access, c.Messenger, c.Native, c.Assets)
	c.Router.RegisterReceiver(c.ManagerAddr, c.PrizeManager)

	_, err = chain.Exec(func(ctx sdk.Context) error {
		routerParams := cciptypes.Params{FeeToken: c.LinkToken, BaseFee: params.LinkBaseFee, FeePerByte: params.LinkFeePerByte}
		if err := c.Router.InitGenesis(ctx, routerParams, params.Ticket.Selector); err != nil {
			return err
		}
		if err := c.Access.InitGenesis(ctx, params.Admin); err != nil {
			return err
		}
		if err := c.PrizeManager.SetCCIPExtraArgs(ctx, params.Admin, cciptypes.EncodeExtraArgsV1(params.ExtraArgsGas)); err != nil {
			return err
		}
		return c.Assets.MintTokens(ctx, c.LinkToken, c.ManagerAddr, params.LinkFunding)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
