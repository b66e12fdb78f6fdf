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
	ticketmanagerkeeper "github.com/pushchain/push-raffle-node/x/ticketmanager/keeper"
	ticketmanagertypes "github.com/pushchain/push-raffle-node/x/ticketmanager/types"
	ticketskeeper "github.com/pushchain/push-raffle-node/x/tickets/keeper"
	ticketstypes "github.com/pushchain/push-raffle-node/x/tickets/types"
	vrfkeeper "github.com/pushchain/push-raffle-node/x/vrf/keeper"
	vrftypes "github.com/pushchain/push-raffle-node/x/vrf/types"
)

// TicketChain is the chain where raffles run and tickets are sold.
type TicketChain struct {
	*Chain

	LinkToken       common.Address
	RouterAddr      common.Address
	CoordinatorAddr common.Address
	TicketAddr      common.Address
	ManagerAddr     common.Address
	SubscriptionID  uint64

	Native        nativekeeper.Keeper
	Assets        assetskeeper.Keeper
	Router        ccipkeeper.Keeper
	Coordinator   vrfkeeper.Keeper
	Tickets       ticketskeeper.Keeper
	Access        accesskeeper.Keeper
	Messenger     ccipkeeper.Messenger
	TicketManager ticketmanagerkeeper.Keeper
}

// NewTicketChain deploys the router, the randomness coordinator, the ticket
// ledger and the ticket manager, and runs genesis.
func NewTicketChain(params NetworkParams, logger log.Logger) (*TicketChain, error) {
	owner := ticketmanagertypes.ModuleName
	chain, err := NewChain(params.Ticket, params.GenesisTime, params.Admin, logger,
		nativetypes.StoreKey,
		assetstypes.StoreKey,
		cciptypes.StoreKey,
		vrftypes.StoreKey,
		ticketstypes.StoreKey,
		accesstypes.StoreKey(owner),
		cciptypes.MessengerStoreKey(owner),
		ticketmanagertypes.StoreKey,
	)
	if err != nil {
		return nil, err
	}

	c := &TicketChain{Chain: chain}
	c.LinkToken = chain.Deploy()
	c.RouterAddr = chain.Deploy()
	c.CoordinatorAddr = chain.Deploy()
	c.TicketAddr = chain.Deploy()
	c.ManagerAddr = chain.Deploy()

	c.Native = nativekeeper.NewKeeper(chain.StoreService(nativetypes.StoreKey), chain.Logger())
	c.Assets = assetskeeper.NewKeeper(chain.StoreService(assetstypes.StoreKey), chain.Logger())
	c.Router = ccipkeeper.NewKeeper(chain.StoreService(cciptypes.StoreKey), chain.Logger(), c.RouterAddr, params.Ticket.Selector, c.Assets)
	c.Coordinator = vrfkeeper.NewKeeper(chain.StoreService(vrftypes.StoreKey), chain.Logger(), c.CoordinatorAddr)
	c.Tickets = ticketskeeper.NewKeeper(chain.StoreService(ticketstypes.StoreKey), chain.Logger(), c.TicketAddr, c.Native)
	c.Access = accesskeeper.NewKeeper(chain.StoreService(accesstypes.StoreKey(owner)), chain.Logger(), owner)
	c.Messenger = ccipkeeper.NewMessenger(chain.StoreService(cciptypes.MessengerStoreKey(owner)), chain.Logger(),
		c.ManagerAddr, c.LinkToken, c.Router, c.Assets, c.Access)
	c.TicketManager = ticketmanagerkeeper.NewKeeper(chain.StoreService(ticketmanagertypes.StoreKey), chain.Logger(),
		c.ManagerAddr, params.VRFTimeout, c.Access, c.Messenger, c.Tickets, c.Native, c.Assets, c.Coordinator)
	c.Router.RegisterReceiver(c.ManagerAddr, c.TicketManager)
	c.Coordinator.RegisterConsumer(c.ManagerAddr, c.TicketManager)

	_, err = chain.Exec(func(ctx sdk.Context) error {
		routerParams := cciptypes.Params{FeeToken: c.LinkToken, BaseFee: params.LinkBaseFee, FeePerByte: params.LinkFeePerByte}
		if err := c.Router.InitGenesis(ctx, routerParams, params.Prize.Selector); err != nil {
			return err
		}
		if err := c.Coordinator.InitGenesis(ctx, vrftypes.DefaultParams()); err != nil {
			return err
		}
		subID, err := c.Coordinator.CreateSubscription(ctx, params.Admin)
		if err != nil {
			return err
		}
		if err := c.Coordinator.AddConsumer(ctx, params.Admin, subID, c.ManagerAddr); err != nil {
			return err
		}
		c.SubscriptionID = subID

		if err := c.Tickets.InitGenesis(ctx, ticketstypes.Config{Manager: c.ManagerAddr, Owner: params.Admin, URI: params.TicketURI}); err != nil {
			return err
		}
		if err := c.Access.InitGenesis(ctx, params.Admin); err != nil {
			return err
		}
		if err := c.TicketManager.InitGenesis(ctx, ticketmanagertypes.VRFConfig{
			KeyHash:              params.VRFKeyHash,
			SubscriptionID:       subID,
			RequestConfirmations: params.VRFConfirmations,
			CallbackGasLimit:     params.VRFCallbackGasLimit,
		}); err != nil {
			return err
		}
		if err := c.TicketManager.SetRole(ctx, params.Admin, params.Signer, accesstypes.RoleUtility, true); err != nil {
			return err
		}
		if err := c.TicketManager.SetCCIPExtraArgs(ctx, params.Admin, cciptypes.EncodeExtraArgsV1(params.ExtraArgsGas)); err != nil {
			return err
		}
		return c.Assets.MintTokens(ctx, c.LinkToken, c.ManagerAddr, params.LinkFunding)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
