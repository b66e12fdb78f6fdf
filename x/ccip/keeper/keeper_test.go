package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/push-raffle-node/testutils"
	accesskeeper "github.com/pushchain/push-raffle-node/x/access/keeper"
	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	assetskeeper "github.com/pushchain/push-raffle-node/x/assets/keeper"
	assetstypes "github.com/pushchain/push-raffle-node/x/assets/types"
	"github.com/pushchain/push-raffle-node/x/ccip/keeper"
	"github.com/pushchain/push-raffle-node/x/ccip/types"
)

const (
	localSelector  uint64 = 16015286601757825753
	remoteSelector uint64 = 14767482510784806043
	owner                 = "prizemanager"
)

var (
	routerAddr  = testutils.Addr(0x10)
	linkAddr    = testutils.Addr(0x11)
	contract    = testutils.Addr(0x12)
	counterpart = testutils.Addr(0x13)
)

type testFixture struct {
	ctx       sdk.Context
	k         keeper.Keeper
	messenger keeper.Messenger
	assets    assetskeeper.Keeper
	admin     common.Address
}

type recordingReceiver struct {
	calls []types.Any2EVMMessage
	fail  error
}

func (r *recordingReceiver) CCIPReceive(_ context.Context, _ common.Address, msg types.Any2EVMMessage) error {
	if r.fail != nil {
		return r.fail
	}
	r.calls = append(r.calls, msg)
	return nil
}

func SetupTest(t *testing.T) *testFixture {
	t.Helper()
	stores := testutils.NewTestStores(t,
		assetstypes.StoreKey, types.StoreKey, accesstypes.StoreKey(owner), types.MessengerStoreKey(owner))
	logger := log.NewTestLogger(t)

	f := &testFixture{ctx: stores.Ctx, admin: testutils.Addr(0xad)}
	f.assets = assetskeeper.NewKeeper(stores.Services[assetstypes.StoreKey], logger)
	f.k = keeper.NewKeeper(stores.Services[types.StoreKey], logger, routerAddr, localSelector, f.assets)

	access := accesskeeper.NewKeeper(stores.Services[accesstypes.StoreKey(owner)], logger, owner)
	require.NoError(t, access.InitGenesis(f.ctx, f.admin))
	f.messenger = keeper.NewMessenger(stores.Services[types.MessengerStoreKey(owner)], logger, contract, linkAddr, f.k, f.assets, access)

	require.NoError(t, f.k.InitGenesis(f.ctx, types.DefaultParams(linkAddr), remoteSelector))
	return f
}

func TestSendChargesFeeAndQueues(t *testing.T) {
	f := SetupTest(t)
	require.NoError(t, f.assets.MintTokens(f.ctx, linkAddr, contract, math.NewIntWithDecimal(1, 18)))

	id, err := f.messenger.SendMessage(f.ctx, counterpart, remoteSelector, types.PrizeLocked{RaffleID: 1})
	require.NoError(t, err)
	require.NotEqual(t, common.Hash{}, id)

	msgs, err := f.k.OutboxFrom(f.ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, id, msgs[0].MessageID)
	require.Equal(t, contract, msgs[0].Sender)
	require.Equal(t, counterpart, msgs[0].Receiver)
	require.Equal(t, remoteSelector, msgs[0].DestChainSelector)

	bal, err := f.assets.TokenBalance(f.ctx, linkAddr, routerAddr)
	require.NoError(t, err)
	require.Equal(t, types.DefaultParams(linkAddr).BaseFee.String(), bal.String())

	require.Len(t, testutils.EventsOfType(f.ctx, types.EventTypeSendRequested), 1)
}

func TestSendWithoutLink(t *testing.T) {
	f := SetupTest(t)

	_, err := f.messenger.SendMessage(f.ctx, counterpart, remoteSelector, types.PrizeLocked{RaffleID: 1})
	require.ErrorIs(t, err, types.ErrInsufficientLinkBalance)
}

func TestSendToUnknownLane(t *testing.T) {
	f := SetupTest(t)
	require.NoError(t, f.assets.MintTokens(f.ctx, linkAddr, contract, math.NewIntWithDecimal(1, 18)))

	_, err := f.messenger.SendMessage(f.ctx, counterpart, 42, types.PrizeLocked{RaffleID: 1})
	require.ErrorIs(t, err, types.ErrUnsupportedDestinationChain)
}

func TestExtraArgsPassThrough(t *testing.T) {
	f := SetupTest(t)
	require.NoError(t, f.assets.MintTokens(f.ctx, linkAddr, contract, math.NewIntWithDecimal(1, 18)))

	args := types.EncodeExtraArgsV1(300_000)
	require.ErrorIs(t, f.messenger.SetExtraArgs(f.ctx, testutils.Addr(1), args), accesstypes.ErrMissingRole)
	require.NoError(t, f.messenger.SetExtraArgs(f.ctx, f.admin, args))

	_, err := f.messenger.SendMessage(f.ctx, counterpart, remoteSelector, types.Cancel{RaffleID: 3})
	require.NoError(t, err)

	msg, found, err := f.k.GetOutboundMessage(f.ctx, 0)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, args, msg.ExtraArgs)
}

func TestRouteMessageOnce(t *testing.T) {
	f := SetupTest(t)
	recv := &recordingReceiver{}
	f.k.RegisterReceiver(contract, recv)

	msg := types.Any2EVMMessage{
		MessageID:           common.HexToHash("0x01"),
		SourceChainSelector: remoteSelector,
		Sender:              types.EncodeAddress(counterpart),
		Data:                types.PrizeLocked{RaffleID: 1}.Encode(),
	}
	require.NoError(t, f.k.RouteMessage(f.ctx, msg, contract))
	require.Len(t, recv.calls, 1)

	err := f.k.RouteMessage(f.ctx, msg, contract)
	require.ErrorIs(t, err, types.ErrMessageAlreadyExecuted)
	require.Len(t, recv.calls, 1)

	err = f.k.RouteMessage(f.ctx, types.Any2EVMMessage{MessageID: common.HexToHash("0x02")}, testutils.Addr(0x99))
	require.ErrorIs(t, err, types.ErrNoReceiver)
}

func TestValidateInbound(t *testing.T) {
	f := SetupTest(t)
	msg := types.Any2EVMMessage{
		MessageID:           common.HexToHash("0x01"),
		SourceChainSelector: remoteSelector,
		Sender:              types.EncodeAddress(counterpart),
		Data:                types.WinnerDrawn{RaffleID: 5, Winner: testutils.Addr(3)}.Encode(),
	}

	_, _, err := f.messenger.ValidateInbound(f.ctx, testutils.Addr(1), msg)
	require.ErrorIs(t, err, types.ErrInvalidRouter)

	_, _, err = f.messenger.ValidateInbound(f.ctx, routerAddr, msg)
	require.ErrorIs(t, err, types.ErrUnauthorizedCCIPSender)

	require.NoError(t, f.messenger.SetCounterpart(f.ctx, f.admin, counterpart, remoteSelector, true))
	sender, payload, err := f.messenger.ValidateInbound(f.ctx, routerAddr, msg)
	require.NoError(t, err)
	require.Equal(t, counterpart, sender)
	require.Equal(t, types.WinnerDrawn{RaffleID: 5, Winner: testutils.Addr(3)}, payload)

	// same sender on another chain is not trusted
	msg.SourceChainSelector = localSelector
	_, _, err = f.messenger.ValidateInbound(f.ctx, routerAddr, msg)
	require.ErrorIs(t, err, types.ErrUnauthorizedCCIPSender)

	require.NoError(t, f.messenger.SetCounterpart(f.ctx, f.admin, counterpart, remoteSelector, false))
	msg.SourceChainSelector = remoteSelector
	_, _, err = f.messenger.ValidateInbound(f.ctx, routerAddr, msg)
	require.ErrorIs(t, err, types.ErrUnauthorizedCCIPSender)
}
