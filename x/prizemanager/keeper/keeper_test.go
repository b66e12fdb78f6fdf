package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/push-raffle-node/testutils"
	"github.com/pushchain/push-raffle-node/utils"
	accesskeeper "github.com/pushchain/push-raffle-node/x/access/keeper"
	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	assetskeeper "github.com/pushchain/push-raffle-node/x/assets/keeper"
	assetstypes "github.com/pushchain/push-raffle-node/x/assets/types"
	ccipkeeper "github.com/pushchain/push-raffle-node/x/ccip/keeper"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	nativekeeper "github.com/pushchain/push-raffle-node/x/native/keeper"
	nativetypes "github.com/pushchain/push-raffle-node/x/native/types"
	"github.com/pushchain/push-raffle-node/x/prizemanager/keeper"
	"github.com/pushchain/push-raffle-node/x/prizemanager/types"
)

const (
	localSelector  uint64 = 16015286601757825753
	remoteSelector uint64 = 14767482510784806043
)

var (
	managerAddr = testutils.Addr(0x40)
	routerAddr  = testutils.Addr(0x41)
	linkAddr    = testutils.Addr(0x42)
	nftAddr     = testutils.Addr(0x43)
	tokenAddr   = testutils.Addr(0x44)
	counterpart = testutils.Addr(0x45)
	admin       = testutils.Addr(0xad)
	winner      = testutils.Addr(0xa1)
	stranger    = testutils.Addr(0xb0)
)

type testFixture struct {
	ctx    sdk.Context
	k      keeper.Keeper
	router ccipkeeper.Keeper
	native nativekeeper.Keeper
	assets assetskeeper.Keeper
	nonce  uint64
}

func SetupTest(t *testing.T) *testFixture {
	t.Helper()
	stores := testutils.NewTestStores(t,
		nativetypes.StoreKey, assetstypes.StoreKey, cciptypes.StoreKey,
		accesstypes.StoreKey(types.ModuleName), cciptypes.MessengerStoreKey(types.ModuleName), types.StoreKey)
	logger := log.NewTestLogger(t)

	f := &testFixture{ctx: stores.Ctx}
	f.native = nativekeeper.NewKeeper(stores.Services[nativetypes.StoreKey], logger)
	f.assets = assetskeeper.NewKeeper(stores.Services[assetstypes.StoreKey], logger)
	f.router = ccipkeeper.NewKeeper(stores.Services[cciptypes.StoreKey], logger, routerAddr, localSelector, f.assets)
	require.NoError(t, f.router.InitGenesis(f.ctx, cciptypes.DefaultParams(linkAddr), remoteSelector))

	access := accesskeeper.NewKeeper(stores.Services[accesstypes.StoreKey(types.ModuleName)], logger, types.ModuleName)
	require.NoError(t, access.InitGenesis(f.ctx, admin))
	messenger := ccipkeeper.NewMessenger(stores.Services[cciptypes.MessengerStoreKey(types.ModuleName)], logger,
		managerAddr, linkAddr, f.router, f.assets, access)

	f.k = keeper.NewKeeper(stores.Services[types.StoreKey], logger, managerAddr, access, messenger, f.native, f.assets)
	return f
}

func (f *testFixture) fundLink(t *testing.T) {
	t.Helper()
	require.NoError(t, f.assets.MintTokens(f.ctx, linkAddr, managerAddr, math.NewIntWithDecimal(100, 18)))
}

func (f *testFixture) depositNFT(t *testing.T, tokenID uint64) {
	t.Helper()
	require.NoError(t, f.assets.MintNFT(f.ctx, nftAddr, managerAddr, tokenID))
}

func (f *testFixture) inbound(p cciptypes.Payload) cciptypes.Any2EVMMessage {
	f.nonce++
	return cciptypes.Any2EVMMessage{
		MessageID:           common.BytesToHash([]byte{byte(f.nonce)}),
		SourceChainSelector: remoteSelector,
		Sender:              cciptypes.EncodeAddress(counterpart),
		Data:                p.Encode(),
	}
}

func (f *testFixture) trustCounterpart(t *testing.T) {
	t.Helper()
	require.NoError(t, f.k.SetCCIPCounterpart(f.ctx, admin, counterpart, remoteSelector, true))
}

func TestLockPreconditions(t *testing.T) {
	f := SetupTest(t)

	err := f.k.LockNFT(f.ctx, stranger, counterpart, remoteSelector, 1, nftAddr, 1)
	require.ErrorIs(t, err, accesstypes.ErrMissingRole)

	err = f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 0, nftAddr, 1)
	require.ErrorIs(t, err, types.ErrIllegalRaffleId)

	err = f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1)
	require.ErrorIs(t, err, types.ErrInvalidPrize)

	err = f.k.LockETH(f.ctx, admin, counterpart, remoteSelector, 1, utils.Ether(1))
	require.ErrorIs(t, err, types.ErrInvalidPrize)

	err = f.k.LockTokens(f.ctx, admin, counterpart, remoteSelector, 1, tokenAddr, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrInvalidPrize)

	f.depositNFT(t, 1)
	err = f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1)
	require.ErrorIs(t, err, cciptypes.ErrInsufficientLinkBalance)

	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.PrizeStatusNone, r.Status)
}

func TestLockNFT(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	f.depositNFT(t, 1)

	require.NoError(t, f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1))

	info, err := f.k.GetNFTRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.NFTInfo{Contract: nftAddr, TokenID: 1}, info)
	_, err = f.k.GetETHRaffle(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)
	_, err = f.k.GetTokenRaffle(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.RaffleTypeNFT, r.Type)
	require.Equal(t, types.PrizeStatusLocked, r.Status)
	require.Equal(t, common.Address{}, r.Winner)

	msgs, err := f.router.OutboxFrom(f.ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	payload, err := cciptypes.DecodePayload(msgs[0].Data)
	require.NoError(t, err)
	require.Equal(t, cciptypes.PrizeLocked{RaffleID: 1}, payload)
	require.Equal(t, counterpart, msgs[0].Receiver)

	err = f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffleId)

	err = f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 2, nftAddr, 1)
	require.ErrorIs(t, err, types.ErrInvalidPrize)

	err = f.k.WithdrawNFT(f.ctx, admin, nftAddr, 1)
	require.ErrorIs(t, err, types.ErrNFTLocked)
}

func TestInboundValidation(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	f.depositNFT(t, 1)
	require.NoError(t, f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1))

	err := f.k.CCIPReceive(f.ctx, stranger, f.inbound(cciptypes.Cancel{RaffleID: 1}))
	require.ErrorIs(t, err, cciptypes.ErrInvalidRouter)

	err = f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.Cancel{RaffleID: 1}))
	require.ErrorIs(t, err, cciptypes.ErrUnauthorizedCCIPSender)

	f.trustCounterpart(t)
	err = f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.PrizeLocked{RaffleID: 1}))
	require.ErrorIs(t, err, cciptypes.ErrUnsupportedMessage)

	msg := f.inbound(cciptypes.Cancel{RaffleID: 1})
	msg.Data = []byte{0x03}
	err = f.k.CCIPReceive(f.ctx, routerAddr, msg)
	require.ErrorIs(t, err, cciptypes.ErrUnknownOpcode)
}

func TestCancelUnlocksNFT(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	f.depositNFT(t, 1)
	require.NoError(t, f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1))
	f.trustCounterpart(t)

	err := f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.Cancel{RaffleID: 7}))
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	require.NoError(t, f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.Cancel{RaffleID: 1})))
	require.Len(t, testutils.EventsOfType(f.ctx, types.EventTypePrizeUnlocked), 1)

	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.PrizeStatusUnlocked, r.Status)

	err = f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.Cancel{RaffleID: 1}))
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	err = f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.WinnerDrawn{RaffleID: 1, Winner: winner}))
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	err = f.k.ClaimPrize(f.ctx, winner, 1)
	require.ErrorIs(t, err, types.ErrUnauthorizedToClaim)

	require.NoError(t, f.k.WithdrawNFT(f.ctx, admin, nftAddr, 1))
	owner, err := f.assets.OwnerOfNFT(f.ctx, nftAddr, 1)
	require.NoError(t, err)
	require.Equal(t, admin, owner)
}

func TestCancelUnlocksETH(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	require.NoError(t, f.native.Mint(f.ctx, managerAddr, utils.Ether(1)))
	require.NoError(t, f.k.LockETH(f.ctx, admin, counterpart, remoteSelector, 2, utils.Ether(1)))

	err := f.k.WithdrawETH(f.ctx, admin, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)

	f.trustCounterpart(t)
	require.NoError(t, f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.Cancel{RaffleID: 2})))

	locked, err := f.k.GetLockedETH(f.ctx)
	require.NoError(t, err)
	require.True(t, locked.IsZero())

	contract := testutils.Addr(0xcc)
	require.NoError(t, f.native.SetAccountTraits(f.ctx, contract, nativetypes.Contract(false, false)))
	require.NoError(t, f.k.SetRole(f.ctx, admin, contract, accesstypes.RoleAdmin, true))
	err = f.k.WithdrawETH(f.ctx, contract, utils.Ether(1))
	require.ErrorIs(t, err, types.ErrETHTransferFail)

	require.NoError(t, f.k.WithdrawETH(f.ctx, admin, utils.Ether(1)))
	bal, err := f.native.GetBalance(f.ctx, admin)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(1).String(), bal.String())
}

func TestClaimNFT(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	f.depositNFT(t, 1)
	require.NoError(t, f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1))
	f.trustCounterpart(t)

	err := f.k.ClaimPrize(f.ctx, winner, 1)
	require.ErrorIs(t, err, types.ErrUnauthorizedToClaim)
	err = f.k.ClaimPrize(f.ctx, winner, 5)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	require.NoError(t, f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.WinnerDrawn{RaffleID: 1, Winner: winner})))
	got, err := f.k.GetWinner(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, winner, got)

	err = f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.WinnerDrawn{RaffleID: 1, Winner: stranger}))
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	err = f.k.ClaimPrize(f.ctx, stranger, 1)
	require.ErrorIs(t, err, types.ErrUnauthorizedToClaim)

	require.NoError(t, f.k.ClaimPrize(f.ctx, winner, 1))
	owner, err := f.assets.OwnerOfNFT(f.ctx, nftAddr, 1)
	require.NoError(t, err)
	require.Equal(t, winner, owner)

	events := testutils.EventsOfType(f.ctx, types.EventTypePrizeClaimed)
	require.Len(t, events, 1)
	require.Equal(t, winner.Hex(), testutils.Attribute(events[0], types.AttributeKeyWinner))

	err = f.k.ClaimPrize(f.ctx, winner, 1)
	require.ErrorIs(t, err, types.ErrAlreadyClaimed)

	locked, err := f.k.IsNFTLocked(f.ctx, nftAddr, 1)
	require.NoError(t, err)
	require.False(t, locked)
}

func TestClaimETHToNonReceiver(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	require.NoError(t, f.native.Mint(f.ctx, managerAddr, utils.Ether(1)))
	require.NoError(t, f.k.LockETH(f.ctx, admin, counterpart, remoteSelector, 2, utils.Ether(1)))
	f.trustCounterpart(t)

	contract := testutils.Addr(0xcc)
	require.NoError(t, f.native.SetAccountTraits(f.ctx, contract, nativetypes.Contract(false, false)))
	require.NoError(t, f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.WinnerDrawn{RaffleID: 2, Winner: contract})))

	err := f.k.ClaimPrize(f.ctx, contract, 2)
	require.ErrorIs(t, err, types.ErrETHTransferFail)

	r, err := f.k.GetRaffle(f.ctx, 2)
	require.NoError(t, err)
	require.Equal(t, types.PrizeStatusWinnerDrawn, r.Status)

	// the contract becomes payable and retries
	require.NoError(t, f.native.SetAccountTraits(f.ctx, contract, nativetypes.Contract(true, false)))
	require.NoError(t, f.k.ClaimPrize(f.ctx, contract, 2))
	bal, err := f.native.GetBalance(f.ctx, contract)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(1).String(), bal.String())
}

func TestClaimTokens(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	require.NoError(t, f.assets.MintTokens(f.ctx, tokenAddr, managerAddr, math.NewInt(150)))
	require.NoError(t, f.k.LockTokens(f.ctx, admin, counterpart, remoteSelector, 3, tokenAddr, math.NewInt(100)))

	err := f.k.LockTokens(f.ctx, admin, counterpart, remoteSelector, 4, tokenAddr, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrInvalidPrize)

	err = f.k.WithdrawTokens(f.ctx, admin, tokenAddr, math.NewInt(51))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	require.NoError(t, f.k.WithdrawTokens(f.ctx, admin, tokenAddr, math.NewInt(50)))

	f.trustCounterpart(t)
	require.NoError(t, f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.WinnerDrawn{RaffleID: 3, Winner: winner})))
	require.NoError(t, f.k.ClaimPrize(f.ctx, winner, 3))

	bal, err := f.assets.TokenBalance(f.ctx, tokenAddr, winner)
	require.NoError(t, err)
	require.Equal(t, "100", bal.String())

	r, err := f.k.GetRaffle(f.ctx, 3)
	require.NoError(t, err)
	require.Equal(t, types.RaffleTypeToken, r.Type)
	require.Equal(t, types.PrizeStatusClaimed, r.Status)
	require.Equal(t, winner, r.Winner)
}

func TestLockLinkKeepsFeeOutOfPrize(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	all := math.NewIntWithDecimal(100, 18)

	err := f.k.LockTokens(f.ctx, admin, counterpart, remoteSelector, 1, linkAddr, all)
	require.ErrorIs(t, err, cciptypes.ErrInsufficientLinkBalance)
	_, err = f.k.GetTokenRaffle(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	prize := math.NewIntWithDecimal(99, 18)
	require.NoError(t, f.k.LockTokens(f.ctx, admin, counterpart, remoteSelector, 1, linkAddr, prize))

	// a second lock may only spend LINK that backs no prize
	f.depositNFT(t, 1)
	require.NoError(t, f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 2, nftAddr, 1))

	bal, err := f.assets.TokenBalance(f.ctx, linkAddr, managerAddr)
	require.NoError(t, err)
	locked, err := f.k.GetLockedTokens(f.ctx, linkAddr)
	require.NoError(t, err)
	require.Equal(t, prize.String(), locked.String())
	require.True(t, bal.GTE(locked), "balance %s below locked %s", bal, locked)

	require.NoError(t, f.assets.TransferTokens(f.ctx, linkAddr, managerAddr, stranger, bal.Sub(locked)))
	f.depositNFT(t, 2)
	err = f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 3, nftAddr, 2)
	require.ErrorIs(t, err, cciptypes.ErrInsufficientLinkBalance)
}

func TestWithdrawRejectsNonPositiveAmount(t *testing.T) {
	f := SetupTest(t)
	require.NoError(t, f.native.Mint(f.ctx, managerAddr, utils.Ether(1)))
	require.NoError(t, f.assets.MintTokens(f.ctx, tokenAddr, managerAddr, math.NewInt(10)))

	for _, amount := range []math.Int{{}, math.ZeroInt(), math.NewInt(-1)} {
		err := f.k.WithdrawETH(f.ctx, admin, amount)
		require.ErrorIs(t, err, types.ErrInvalidAmount)
		err = f.k.WithdrawTokens(f.ctx, admin, tokenAddr, amount)
		require.ErrorIs(t, err, types.ErrInvalidAmount)
	}

	err := f.k.WithdrawETH(f.ctx, stranger, math.Int{})
	require.ErrorIs(t, err, accesstypes.ErrMissingRole)
}

func TestInboundOnlyFromAnnouncedCounterpart(t *testing.T) {
	f := SetupTest(t)
	f.fundLink(t)
	f.depositNFT(t, 1)
	require.NoError(t, f.k.LockNFT(f.ctx, admin, counterpart, remoteSelector, 1, nftAddr, 1))
	f.trustCounterpart(t)

	other := testutils.Addr(0x46)
	require.NoError(t, f.k.SetCCIPCounterpart(f.ctx, admin, other, remoteSelector, true))

	for _, p := range []cciptypes.Payload{
		cciptypes.Cancel{RaffleID: 1},
		cciptypes.WinnerDrawn{RaffleID: 1, Winner: stranger},
	} {
		msg := f.inbound(p)
		msg.Sender = cciptypes.EncodeAddress(other)
		err := f.k.CCIPReceive(f.ctx, routerAddr, msg)
		require.ErrorIs(t, err, cciptypes.ErrUnauthorizedCCIPSender)
	}

	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.PrizeStatusLocked, r.Status)

	require.NoError(t, f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.WinnerDrawn{RaffleID: 1, Winner: winner})))
	got, err := f.k.GetWinner(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, winner, got)
}
