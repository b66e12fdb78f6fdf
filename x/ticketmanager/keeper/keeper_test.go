package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
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
	"github.com/pushchain/push-raffle-node/x/ticketmanager/keeper"
	"github.com/pushchain/push-raffle-node/x/ticketmanager/types"
	ticketskeeper "github.com/pushchain/push-raffle-node/x/tickets/keeper"
	ticketstypes "github.com/pushchain/push-raffle-node/x/tickets/types"
	vrfkeeper "github.com/pushchain/push-raffle-node/x/vrf/keeper"
	vrftypes "github.com/pushchain/push-raffle-node/x/vrf/types"
)

const (
	localSelector  uint64 = 14767482510784806043
	remoteSelector uint64 = 16015286601757825753
	timeout        int64  = types.DefaultVRFTimeout
)

var (
	managerAddr     = testutils.Addr(0x50)
	routerAddr      = testutils.Addr(0x51)
	linkAddr        = testutils.Addr(0x52)
	ticketAddr      = testutils.Addr(0x53)
	coordinatorAddr = testutils.Addr(0x54)
	tokenAddr       = testutils.Addr(0x55)
	prizeManager    = testutils.Addr(0x56)
	admin           = testutils.Addr(0xad)
	stranger        = testutils.Addr(0xb0)
	keyHash         = common.HexToHash("0x787d74caea10b2b357790d5b5247c2f63d1d91572a9846f780606e4d953677ae")

	signer   = testutils.MustAccount(testutils.SignerKeyHex)
	buyerOne = testutils.MustAccount(testutils.BuyerOneHex)
	buyerTwo = testutils.MustAccount(testutils.BuyerTwoHex)
)

type testFixture struct {
	ctx     sdk.Context
	k       keeper.Keeper
	router  ccipkeeper.Keeper
	native  nativekeeper.Keeper
	assets  assetskeeper.Keeper
	tickets ticketskeeper.Keeper
	vrf     vrfkeeper.Keeper
	nonce   uint64
}

func SetupTest(t *testing.T) *testFixture {
	t.Helper()
	stores := testutils.NewTestStores(t,
		nativetypes.StoreKey, assetstypes.StoreKey, cciptypes.StoreKey, ticketstypes.StoreKey, vrftypes.StoreKey,
		accesstypes.StoreKey(types.ModuleName), cciptypes.MessengerStoreKey(types.ModuleName), types.StoreKey)
	logger := log.NewTestLogger(t)

	f := &testFixture{ctx: stores.Ctx}
	f.native = nativekeeper.NewKeeper(stores.Services[nativetypes.StoreKey], logger)
	f.assets = assetskeeper.NewKeeper(stores.Services[assetstypes.StoreKey], logger)
	f.router = ccipkeeper.NewKeeper(stores.Services[cciptypes.StoreKey], logger, routerAddr, localSelector, f.assets)
	require.NoError(t, f.router.InitGenesis(f.ctx, cciptypes.DefaultParams(linkAddr), remoteSelector))

	f.tickets = ticketskeeper.NewKeeper(stores.Services[ticketstypes.StoreKey], logger, ticketAddr, f.native)
	require.NoError(t, f.tickets.InitGenesis(f.ctx, ticketstypes.Config{Manager: managerAddr, Owner: admin}))

	f.vrf = vrfkeeper.NewKeeper(stores.Services[vrftypes.StoreKey], logger, coordinatorAddr)
	require.NoError(t, f.vrf.InitGenesis(f.ctx, vrftypes.DefaultParams()))
	subID, err := f.vrf.CreateSubscription(f.ctx, admin)
	require.NoError(t, err)
	require.NoError(t, f.vrf.AddConsumer(f.ctx, admin, subID, managerAddr))

	access := accesskeeper.NewKeeper(stores.Services[accesstypes.StoreKey(types.ModuleName)], logger, types.ModuleName)
	require.NoError(t, access.InitGenesis(f.ctx, admin))
	messenger := ccipkeeper.NewMessenger(stores.Services[cciptypes.MessengerStoreKey(types.ModuleName)], logger,
		managerAddr, linkAddr, f.router, f.assets, access)

	f.k = keeper.NewKeeper(stores.Services[types.StoreKey], logger, managerAddr, timeout,
		access, messenger, f.tickets, f.native, f.assets, f.vrf)
	require.NoError(t, f.k.InitGenesis(f.ctx, types.VRFConfig{
		KeyHash:              keyHash,
		SubscriptionID:       subID,
		RequestConfirmations: 3,
		CallbackGasLimit:     100_000,
	}))
	f.vrf.RegisterConsumer(managerAddr, f.k)

	require.NoError(t, f.k.SetRole(f.ctx, admin, signer.Address, accesstypes.RoleUtility, true))
	require.NoError(t, f.k.SetCCIPCounterpart(f.ctx, admin, prizeManager, remoteSelector, true))
	require.NoError(t, f.assets.MintTokens(f.ctx, linkAddr, managerAddr, math.NewIntWithDecimal(100, 18)))
	require.NoError(t, f.native.Mint(f.ctx, buyerOne.Address, utils.Ether(100)))
	require.NoError(t, f.native.Mint(f.ctx, buyerTwo.Address, utils.Ether(100)))
	return f
}

func (f *testFixture) now() int64 {
	return f.ctx.BlockTime().Unix()
}

// advance moves the chain forward by blocks blocks and secs seconds.
func (f *testFixture) advance(blocks, secs int64) {
	f.ctx = f.ctx.
		WithBlockHeight(f.ctx.BlockHeight() + blocks).
		WithBlockTime(f.ctx.BlockTime().Add(time.Duration(secs) * time.Second))
}

func (f *testFixture) inbound(p cciptypes.Payload) cciptypes.Any2EVMMessage {
	f.nonce++
	return cciptypes.Any2EVMMessage{
		MessageID:           common.BytesToHash([]byte{byte(f.nonce)}),
		SourceChainSelector: remoteSelector,
		Sender:              cciptypes.EncodeAddress(prizeManager),
		Data:                p.Encode(),
	}
}

func (f *testFixture) lockPrize(t *testing.T, raffleID uint64) {
	t.Helper()
	require.NoError(t, f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.PrizeLocked{RaffleID: raffleID})))
}

// openRaffle locks and creates raffleID, open for an hour from now.
func (f *testFixture) openRaffle(t *testing.T, raffleID, minTickets, supply, holdings uint64) types.Raffle {
	t.Helper()
	f.lockPrize(t, raffleID)
	require.NoError(t, f.k.CreateRaffle(f.ctx, admin, raffleID, 0, f.now()+3600, minTickets, supply, holdings))
	r, err := f.k.GetRaffle(f.ctx, raffleID)
	require.NoError(t, err)
	return r
}

func (f *testFixture) coupon(t *testing.T, buyer common.Address, raffleID uint64, count uint16, value math.Int) (types.Coupon, []byte) {
	t.Helper()
	nonce, err := f.k.GetNonce(f.ctx, buyer)
	require.NoError(t, err)
	c := types.Coupon{
		Buyer:       buyer,
		Nonce:       nonce,
		RaffleID:    raffleID,
		Count:       count,
		ExpiryBlock: uint64(f.ctx.BlockHeight()) + 10,
		Value:       value,
	}
	sig, err := c.Sign(signer.Key)
	require.NoError(t, err)
	return c, sig
}

func (f *testFixture) buy(t *testing.T, buyer common.Address, raffleID uint64, count uint16, value math.Int) uint64 {
	t.Helper()
	c, sig := f.coupon(t, buyer, raffleID, count, value)
	start, err := f.k.BuyTickets(f.ctx, buyer, raffleID, count, c.ExpiryBlock, value, sig)
	require.NoError(t, err)
	return start
}

func (f *testFixture) outbox(t *testing.T) []cciptypes.Payload {
	t.Helper()
	msgs, err := f.router.OutboxFrom(f.ctx, 0, 0)
	require.NoError(t, err)
	out := make([]cciptypes.Payload, 0, len(msgs))
	for _, m := range msgs {
		p, err := cciptypes.DecodePayload(m.Data)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestReceivePrizeLocked(t *testing.T) {
	f := SetupTest(t)

	err := f.k.CCIPReceive(f.ctx, stranger, f.inbound(cciptypes.PrizeLocked{RaffleID: 1}))
	require.ErrorIs(t, err, cciptypes.ErrInvalidRouter)

	f.lockPrize(t, 1)
	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.RaffleStatusPrizeLocked, r.Status)
	require.Equal(t, types.Counterpart{Address: prizeManager, ChainSelector: remoteSelector}, r.Origin)

	evs := testutils.EventsOfType(f.ctx, types.EventTypeRafflePrizeLocked)
	require.Len(t, evs, 1)
	require.Equal(t, "1", testutils.Attribute(evs[0], types.AttributeKeyRaffleID))

	err = f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.PrizeLocked{RaffleID: 1}))
	require.ErrorIs(t, err, types.ErrInvalidRaffleStatus)

	err = f.k.CCIPReceive(f.ctx, routerAddr, f.inbound(cciptypes.Cancel{RaffleID: 1}))
	require.ErrorIs(t, err, cciptypes.ErrUnsupportedMessage)
	require.False(t, cciptypes.ErrUnknownOpcode.Is(err))
}

func TestCreateRaffleValidation(t *testing.T) {
	f := SetupTest(t)
	end := f.now() + 3600

	err := f.k.CreateRaffle(f.ctx, admin, 1, 0, end, 0, 10, 5)
	require.ErrorIs(t, err, types.ErrPrizeNotLocked)

	f.lockPrize(t, 1)

	err = f.k.CreateRaffle(f.ctx, stranger, 1, 0, end, 0, 10, 5)
	require.ErrorIs(t, err, accesstypes.ErrMissingRole)

	err = f.k.CreateRaffle(f.ctx, admin, 1, 0, f.now()+types.MinRaffleDuration-1, 0, 10, 5)
	require.ErrorIs(t, err, types.ErrRaffleClosingTooSoon)

	err = f.k.CreateRaffle(f.ctx, admin, 1, 0, end, 0, 0, 5)
	require.ErrorIs(t, err, types.ErrRaffleRequiresTicketSupplyCap)

	err = f.k.CreateRaffle(f.ctx, admin, 1, 0, end, 0, 10, 0)
	require.ErrorIs(t, err, types.ErrRaffleRequiresMaxHoldings)

	err = f.k.CreateRaffle(f.ctx, admin, 1, 0, end, 11, 10, 5)
	require.ErrorIs(t, err, types.ErrRaffleWontDraw)

	require.NoError(t, f.k.CreateRaffle(f.ctx, admin, 1, f.now()-100, end, 10, 10, 5))
	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.RaffleStatusIdle, r.Status)
	require.Equal(t, f.now(), r.StartTime)
	require.Equal(t, end, r.EndTime)
	require.Equal(t, "0", r.TotalRaised.String())

	err = f.k.CreateRaffle(f.ctx, admin, 1, 0, end, 0, 10, 5)
	require.ErrorIs(t, err, types.ErrPrizeNotLocked)
}

func TestBuyTickets(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 10, 5)

	start := f.buy(t, buyerOne.Address, 1, 3, utils.Ether(3))
	require.Equal(t, uint64(0), start)
	start = f.buy(t, buyerTwo.Address, 1, 2, math.ZeroInt())
	require.Equal(t, uint64(3), start)

	p, err := f.k.GetParticipation(f.ctx, 1, buyerOne.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(3), p.TotalPurchased)
	require.Equal(t, utils.Ether(3).String(), p.TotalSpent.String())

	nonce, err := f.k.GetNonce(f.ctx, buyerOne.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(1), nonce)

	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(3).String(), r.TotalRaised.String())
	locked, err := f.k.GetLockedETH(f.ctx)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(3).String(), locked.String())

	bal, err := f.native.GetBalance(f.ctx, buyerOne.Address)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(97).String(), bal.String())

	for n := uint64(0); n < 5; n++ {
		owner, err := f.tickets.OwnerOf(f.ctx, 1, n)
		require.NoError(t, err)
		if n < 3 {
			require.Equal(t, buyerOne.Address, owner)
		} else {
			require.Equal(t, buyerTwo.Address, owner)
		}
	}

	evs := testutils.EventsOfType(f.ctx, types.EventTypeTicketsBought)
	require.Len(t, evs, 2)
	require.Equal(t, buyerTwo.Address.Hex(), testutils.Attribute(evs[1], types.AttributeKeyBuyer))
}

func TestBuyTicketsAdmission(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 10, 5)
	one := buyerOne.Address

	try := func(count uint16, value math.Int) error {
		c, sig := f.coupon(t, one, 1, count, value)
		_, err := f.k.BuyTickets(f.ctx, one, 1, count, c.ExpiryBlock, value, sig)
		return err
	}

	require.ErrorIs(t, try(0, math.ZeroInt()), types.ErrInvalidTicketCount)
	require.ErrorIs(t, try(11, math.ZeroInt()), types.ErrMaxTicketExceed)
	require.ErrorIs(t, try(6, math.ZeroInt()), types.ErrTooManyTickets)
	require.ErrorIs(t, try(1, math.NewInt(-1)), types.ErrInvalidPayment)

	c, sig := f.coupon(t, one, 1, 1, math.ZeroInt())
	_, err := f.k.BuyTickets(f.ctx, one, 1, 1, uint64(f.ctx.BlockHeight())-1, math.ZeroInt(), sig)
	require.ErrorIs(t, err, types.ErrExpiredCoupon)

	// amount differs from the signed one
	_, err = f.k.BuyTickets(f.ctx, one, 1, 1, c.ExpiryBlock, utils.Ether(1), sig)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = f.k.BuyTickets(f.ctx, one, 1, 1, c.ExpiryBlock, math.ZeroInt(), sig[:64])
	require.ErrorIs(t, err, types.ErrUnauthorized)

	forged, err := c.Sign(buyerOne.Key)
	require.NoError(t, err)
	_, err = f.k.BuyTickets(f.ctx, one, 1, 1, c.ExpiryBlock, math.ZeroInt(), forged)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = f.k.BuyTickets(f.ctx, one, 1, 1, c.ExpiryBlock, math.ZeroInt(), sig)
	require.NoError(t, err)
	// the nonce moved on, so the same coupon no longer verifies
	_, err = f.k.BuyTickets(f.ctx, one, 1, 1, c.ExpiryBlock, math.ZeroInt(), sig)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.ErrorIs(t, try(5, math.ZeroInt()), types.ErrTooManyTickets)
	f.buy(t, one, 1, 4, math.ZeroInt())
	require.ErrorIs(t, try(1, math.ZeroInt()), types.ErrTooManyTickets)

	// sold out by supply
	f.buy(t, buyerTwo.Address, 1, 5, math.ZeroInt())
	c2, sig2 := f.coupon(t, buyerTwo.Address, 1, 1, math.ZeroInt())
	_, err = f.k.BuyTickets(f.ctx, buyerTwo.Address, 1, 1, c2.ExpiryBlock, math.ZeroInt(), sig2)
	require.ErrorIs(t, err, types.ErrTooManyTickets)
}

func TestBuyTicketsTimeWindow(t *testing.T) {
	f := SetupTest(t)
	f.lockPrize(t, 1)
	require.NoError(t, f.k.CreateRaffle(f.ctx, admin, 1, f.now()+100, f.now()+3700, 0, 10, 5))

	c, sig := f.coupon(t, buyerOne.Address, 1, 1, math.ZeroInt())
	_, err := f.k.BuyTickets(f.ctx, buyerOne.Address, 1, 1, c.ExpiryBlock, math.ZeroInt(), sig)
	require.ErrorIs(t, err, types.ErrRaffleHasNotStarted)

	f.advance(1, 100)
	f.buy(t, buyerOne.Address, 1, 1, math.ZeroInt())

	f.advance(1, 3599)
	f.buy(t, buyerOne.Address, 1, 1, math.ZeroInt())

	f.advance(1, 1)
	c, sig = f.coupon(t, buyerOne.Address, 1, 1, math.ZeroInt())
	_, err = f.k.BuyTickets(f.ctx, buyerOne.Address, 1, 1, c.ExpiryBlock, math.ZeroInt(), sig)
	require.ErrorIs(t, err, types.ErrRaffleHasEnded)

	c, sig = f.coupon(t, buyerOne.Address, 2, 1, math.ZeroInt())
	_, err = f.k.BuyTickets(f.ctx, buyerOne.Address, 2, 1, c.ExpiryBlock, math.ZeroInt(), sig)
	require.ErrorIs(t, err, types.ErrRaffleHasEnded)
}

func TestBuyTicketsRejectedByReceiverLeavesNoTrace(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 10, 5)

	vault := testutils.Addr(0xc0)
	require.NoError(t, f.native.SetAccountTraits(f.ctx, vault, nativetypes.Contract(true, false)))
	require.NoError(t, f.native.Mint(f.ctx, vault, utils.Ether(5)))

	c, sig := f.coupon(t, vault, 1, 2, utils.Ether(2))
	_, err := f.k.BuyTickets(f.ctx, vault, 1, 2, c.ExpiryBlock, utils.Ether(2), sig)
	require.ErrorIs(t, err, ticketstypes.ErrTransferRejected)

	bal, err := f.native.GetBalance(f.ctx, vault)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(5).String(), bal.String())
	nonce, err := f.k.GetNonce(f.ctx, vault)
	require.NoError(t, err)
	require.Zero(t, nonce)
	locked, err := f.k.GetLockedETH(f.ctx)
	require.NoError(t, err)
	require.True(t, locked.IsZero())
	require.Empty(t, testutils.EventsOfType(f.ctx, types.EventTypeTicketsBought))
}

func TestDrawFulfillPropagate(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 10, 5)

	_, err := f.k.ShouldDrawRaffle(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrRaffleIsStillOpen)

	f.buy(t, buyerOne.Address, 1, 5, utils.Ether(5))
	f.buy(t, buyerTwo.Address, 1, 5, utils.Ether(5))

	ok, err := f.k.ShouldDrawRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.k.DrawWinner(f.ctx, stranger, 1)
	require.ErrorIs(t, err, accesstypes.ErrMissingRole)

	reqID, err := f.k.DrawWinner(f.ctx, admin, 1)
	require.NoError(t, err)
	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.RaffleStatusRequested, r.Status)
	require.Equal(t, reqID, r.ChainlinkRequestID)

	_, err = f.k.DrawWinner(f.ctx, admin, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)
	_, err = f.k.GetWinner(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrRaffleNotFulfilled)

	f.advance(3, 36)
	require.NoError(t, f.vrf.FulfillRandomWords(f.ctx, reqID, []*uint256.Int{uint256.NewInt(1237)}))

	winner, err := f.k.GetWinner(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, buyerTwo.Address, winner)

	req, err := f.k.GetRequestStatus(f.ctx, reqID)
	require.NoError(t, err)
	require.True(t, req.Fulfilled)
	require.Equal(t, "1237", req.RandomWord.Dec())

	evs := testutils.EventsOfType(f.ctx, types.EventTypeWinnerDrawn)
	require.Len(t, evs, 1)
	require.Equal(t, "7", testutils.Attribute(evs[0], types.AttributeKeyTicket))

	_, err = f.k.WithdrawETH(f.ctx, admin)
	require.ErrorIs(t, err, types.ErrNothingToSend)

	_, err = f.k.PropagateRaffleWinner(f.ctx, admin, common.Address{}, remoteSelector, 1)
	require.ErrorIs(t, err, types.ErrMissingCounterpart)
	_, err = f.k.PropagateRaffleWinner(f.ctx, admin, prizeManager, 0, 1)
	require.ErrorIs(t, err, types.ErrMissingCounterpart)

	_, err = f.k.PropagateRaffleWinner(f.ctx, admin, prizeManager, remoteSelector, 1)
	require.NoError(t, err)
	_, err = f.k.PropagateRaffleWinner(f.ctx, admin, prizeManager, remoteSelector, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffleStatus)

	require.Equal(t, []cciptypes.Payload{cciptypes.WinnerDrawn{RaffleID: 1, Winner: buyerTwo.Address}}, f.outbox(t))

	got, err := f.k.WithdrawETH(f.ctx, admin)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(10).String(), got.String())
	_, err = f.k.WithdrawETH(f.ctx, admin)
	require.ErrorIs(t, err, types.ErrNothingToSend)
}

func TestPropagateOnlyToRaffleOrigin(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 10, 10)
	f.buy(t, buyerOne.Address, 1, 10, utils.Ether(10))
	f.advance(1, 3600)

	reqID, err := f.k.DrawWinner(f.ctx, admin, 1)
	require.NoError(t, err)
	f.advance(3, 36)
	require.NoError(t, f.vrf.FulfillRandomWords(f.ctx, reqID, []*uint256.Int{uint256.NewInt(3)}))

	other := testutils.Addr(0xee)
	require.NoError(t, f.k.SetCCIPCounterpart(f.ctx, admin, other, remoteSelector, true))
	for _, target := range []types.Counterpart{
		{Address: other, ChainSelector: remoteSelector},
		{Address: prizeManager, ChainSelector: localSelector},
	} {
		_, err = f.k.PropagateRaffleWinner(f.ctx, admin, target.Address, target.ChainSelector, 1)
		require.ErrorIs(t, err, types.ErrNotRaffleOrigin)
	}

	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.RaffleStatusFulfilled, r.Status)
	_, err = f.k.WithdrawETH(f.ctx, admin)
	require.ErrorIs(t, err, types.ErrNothingToSend)
	require.Empty(t, f.outbox(t))

	_, err = f.k.PropagateRaffleWinner(f.ctx, admin, prizeManager, remoteSelector, 1)
	require.NoError(t, err)
	require.Equal(t, []cciptypes.Payload{cciptypes.WinnerDrawn{RaffleID: 1, Winner: buyerOne.Address}}, f.outbox(t))
}

func TestFulfillmentGuards(t *testing.T) {
	f := SetupTest(t)

	err := f.k.RawFulfillRandomWords(f.ctx, stranger, 1, []*uint256.Int{uint256.NewInt(1)})
	require.ErrorIs(t, err, types.ErrOnlyCoordinatorCanFulfill)

	require.NoError(t, f.k.RawFulfillRandomWords(f.ctx, coordinatorAddr, 42, []*uint256.Int{uint256.NewInt(1)}))
	evs := testutils.EventsOfType(f.ctx, types.EventTypeInvalidVRFRequest)
	require.Len(t, evs, 1)
	require.Equal(t, "42", testutils.Attribute(evs[0], types.AttributeKeyRequestID))

	_, err = f.k.GetRequestStatus(f.ctx, 42)
	require.ErrorIs(t, err, types.ErrRequestNotFound)
}

func TestDrawTimeoutAllowsRedraw(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 4, 4)
	f.buy(t, buyerOne.Address, 1, 4, math.ZeroInt())

	first, err := f.k.DrawWinner(f.ctx, admin, 1)
	require.NoError(t, err)

	f.advance(timeout, 0)
	_, err = f.k.DrawWinner(f.ctx, admin, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)
	_, err = f.k.ShouldCancelRaffle(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	f.advance(1, 0)
	second, err := f.k.DrawWinner(f.ctx, admin, 1)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// the superseded request is ignored
	require.NoError(t, f.vrf.FulfillRandomWords(f.ctx, first, []*uint256.Int{uint256.NewInt(3)}))
	r, err := f.k.GetRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types.RaffleStatusRequested, r.Status)
	evs := testutils.EventsOfType(f.ctx, types.EventTypeInvalidVRFRequest)
	require.Len(t, evs, 1)
	require.Equal(t, "stale request", testutils.Attribute(evs[0], types.AttributeKeyReason))

	f.advance(3, 0)
	require.NoError(t, f.vrf.FulfillRandomWords(f.ctx, second, []*uint256.Int{uint256.NewInt(3)}))
	winner, err := f.k.GetWinner(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, buyerOne.Address, winner)

	// a repeated delivery is a no-op
	require.NoError(t, f.k.RawFulfillRandomWords(f.ctx, coordinatorAddr, second, []*uint256.Int{uint256.NewInt(9)}))
	require.Len(t, testutils.EventsOfType(f.ctx, types.EventTypeInvalidVRFRequest), 2)
}

func TestCancelAfterTimeout(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 2, 2)
	f.buy(t, buyerOne.Address, 1, 2, utils.Ether(1))
	_, err := f.k.DrawWinner(f.ctx, admin, 1)
	require.NoError(t, err)

	f.advance(timeout+1, 0)
	require.NoError(t, f.k.CancelRaffle(f.ctx, admin, 1))

	_, err = f.k.DrawWinner(f.ctx, admin, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)
	require.NoError(t, f.k.RefundPlayers(f.ctx, 1, []common.Address{buyerOne.Address}))
}

func TestCancelAndRefund(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 50, 100, 50)

	f.buy(t, buyerOne.Address, 1, 10, utils.Ether(2))
	f.buy(t, buyerOne.Address, 1, 5, utils.Ether(1))
	f.buy(t, buyerTwo.Address, 1, 5, math.ZeroInt())

	err := f.k.RefundPlayers(f.ctx, 1, []common.Address{buyerOne.Address})
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	err = f.k.CancelRaffle(f.ctx, admin, 1)
	require.ErrorIs(t, err, types.ErrRaffleIsStillOpen)

	f.advance(1, 3600)
	_, err = f.k.ShouldDrawRaffle(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrTargetTicketsNotReached)

	err = f.k.CancelRaffle(f.ctx, stranger, 1)
	require.ErrorIs(t, err, accesstypes.ErrMissingRole)
	require.NoError(t, f.k.CancelRaffle(f.ctx, admin, 1))
	err = f.k.CancelRaffle(f.ctx, admin, 1)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)

	require.Equal(t, []cciptypes.Payload{cciptypes.Cancel{RaffleID: 1}}, f.outbox(t))

	// one bad entry undoes the whole batch
	err = f.k.RefundPlayers(f.ctx, 1, []common.Address{buyerOne.Address, buyerTwo.Address})
	require.ErrorIs(t, err, types.ErrNothingToSend)
	p, err := f.k.GetParticipation(f.ctx, 1, buyerOne.Address)
	require.NoError(t, err)
	require.False(t, p.Withdrawn)

	_, err = f.k.WithdrawETH(f.ctx, admin)
	require.ErrorIs(t, err, types.ErrNothingToSend)

	require.NoError(t, f.k.RefundPlayers(f.ctx, 1, []common.Address{buyerOne.Address}))
	bal, err := f.native.GetBalance(f.ctx, buyerOne.Address)
	require.NoError(t, err)
	require.Equal(t, utils.Ether(100).String(), bal.String())

	err = f.k.RefundPlayers(f.ctx, 1, []common.Address{buyerOne.Address})
	require.ErrorIs(t, err, types.ErrPlayerAlreadyRefunded)

	locked, err := f.k.GetLockedETH(f.ctx)
	require.NoError(t, err)
	require.True(t, locked.IsZero())

	evs := testutils.EventsOfType(f.ctx, types.EventTypePlayerRefund)
	require.Len(t, evs, 1)
	require.Equal(t, utils.Ether(3).String(), testutils.Attribute(evs[0], types.AttributeKeyAmount))
}

func TestCancelThreshold(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 2, 10, 5)
	f.openRaffle(t, 2, 2, 10, 5)
	f.buy(t, buyerOne.Address, 1, 2, math.ZeroInt())
	f.buy(t, buyerOne.Address, 2, 1, math.ZeroInt())
	f.advance(1, 3600)

	_, err := f.k.ShouldCancelRaffle(f.ctx, 1)
	require.ErrorIs(t, err, types.ErrTargetTicketsReached)
	ok, err := f.k.ShouldDrawRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.k.ShouldCancelRaffle(f.ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCancelNeverOpenedRaffle(t *testing.T) {
	f := SetupTest(t)
	f.lockPrize(t, 3)

	require.NoError(t, f.k.CancelRaffle(f.ctx, admin, 3))
	r, err := f.k.GetRaffle(f.ctx, 3)
	require.NoError(t, err)
	require.Equal(t, types.RaffleStatusCanceled, r.Status)

	err = f.k.CancelRaffle(f.ctx, admin, 4)
	require.ErrorIs(t, err, types.ErrInvalidRaffle)
}

func TestNoParticipants(t *testing.T) {
	f := SetupTest(t)
	f.openRaffle(t, 1, 0, 10, 5)
	f.advance(1, 3600)

	_, err := f.k.DrawWinner(f.ctx, admin, 1)
	require.ErrorIs(t, err, types.ErrNoParticipants)
	ok, err := f.k.ShouldCancelRaffle(f.ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAdminSettings(t *testing.T) {
	f := SetupTest(t)

	err := f.k.SetRequestConfirmations(f.ctx, stranger, 10)
	require.ErrorIs(t, err, accesstypes.ErrMissingRole)
	require.NoError(t, f.k.SetRequestConfirmations(f.ctx, admin, 10))
	cfg, err := f.k.VRFConfig.Get(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint16(10), cfg.RequestConfirmations)

	require.NoError(t, f.assets.MintTokens(f.ctx, tokenAddr, managerAddr, math.NewInt(500)))
	err = f.k.WithdrawTokens(f.ctx, stranger, tokenAddr, math.NewInt(500))
	require.ErrorIs(t, err, accesstypes.ErrMissingRole)
	require.NoError(t, f.k.WithdrawTokens(f.ctx, admin, tokenAddr, math.NewInt(500)))
	bal, err := f.assets.TokenBalance(f.ctx, tokenAddr, admin)
	require.NoError(t, err)
	require.Equal(t, "500", bal.String())
}
