package core

import (
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/push-raffle-node/app"
	"github.com/pushchain/push-raffle-node/relayer/db"
	"github.com/pushchain/push-raffle-node/relayer/metrics"
	"github.com/pushchain/push-raffle-node/relayer/store"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	vrftypes "github.com/pushchain/push-raffle-node/x/vrf/types"
)

const (
	prizeSelector  uint64 = 1
	ticketSelector uint64 = 2
)

type fakeBridge struct {
	outboxes  map[uint64][]cciptypes.OutboundMessage
	executed  map[common.Hash]bool
	failures  map[common.Hash]int // remaining failing attempts, -1 fails forever
	delivered []common.Hash
	height    int64
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		outboxes: make(map[uint64][]cciptypes.OutboundMessage),
		executed: make(map[common.Hash]bool),
		failures: make(map[common.Hash]int),
		height:   10,
	}
}

func (b *fakeBridge) send(source, dest uint64, payload cciptypes.Payload) cciptypes.OutboundMessage {
	seq := uint64(len(b.outboxes[source]))
	msg := cciptypes.OutboundMessage{
		Sequence:            seq,
		MessageID:           common.BytesToHash([]byte{byte(source), byte(seq + 1)}),
		SourceChainSelector: source,
		DestChainSelector:   dest,
		Sender:              common.HexToAddress("0x01"),
		Receiver:            common.HexToAddress("0x02"),
		Data:                payload.Encode(),
	}
	b.outboxes[source] = append(b.outboxes[source], msg)
	return msg
}

func (b *fakeBridge) Selectors() []uint64 { return []uint64{prizeSelector, ticketSelector} }

func (b *fakeBridge) Outbox(selector, from uint64, limit int) ([]cciptypes.OutboundMessage, error) {
	all := b.outboxes[selector]
	if from >= uint64(len(all)) {
		return nil, nil
	}
	out := all[from:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (b *fakeBridge) IsDelivered(msg cciptypes.OutboundMessage) (bool, error) {
	return b.executed[msg.MessageID], nil
}

func (b *fakeBridge) Deliver(msg cciptypes.OutboundMessage) (app.Receipt, error) {
	if n := b.failures[msg.MessageID]; n != 0 {
		if n > 0 {
			b.failures[msg.MessageID] = n - 1
		}
		return app.Receipt{}, errors.New("receiver rejected message")
	}
	b.executed[msg.MessageID] = true
	b.delivered = append(b.delivered, msg.MessageID)
	b.height++
	return app.Receipt{Height: b.height}, nil
}

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenInMemoryDB(true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func newTestRelay(t *testing.T, bridge Bridge, batchSize, maxRetries int) (*MessageRelay, *db.DB, *metrics.Metrics) {
	t.Helper()
	d := newTestDB(t)
	m := metrics.New()
	return NewMessageRelay(bridge, d, m, batchSize, maxRetries, zerolog.New(zerolog.NewTestWriter(t))), d, m
}

func TestRelayDeliversInOrderAndAdvancesCursor(t *testing.T) {
	bridge := newFakeBridge()
	a := bridge.send(prizeSelector, ticketSelector, cciptypes.PrizeLocked{RaffleID: 1})
	b := bridge.send(prizeSelector, ticketSelector, cciptypes.PrizeLocked{RaffleID: 2})
	c := bridge.send(ticketSelector, prizeSelector, cciptypes.Cancel{RaffleID: 7})

	relay, d, m := newTestRelay(t, bridge, 10, 3)

	n, err := relay.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []common.Hash{a.MessageID, b.MessageID, c.MessageID}, bridge.delivered)

	next, err := d.Cursor(prizeSelector)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next)
	next, err = d.Cursor(ticketSelector)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next)

	rec, found, err := d.GetMessage(c.MessageID.Hex())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, store.StatusDelivered, rec.Status)
	assert.Equal(t, "cancel", rec.Opcode)
	assert.Equal(t, uint64(7), rec.RaffleID)
	assert.Equal(t, 1, rec.Attempts)
	assert.Equal(t, int64(13), rec.DestHeight)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RelayedMessages.WithLabelValues("1", "prize_locked")))

	n, err = relay.RunOnce()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, bridge.delivered, 3)
}

func TestRelayBatchSize(t *testing.T) {
	bridge := newFakeBridge()
	for i := uint64(1); i <= 5; i++ {
		bridge.send(prizeSelector, ticketSelector, cciptypes.PrizeLocked{RaffleID: i})
	}
	relay, d, _ := newTestRelay(t, bridge, 2, 3)

	n, err := relay.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	next, err := d.Cursor(prizeSelector)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next)

	_, err = relay.RunOnce()
	require.NoError(t, err)
	_, err = relay.RunOnce()
	require.NoError(t, err)
	assert.Len(t, bridge.delivered, 5)
}

func TestRelayRetriesFailedDelivery(t *testing.T) {
	bridge := newFakeBridge()
	a := bridge.send(prizeSelector, ticketSelector, cciptypes.PrizeLocked{RaffleID: 1})
	b := bridge.send(prizeSelector, ticketSelector, cciptypes.PrizeLocked{RaffleID: 2})
	bridge.failures[a.MessageID] = 1

	relay, d, m := newTestRelay(t, bridge, 10, 3)

	n, err := relay.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []common.Hash{b.MessageID}, bridge.delivered)

	rec, _, err := d.GetMessage(a.MessageID.Hex())
	require.NoError(t, err)
	assert.Equal(t, store.StatusFailed, rec.Status)
	assert.Equal(t, 1, rec.Attempts)
	assert.Equal(t, "receiver rejected message", rec.ErrorMsg)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RelayFailures.WithLabelValues("1")))

	n, err = relay.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []common.Hash{b.MessageID, a.MessageID}, bridge.delivered)

	rec, _, err = d.GetMessage(a.MessageID.Hex())
	require.NoError(t, err)
	assert.Equal(t, store.StatusDelivered, rec.Status)
	assert.Equal(t, 2, rec.Attempts)
	assert.Empty(t, rec.ErrorMsg)
}

func TestRelayGivesUpAfterMaxRetries(t *testing.T) {
	bridge := newFakeBridge()
	a := bridge.send(ticketSelector, prizeSelector, cciptypes.WinnerDrawn{RaffleID: 1, Winner: common.HexToAddress("0x03")})
	bridge.failures[a.MessageID] = -1

	relay, d, _ := newTestRelay(t, bridge, 10, 3)
	for i := 0; i < 5; i++ {
		_, err := relay.RunOnce()
		require.NoError(t, err)
	}

	rec, _, err := d.GetMessage(a.MessageID.Hex())
	require.NoError(t, err)
	assert.Equal(t, store.StatusFailed, rec.Status)
	assert.Equal(t, 3, rec.Attempts)
	assert.Empty(t, bridge.delivered)
}

func TestRelaySkipsMessagesExecutedElsewhere(t *testing.T) {
	bridge := newFakeBridge()
	a := bridge.send(prizeSelector, ticketSelector, cciptypes.PrizeLocked{RaffleID: 1})
	bridge.executed[a.MessageID] = true

	relay, d, _ := newTestRelay(t, bridge, 10, 3)
	n, err := relay.RunOnce()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, bridge.delivered)

	rec, found, err := d.GetMessage(a.MessageID.Hex())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, store.StatusDelivered, rec.Status)
	assert.Zero(t, rec.Attempts)
}

type fakeOracle struct {
	pending   []vrftypes.Request
	height    int64
	rejected  map[uint64]bool
	callback  map[uint64]error
	submitted [][]vrftypes.Fulfillment
}

func (o *fakeOracle) PendingRandomness() ([]vrftypes.Request, int64, error) {
	return o.pending, o.height, nil
}

func (o *fakeOracle) FulfillRandomness(batch []vrftypes.Fulfillment) ([]error, app.Receipt, error) {
	o.submitted = append(o.submitted, batch)
	errs := make([]error, len(batch))
	var events sdk.Events
	for i, f := range batch {
		if o.rejected[f.RequestID] {
			errs[i] = vrftypes.ErrNotConfirmed
			continue
		}
		events = append(events, vrftypes.NewRandomWordsFulfilledEvent(f.RequestID, o.callback[f.RequestID]))
	}
	return errs, app.Receipt{Height: o.height, Events: events}, nil
}

func TestOracleFulfillsConfirmedRequests(t *testing.T) {
	consumer := common.HexToAddress("0x50")
	oracle := &fakeOracle{
		height: 20,
		pending: []vrftypes.Request{
			{RequestID: 1, Consumer: consumer, Confirmations: 3, NumWords: 1, BlockHeight: 10},
			{RequestID: 2, Consumer: consumer, Confirmations: 3, NumWords: 1, BlockHeight: 18},
			{RequestID: 3, Consumer: consumer, Confirmations: 3, NumWords: 2, BlockHeight: 17},
			{RequestID: 4, Consumer: consumer, Confirmations: 3, NumWords: 1, BlockHeight: 12},
		},
		rejected: map[uint64]bool{4: true},
		callback: map[uint64]error{3: errors.New("stale request")},
	}
	d := newTestDB(t)
	m := metrics.New()
	worker := NewRandomnessOracle(oracle, d, m, 10, zerolog.New(zerolog.NewTestWriter(t)))

	n, err := worker.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, oracle.submitted, 1)
	batch := oracle.submitted[0]
	require.Len(t, batch, 3)
	assert.Equal(t, uint64(1), batch[0].RequestID)
	assert.Equal(t, vrftypes.DeriveWords(1, 1)[0].Dec(), batch[0].Words[0].Dec())
	assert.Len(t, batch[1].Words, 2)

	out, err := d.ListFulfillments(0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(3), out[0].RequestID)
	assert.False(t, out[0].Success)
	assert.Equal(t, "stale request", out[0].ErrorMsg)
	assert.Equal(t, uint64(1), out[1].RequestID)
	assert.True(t, out[1].Success)
	assert.Equal(t, int64(20), out[1].BlockHeight)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.VRFFulfillments.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VRFFulfillments.WithLabelValues("callback_failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VRFFulfillments.WithLabelValues("rejected")))
}

func TestOracleBatchSize(t *testing.T) {
	oracle := &fakeOracle{height: 100}
	for i := uint64(1); i <= 5; i++ {
		oracle.pending = append(oracle.pending, vrftypes.Request{RequestID: i, NumWords: 1, Confirmations: 3})
	}
	worker := NewRandomnessOracle(oracle, newTestDB(t), metrics.New(), 2, zerolog.Nop())

	n, err := worker.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, oracle.submitted, 1)
	assert.Len(t, oracle.submitted[0], 2)
}

func TestOracleIdleWithoutConfirmedRequests(t *testing.T) {
	oracle := &fakeOracle{
		height:  5,
		pending: []vrftypes.Request{{RequestID: 1, NumWords: 1, Confirmations: 3, BlockHeight: 4}},
	}
	worker := NewRandomnessOracle(oracle, newTestDB(t), metrics.New(), 10, zerolog.Nop())

	n, err := worker.RunOnce()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, oracle.submitted)
}

func TestRelayerSettle(t *testing.T) {
	bridge := newFakeBridge()
	bridge.send(prizeSelector, ticketSelector, cciptypes.PrizeLocked{RaffleID: 1})
	bridge.send(ticketSelector, prizeSelector, cciptypes.Cancel{RaffleID: 1})

	r := NewRelayer(Config{
		Bridge: bridge,
		Oracle: &fakeOracle{},
		DB:     newTestDB(t),
		Logger: zerolog.Nop(),
	})
	total, err := r.Settle(5)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
