package core

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pushchain/push-raffle-node/relayer/db"
	"github.com/pushchain/push-raffle-node/relayer/metrics"
	"github.com/pushchain/push-raffle-node/relayer/store"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
)

// MessageRelay forwards router outbox messages to their destination chain.
// Every outbox entry is handed to delivery once; failed deliveries stay in
// the database and are retried until they succeed or run out of attempts.
type MessageRelay struct {
	bridge     Bridge
	db         *db.DB
	metrics    *metrics.Metrics
	batchSize  int
	maxRetries int
	logger     zerolog.Logger
}

// NewMessageRelay creates a relay over bridge that persists into database.
func NewMessageRelay(bridge Bridge, database *db.DB, m *metrics.Metrics, batchSize, maxRetries int, logger zerolog.Logger) *MessageRelay {
	return &MessageRelay{
		bridge:     bridge,
		db:         database,
		metrics:    m,
		batchSize:  batchSize,
		maxRetries: maxRetries,
		logger:     logger.With().Str("component", "message_relay").Logger(),
	}
}

// RunOnce retries failed deliveries, then drains one batch of every outbox.
// It returns the number of messages delivered.
func (r *MessageRelay) RunOnce() (int, error) {
	delivered, err := r.retryFailed()
	if err != nil {
		return delivered, err
	}
	for _, selector := range r.bridge.Selectors() {
		n, err := r.drain(selector)
		delivered += n
		if err != nil {
			return delivered, err
		}
	}
	return delivered, nil
}

func (r *MessageRelay) drain(selector uint64) (int, error) {
	from, err := r.db.Cursor(selector)
	if err != nil {
		return 0, err
	}
	msgs, err := r.bridge.Outbox(selector, from, r.batchSize)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read outbox of chain %d", selector)
	}
	r.metrics.OutboxPending.WithLabelValues(metrics.Selector(selector)).Set(float64(len(msgs)))
	if len(msgs) == 0 {
		return 0, nil
	}

	delivered := 0
	for _, msg := range msgs {
		_, found, err := r.db.GetMessage(msg.MessageID.Hex())
		if err != nil {
			return delivered, err
		}
		// Known ids were delivered or are queued for retry.
		if !found {
			rec := newRecord(msg)
			ok, err := r.deliver(msg, &rec)
			if err != nil {
				return delivered, err
			}
			if ok {
				delivered++
			}
		}
		if err := r.db.SetCursor(selector, msg.Sequence+1); err != nil {
			return delivered, err
		}
	}

	r.metrics.OutboxPending.WithLabelValues(metrics.Selector(selector)).Set(0)
	return delivered, nil
}

func (r *MessageRelay) retryFailed() (int, error) {
	recs, err := r.db.RetryableMessages(r.maxRetries)
	if err != nil {
		return 0, err
	}
	delivered := 0
	for i := range recs {
		ok, err := r.deliver(outboundFromRecord(recs[i]), &recs[i])
		if err != nil {
			return delivered, err
		}
		if ok {
			delivered++
		}
	}
	return delivered, nil
}

// deliver executes msg unless its destination already did, and stores the
// outcome in rec. Only database failures are returned as errors.
func (r *MessageRelay) deliver(msg cciptypes.OutboundMessage, rec *store.RelayedMessage) (bool, error) {
	logger := r.logger.With().
		Str("message_id", rec.MessageID).
		Uint64("source", msg.SourceChainSelector).
		Uint64("dest", msg.DestChainSelector).
		Str("opcode", rec.Opcode).
		Uint64("raffle_id", rec.RaffleID).
		Logger()

	executed, err := r.bridge.IsDelivered(msg)
	if err == nil && executed {
		logger.Debug().Msg("message already executed on destination")
		rec.Status = store.StatusDelivered
		rec.ErrorMsg = ""
		return false, r.db.SaveMessage(rec)
	}

	rec.Attempts++
	if err == nil {
		rcpt, derr := r.bridge.Deliver(msg)
		if derr == nil {
			rec.Status = store.StatusDelivered
			rec.DestHeight = rcpt.Height
			rec.ErrorMsg = ""
			if err := r.db.SaveMessage(rec); err != nil {
				return false, err
			}
			r.metrics.RelayedMessages.WithLabelValues(metrics.Selector(msg.SourceChainSelector), rec.Opcode).Inc()
			logger.Info().Int64("dest_height", rcpt.Height).Int("attempts", rec.Attempts).Msg("message delivered")
			return true, nil
		}
		err = derr
	}

	rec.Status = store.StatusFailed
	rec.ErrorMsg = err.Error()
	if err := r.db.SaveMessage(rec); err != nil {
		return false, err
	}
	r.metrics.RelayFailures.WithLabelValues(metrics.Selector(msg.SourceChainSelector)).Inc()
	event := logger.Warn()
	if rec.Attempts >= r.maxRetries {
		event = logger.Error()
	}
	event.Err(err).Int("attempts", rec.Attempts).Int("max_retries", r.maxRetries).Msg("message delivery failed")
	return false, nil
}

func newRecord(msg cciptypes.OutboundMessage) store.RelayedMessage {
	rec := store.RelayedMessage{
		MessageID:      msg.MessageID.Hex(),
		SourceSelector: msg.SourceChainSelector,
		DestSelector:   msg.DestChainSelector,
		Sequence:       msg.Sequence,
		Sender:         msg.Sender.Hex(),
		Receiver:       msg.Receiver.Hex(),
		Data:           msg.Data,
	}
	if payload, err := cciptypes.DecodePayload(msg.Data); err == nil {
		rec.Opcode = payload.Opcode().String()
		rec.RaffleID = payload.Raffle()
	} else {
		rec.Opcode = "unknown"
	}
	return rec
}

func outboundFromRecord(rec store.RelayedMessage) cciptypes.OutboundMessage {
	return cciptypes.OutboundMessage{
		Sequence:            rec.Sequence,
		MessageID:           common.HexToHash(rec.MessageID),
		SourceChainSelector: rec.SourceSelector,
		DestChainSelector:   rec.DestSelector,
		Sender:              common.HexToAddress(rec.Sender),
		Receiver:            common.HexToAddress(rec.Receiver),
		Data:                rec.Data,
	}
}
