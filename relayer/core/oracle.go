package core

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pushchain/push-raffle-node/relayer/db"
	"github.com/pushchain/push-raffle-node/relayer/metrics"
	"github.com/pushchain/push-raffle-node/relayer/store"
	vrftypes "github.com/pushchain/push-raffle-node/x/vrf/types"
)

// RandomnessOracle answers confirmed randomness requests with words derived
// from the request id.
type RandomnessOracle struct {
	oracle    Oracle
	db        *db.DB
	metrics   *metrics.Metrics
	batchSize int
	logger    zerolog.Logger
}

// NewRandomnessOracle creates the oracle worker.
func NewRandomnessOracle(oracle Oracle, database *db.DB, m *metrics.Metrics, batchSize int, logger zerolog.Logger) *RandomnessOracle {
	return &RandomnessOracle{
		oracle:    oracle,
		db:        database,
		metrics:   m,
		batchSize: batchSize,
		logger:    logger.With().Str("component", "vrf_oracle").Logger(),
	}
}

// RunOnce fulfills up to one batch of confirmed requests and returns how
// many the coordinator accepted.
func (o *RandomnessOracle) RunOnce() (int, error) {
	pending, height, err := o.oracle.PendingRandomness()
	if err != nil {
		return 0, errors.Wrap(err, "failed to list pending randomness requests")
	}

	var ready []vrftypes.Request
	for _, req := range pending {
		if req.ReadyAt() > height {
			continue
		}
		ready = append(ready, req)
		if o.batchSize > 0 && len(ready) == o.batchSize {
			break
		}
	}
	if len(ready) == 0 {
		return 0, nil
	}

	batch := make([]vrftypes.Fulfillment, len(ready))
	for i, req := range ready {
		batch[i] = vrftypes.Fulfillment{
			RequestID: req.RequestID,
			Words:     vrftypes.DeriveWords(req.RequestID, req.NumWords),
		}
	}

	errs, receipt, err := o.oracle.FulfillRandomness(batch)
	if err != nil {
		return 0, errors.Wrap(err, "failed to submit randomness fulfillment")
	}
	callbackErrs := callbackFailures(receipt.Events.ToABCIEvents())

	fulfilled := 0
	for i, req := range ready {
		logger := o.logger.With().Uint64("request_id", req.RequestID).Str("consumer", req.Consumer.Hex()).Logger()
		if errs[i] != nil {
			logger.Warn().Err(errs[i]).Msg("coordinator rejected fulfillment")
			o.metrics.VRFFulfillments.WithLabelValues("rejected").Inc()
			continue
		}
		fulfilled++

		rec := &store.VRFFulfillment{
			RequestID:   req.RequestID,
			Consumer:    req.Consumer.Hex(),
			BlockHeight: receipt.Height,
			Success:     true,
		}
		if len(batch[i].Words) > 0 {
			rec.RandomWord = batch[i].Words[0].Dec()
		}
		if msg, failed := callbackErrs[req.RequestID]; failed {
			rec.Success = false
			rec.ErrorMsg = msg
			logger.Warn().Str("error", msg).Msg("consumer callback failed")
			o.metrics.VRFFulfillments.WithLabelValues("callback_failed").Inc()
		} else {
			logger.Info().Int64("height", receipt.Height).Msg("randomness fulfilled")
			o.metrics.VRFFulfillments.WithLabelValues("success").Inc()
		}
		if err := o.db.SaveFulfillment(rec); err != nil {
			return fulfilled, err
		}
	}
	return fulfilled, nil
}
