// Package core runs the off-chain operator duties of a raffle network:
// forwarding cross-chain messages and fulfilling randomness requests.
package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pushchain/push-raffle-node/relayer/db"
	"github.com/pushchain/push-raffle-node/relayer/metrics"
)

const (
	defaultPollInterval = time.Second
	defaultBatchSize    = 50
	defaultVRFBatchSize = 10
	defaultMaxRetries   = 3
)

// Config holds configuration for the relayer.
type Config struct {
	Bridge       Bridge
	Oracle       Oracle // Optional, nil disables the randomness worker
	DB           *db.DB
	Metrics      *metrics.Metrics
	PollInterval time.Duration
	BatchSize    int
	VRFBatchSize int
	MaxRetries   int
	Logger       zerolog.Logger
}

// Relayer polls both chains on a fixed interval.
type Relayer struct {
	relay        *MessageRelay
	oracle       *RandomnessOracle
	metrics      *metrics.Metrics
	pollInterval time.Duration
	logger       zerolog.Logger
	done         chan struct{}
}

// NewRelayer creates a relayer, applying defaults to unset fields.
func NewRelayer(cfg Config) *Relayer {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.VRFBatchSize <= 0 {
		cfg.VRFBatchSize = defaultVRFBatchSize
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	r := &Relayer{
		relay:        NewMessageRelay(cfg.Bridge, cfg.DB, cfg.Metrics, cfg.BatchSize, cfg.MaxRetries, cfg.Logger),
		metrics:      cfg.Metrics,
		pollInterval: cfg.PollInterval,
		logger:       cfg.Logger.With().Str("component", "relayer").Logger(),
		done:         make(chan struct{}),
	}
	if cfg.Oracle != nil {
		r.oracle = NewRandomnessOracle(cfg.Oracle, cfg.DB, cfg.Metrics, cfg.VRFBatchSize, cfg.Logger)
	}
	return r
}

// Start begins the background poll loop. It stops when ctx is canceled.
func (r *Relayer) Start(ctx context.Context) {
	go r.run(ctx)
}

// Done is closed once the poll loop has exited.
func (r *Relayer) Done() <-chan struct{} {
	return r.done
}

func (r *Relayer) run(ctx context.Context) {
	defer close(r.done)

	r.logger.Info().Dur("poll_interval", r.pollInterval).Msg("relayer started")
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("relayer stopped")
			return
		case <-ticker.C:
			r.Poll()
		}
	}
}

// Poll runs one relay pass and one oracle pass. Errors are logged; the next
// poll starts over from the stored cursors.
func (r *Relayer) Poll() {
	delivered, err := r.relay.RunOnce()
	if err != nil {
		r.logger.Error().Err(err).Msg("relay pass failed")
	}

	fulfilled := 0
	if r.oracle != nil {
		fulfilled, err = r.oracle.RunOnce()
		if err != nil {
			r.logger.Error().Err(err).Msg("oracle pass failed")
		}
	}

	if delivered > 0 || fulfilled > 0 {
		r.logger.Debug().Int("delivered", delivered).Int("fulfilled", fulfilled).Msg("poll complete")
	}
}

// Settle polls until a pass moves nothing, at most maxRounds times, and
// returns the number of delivered messages plus fulfilled requests.
func (r *Relayer) Settle(maxRounds int) (int, error) {
	total := 0
	for i := 0; i < maxRounds; i++ {
		delivered, err := r.relay.RunOnce()
		if err != nil {
			return total, err
		}
		fulfilled := 0
		if r.oracle != nil {
			fulfilled, err = r.oracle.RunOnce()
			if err != nil {
				return total, err
			}
		}
		total += delivered + fulfilled
		if delivered == 0 && fulfilled == 0 {
			break
		}
	}
	return total, nil
}
