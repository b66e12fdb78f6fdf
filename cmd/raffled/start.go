package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pushchain/push-raffle-node/app"
	"github.com/pushchain/push-raffle-node/relayer/api"
	"github.com/pushchain/push-raffle-node/relayer/config"
	"github.com/pushchain/push-raffle-node/relayer/core"
	"github.com/pushchain/push-raffle-node/relayer/db"
	"github.com/pushchain/push-raffle-node/relayer/logger"
	"github.com/pushchain/push-raffle-node/relayer/metrics"
)

const dataSubdir = "data"

func startCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run both chains with the message relayer, randomness oracle and query server",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := v.GetString(flagHome)
			cfg, err := config.Load(home)
			if err != nil {
				return fmt.Errorf("%w (run `raffled init` first)", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runNode(ctx, cfg, home, logger.Init(cfg))
		},
	}
}

func runNode(ctx context.Context, cfg config.Config, home string, log zerolog.Logger) error {
	params, err := cfg.NetworkParams()
	if err != nil {
		return err
	}
	net, err := app.NewNetwork(params, logger.Ledger(log))
	if err != nil {
		return fmt.Errorf("failed to build network: %w", err)
	}

	database, err := db.OpenFileDB(filepath.Join(home, dataSubdir), cfg.DatabaseFile, true)
	if err != nil {
		return err
	}
	defer database.Close()
	// Both ledgers start from genesis, so earlier relay state does not apply.
	if err := database.Reset(); err != nil {
		return err
	}

	m := metrics.New()
	relayer := core.NewRelayer(core.Config{
		Bridge:       net,
		Oracle:       net,
		DB:           database,
		Metrics:      m,
		PollInterval: cfg.PollInterval(),
		BatchSize:    cfg.BatchSize,
		VRFBatchSize: cfg.VRFBatchSize,
		MaxRetries:   cfg.MaxRetries,
		Logger:       log,
	})

	server := api.NewServer(log, cfg.QueryServerPort, net, database, m.Handler())
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	relayer.Start(ctx)

	log.Info().
		Str("prize_chain", params.Prize.ChainID).
		Str("ticket_chain", params.Ticket.ChainID).
		Str("prize_manager", net.Prize.ManagerAddr.Hex()).
		Str("ticket_manager", net.Ticket.ManagerAddr.Hex()).
		Int("query_port", cfg.QueryServerPort).
		Msg("node started")

	produceBlocks(ctx, net, m, cfg.BlockTime(), log)
	<-relayer.Done()
	log.Info().Msg("node stopped")
	return nil
}

// produceBlocks advances both chains every blockTime until ctx is done.
func produceBlocks(ctx context.Context, net *app.Network, m *metrics.Metrics, blockTime time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(blockTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			net.NextBlock()
			for _, status := range net.Status() {
				m.ChainHeight.WithLabelValues(metrics.Selector(status.Selector)).Set(float64(status.Height))
			}
			log.Debug().Int64("ticket_height", net.Ticket.Height()).Msg("block produced")
		}
	}
}
