package logger

import (
	"io"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"

	"github.com/pushchain/push-raffle-node/relayer/config"
)

// New creates a new zerolog logger with the specified configuration.
// Supports console/json format, level filtering, and optional sampling.
func New(logLevel int, logFormat string, logSampler bool) zerolog.Logger {
	return newWithWriter(os.Stdout, logLevel, logFormat, logSampler)
}

// Init builds the logger described by cfg.
func Init(cfg config.Config) zerolog.Logger {
	return New(cfg.LogLevel, cfg.LogFormat, cfg.LogSampler)
}

// Ledger adapts l for the chain keepers.
func Ledger(l zerolog.Logger) log.Logger {
	return log.NewCustomLogger(l)
}

func newWithWriter(out io.Writer, logLevel int, logFormat string, logSampler bool) zerolog.Logger {
	writer := out
	if logFormat != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		Level(zerolog.Level(logLevel)).
		With().
		Timestamp().
		Logger()

	if logSampler {
		logger = logger.Sample(&zerolog.BasicSampler{N: 5})
	}
	return logger
}
