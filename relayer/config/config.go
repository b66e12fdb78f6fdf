package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/app"
	"github.com/pushchain/push-raffle-node/utils"
)

const (
	configSubdir   = "config"
	configFileName = "raffled_config.json"
)

//go:embed default_config.json
var defaultConfigJSON []byte

func validateConfig(cfg *Config) error {
	// Validate log level
	if cfg.LogLevel < 0 || cfg.LogLevel > 5 {
		return fmt.Errorf("log level must be between 0 and 5")
	}

	// Validate log format
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("log format must be 'json' or 'console'")
	}

	// Set defaults for node config
	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = "raffled.db"
	}
	if cfg.BlockTimeMs == 0 {
		cfg.BlockTimeMs = 2000
	}
	if cfg.QueryServerPort == 0 {
		cfg.QueryServerPort = 8080
	}

	// Set defaults for relayer config
	if cfg.PollIntervalMs == 0 {
		cfg.PollIntervalMs = 1000
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.VRFBatchSize == 0 {
		cfg.VRFBatchSize = 10
	}
	if cfg.BlockTimeMs < 0 || cfg.PollIntervalMs < 0 || cfg.MaxRetries < 0 || cfg.BatchSize < 0 || cfg.VRFBatchSize < 0 {
		return fmt.Errorf("intervals, retries and batch sizes must not be negative")
	}

	// Fill network defaults from the embedded config
	var defaults Config
	if err := json.Unmarshal(defaultConfigJSON, &defaults); err != nil {
		return fmt.Errorf("failed to unmarshal default config: %w", err)
	}
	if cfg.AdminAddress == "" {
		cfg.AdminAddress = defaults.AdminAddress
	}
	if cfg.SignerAddress == "" {
		cfg.SignerAddress = defaults.SignerAddress
	}
	if cfg.PrizeChain == (ChainConfig{}) {
		cfg.PrizeChain = defaults.PrizeChain
	}
	if cfg.TicketChain == (ChainConfig{}) {
		cfg.TicketChain = defaults.TicketChain
	}
	if cfg.LINK == (LINKConfig{}) {
		cfg.LINK = defaults.LINK
	}
	if cfg.VRF == (VRFConfig{}) {
		cfg.VRF = defaults.VRF
	}

	// Validate network config
	if _, err := utils.ParseAddress(cfg.AdminAddress); err != nil {
		return fmt.Errorf("admin address: %w", err)
	}
	if _, err := utils.ParseAddress(cfg.SignerAddress); err != nil {
		return fmt.Errorf("signer address: %w", err)
	}
	if cfg.PrizeChain.Selector == 0 || cfg.TicketChain.Selector == 0 {
		return fmt.Errorf("chain selectors must be set")
	}
	if cfg.PrizeChain.Selector == cfg.TicketChain.Selector {
		return fmt.Errorf("prize and ticket chains must have different selectors")
	}
	for name, amount := range map[string]string{
		"link base fee":     cfg.LINK.BaseFee,
		"link fee per byte": cfg.LINK.FeePerByte,
		"link funding":      cfg.LINK.Funding,
	} {
		if _, err := utils.ParseAmount(amount); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if _, err := utils.HexToBytes(cfg.VRF.KeyHash); err != nil {
		return fmt.Errorf("vrf key hash: %w", err)
	}
	if cfg.VRF.TimeoutBlocks <= 0 {
		return fmt.Errorf("vrf timeout must be positive")
	}

	return nil
}

// Path returns the config file location under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, configSubdir, configFileName)
}

// Save writes the given config to <NodeDir>/config/raffled_config.json.
func Save(cfg *Config, basePath string) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	configDir := filepath.Join(basePath, configSubdir)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := Path(basePath)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads, validates and returns the config from <BasePath>/config/raffled_config.json.
func Load(basePath string) (Config, error) {
	configFile := Path(basePath)
	data, err := os.ReadFile(filepath.Clean(configFile))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the default configuration from embedded JSON
func LoadDefaultConfig() (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(defaultConfigJSON, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default config: %w", err)
	}
	return &cfg, nil
}

// PollInterval returns the relayer polling period.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// BlockTime returns the block interval of both chains.
func (c Config) BlockTime() time.Duration {
	return time.Duration(c.BlockTimeMs) * time.Millisecond
}

// NetworkParams converts a validated config to the parameters of the
// two-chain network.
func (c Config) NetworkParams() (app.NetworkParams, error) {
	admin, err := utils.ParseAddress(c.AdminAddress)
	if err != nil {
		return app.NetworkParams{}, err
	}
	signer, err := utils.ParseAddress(c.SignerAddress)
	if err != nil {
		return app.NetworkParams{}, err
	}
	baseFee, err := utils.ParseAmount(c.LINK.BaseFee)
	if err != nil {
		return app.NetworkParams{}, err
	}
	perByte, err := utils.ParseAmount(c.LINK.FeePerByte)
	if err != nil {
		return app.NetworkParams{}, err
	}
	funding, err := utils.ParseAmount(c.LINK.Funding)
	if err != nil {
		return app.NetworkParams{}, err
	}

	params := app.DefaultNetworkParams(admin, signer)
	params.Prize = app.ChainParams{ChainID: c.PrizeChain.ChainID, Selector: c.PrizeChain.Selector, BlockTime: c.BlockTime()}
	params.Ticket = app.ChainParams{ChainID: c.TicketChain.ChainID, Selector: c.TicketChain.Selector, BlockTime: c.BlockTime()}
	params.GenesisTime = time.Now().UTC().Truncate(time.Second)
	params.LinkBaseFee = baseFee
	params.LinkFeePerByte = perByte
	params.LinkFunding = funding
	params.ExtraArgsGas = c.LINK.ExtraArgsGas
	params.VRFKeyHash = common.HexToHash(c.VRF.KeyHash)
	params.VRFConfirmations = c.VRF.Confirmations
	params.VRFCallbackGasLimit = c.VRF.CallbackGasLimit
	params.VRFTimeout = c.VRF.TimeoutBlocks
	return params, nil
}
