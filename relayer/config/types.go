package config

// Config is the operator configuration of the raffle node.
type Config struct {
	// Log Config
	LogLevel   int    `json:"log_level"`   // e.g., 0 = debug, 1 = info, etc.
	LogFormat  string `json:"log_format"`  // "json" or "console"
	LogSampler bool   `json:"log_sampler"` // if true, samples logs (e.g., 1 in 5)

	// Node Config
	NodeHome     string `json:"node_home"`     // Node home directory (default: ~/.raffled)
	DatabaseFile string `json:"database_file"` // SQLite file under <home>/data, or ":memory:"
	BlockTimeMs  int    `json:"block_time_ms"` // Block interval of both local chains (default: 2000)

	// Query Server Config
	QueryServerPort int `json:"query_server_port"` // Port for HTTP query server (default: 8080)

	// Relayer Config
	PollIntervalMs int `json:"poll_interval_ms"` // How often outboxes and VRF requests are polled (default: 1000)
	MaxRetries     int `json:"max_retries"`      // Delivery attempts per message before giving up (default: 3)
	BatchSize      int `json:"batch_size"`       // Outbox messages read per poll (default: 50)
	VRFBatchSize   int `json:"vrf_batch_size"`   // Randomness requests fulfilled per transaction (default: 10)

	// Network Config
	AdminAddress  string      `json:"admin_address"`  // Deployer and admin of every contract
	SignerAddress string      `json:"signer_address"` // Operational coupon signer
	PrizeChain    ChainConfig `json:"prize_chain"`
	TicketChain   ChainConfig `json:"ticket_chain"`
	LINK          LINKConfig  `json:"link"`
	VRF           VRFConfig   `json:"vrf"`
}

// ChainConfig identifies one of the two chains.
type ChainConfig struct {
	ChainID  string `json:"chain_id"`
	Selector uint64 `json:"selector"`
}

// LINKConfig sets the messaging fee and the LINK each manager starts with.
// Amounts are base-10 strings in the token's smallest unit.
type LINKConfig struct {
	BaseFee      string `json:"base_fee"`
	FeePerByte   string `json:"fee_per_byte"`
	Funding      string `json:"funding"`
	ExtraArgsGas uint64 `json:"extra_args_gas"`
}

// VRFConfig sets the randomness request parameters of the ticket manager.
type VRFConfig struct {
	KeyHash          string `json:"key_hash"`
	Confirmations    uint16 `json:"confirmations"`
	CallbackGasLimit uint32 `json:"callback_gas_limit"`
	TimeoutBlocks    int64  `json:"timeout_blocks"` // Blocks before a draw can be re-requested or canceled
}
