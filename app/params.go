package app

import (
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	ticketmanagertypes "github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

// Default chain selectors of the two networks.
const (
	DefaultPrizeChainSelector  uint64 = 16015286601757825753
	DefaultTicketChainSelector uint64 = 14767482510784806043
)

// ChainParams identifies one chain of the network.
type ChainParams struct {
	ChainID   string
	Selector  uint64
	BlockTime time.Duration
}

// NetworkParams configures both chains and the contracts deployed on them.
type NetworkParams struct {
	Prize  ChainParams
	Ticket ChainParams

	GenesisTime time.Time
	Admin       common.Address
	Signer      common.Address // operational signer of purchase coupons

	LinkBaseFee    math.Int
	LinkFeePerByte math.Int
	LinkFunding    math.Int // LINK minted to each manager at genesis
	ExtraArgsGas   uint64

	VRFKeyHash          common.Hash
	VRFConfirmations    uint16
	VRFCallbackGasLimit uint32
	VRFTimeout          int64

	TicketURI string
}

// DefaultNetworkParams returns a local network with 2s blocks, 100 LINK per
// manager and a 200 block randomness timeout.
func DefaultNetworkParams(admin, signer common.Address) NetworkParams {
	return NetworkParams{
		Prize:  ChainParams{ChainID: "raffle-prize-1", Selector: DefaultPrizeChainSelector, BlockTime: 2 * time.Second},
		Ticket: ChainParams{ChainID: "raffle-ticket-1", Selector: DefaultTicketChainSelector, BlockTime: 2 * time.Second},

		GenesisTime: time.Unix(1_700_000_000, 0).UTC(),
		Admin:       admin,
		Signer:      signer,

		LinkBaseFee:    math.NewIntWithDecimal(1, 17),
		LinkFeePerByte: math.ZeroInt(),
		LinkFunding:    math.NewIntWithDecimal(100, 18),
		ExtraArgsGas:   200_000,

		VRFKeyHash:          common.HexToHash("0x787d74caea10b2b357790d5b5247c2f63d1d91572a9846f780606e4d953677ae"),
		VRFConfirmations:    3,
		VRFCallbackGasLimit: 500_000,
		VRFTimeout:          ticketmanagertypes.DefaultVRFTimeout,

		TicketURI: "ipfs://raffle-tickets/{id}.json",
	}
}
