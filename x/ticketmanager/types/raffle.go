package types

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

type RaffleStatus uint8

const (
	RaffleStatusNone RaffleStatus = iota
	RaffleStatusPrizeLocked
	RaffleStatusIdle
	RaffleStatusRequested
	RaffleStatusFulfilled
	RaffleStatusPropagated
	RaffleStatusClaimed
	RaffleStatusCanceled
)

var raffleStatusNames = [...]string{"NONE", "PRIZE_LOCKED", "IDLE", "REQUESTED", "FULFILLED", "PROPAGATED", "CLAIMED", "CANCELED"}

func (s RaffleStatus) String() string {
	if int(s) < len(raffleStatusNames) {
		return raffleStatusNames[s]
	}
	return "UNKNOWN"
}

// Counterpart is a contract on another chain.
type Counterpart struct {
	Address       common.Address `json:"address"`
	ChainSelector uint64         `json:"chain_selector"`
}

func (c Counterpart) IsZero() bool {
	return c.Address == (common.Address{}) || c.ChainSelector == 0
}

// Raffle is the ticket-side record of one raffle. Times are unix seconds.
type Raffle struct {
	ID                  uint64         `json:"id"`
	Status              RaffleStatus   `json:"status"`
	StartTime           int64          `json:"start_time"`
	EndTime             int64          `json:"end_time"`
	MinTicketsThreshold uint64         `json:"min_tickets_threshold"`
	MaxTicketSupply     uint64         `json:"max_ticket_supply"`
	MaxHoldings         uint64         `json:"max_holdings"`
	TotalRaised         math.Int       `json:"total_raised"`
	ChainlinkRequestID  uint64         `json:"chainlink_request_id"`
	RequestedAt         int64          `json:"requested_at"` // block height of the last draw request
	Winner              common.Address `json:"winner"`
	Origin              Counterpart    `json:"origin"` // prize manager that announced the prize
}

// Participation is what one buyer did in one raffle.
type Participation struct {
	TotalPurchased uint64   `json:"total_purchased"`
	TotalSpent     math.Int `json:"total_spent"`
	Withdrawn      bool     `json:"withdrawn"`
}

// RequestStatus tracks a randomness request bound to a raffle.
type RequestStatus struct {
	RaffleID   uint64       `json:"raffle_id"`
	Fulfilled  bool         `json:"fulfilled"`
	RandomWord *uint256.Int `json:"random_word,omitempty"`
}

// VRFConfig holds the randomness request settings.
type VRFConfig struct {
	KeyHash              common.Hash `json:"key_hash"`
	SubscriptionID       uint64      `json:"subscription_id"`
	RequestConfirmations uint16      `json:"request_confirmations"`
	CallbackGasLimit     uint32      `json:"callback_gas_limit"`
}
