// Package store contains GORM-backed SQLite models used by the raffle relayer.
//
// Database Structure (database file: raffled.db):
//
//	raffled.db
//	├── chain_cursors
//	├── relayed_messages
//	└── vrf_fulfillments
package store

import (
	"gorm.io/gorm"
)

// Delivery states of a relayed message.
const (
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// ChainCursor is the next outbox sequence to read on a source chain.
// One record per source chain.
type ChainCursor struct {
	gorm.Model
	Selector     uint64 `gorm:"uniqueIndex;not null"` // Source chain selector
	NextSequence uint64 // First outbox sequence not yet handed to delivery
}

// RelayedMessage tracks one cross-chain message from the source outbox to
// its execution on the destination chain.
type RelayedMessage struct {
	gorm.Model
	MessageID      string `gorm:"uniqueIndex;not null"` // 0x-prefixed message id
	SourceSelector uint64 `gorm:"index;not null"`
	DestSelector   uint64 `gorm:"not null"`
	Sequence       uint64 // Position in the source outbox
	Sender         string
	Receiver       string
	Opcode         string // PrizeLocked, WinnerDrawn or Cancel
	RaffleID       uint64 `gorm:"index"`
	Status         string `gorm:"index;not null"` // "delivered" or "failed"
	Attempts       int
	DestHeight     int64  // Destination block height of the successful delivery
	ErrorMsg       string `gorm:"type:text"` // Error message of the last failed attempt
	Data           []byte // Raw payload
}

// VRFFulfillment records a randomness request answered by the oracle worker.
type VRFFulfillment struct {
	gorm.Model
	RequestID   uint64 `gorm:"uniqueIndex;not null"`
	Consumer    string
	RandomWord  string // Decimal first word
	BlockHeight int64  // Ticket chain height of the fulfillment
	Success     bool   // Whether the consumer callback succeeded
	ErrorMsg    string `gorm:"type:text"`
}
