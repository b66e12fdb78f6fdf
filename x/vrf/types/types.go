package types

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Params bounds what consumers may request.
type Params struct {
	MinimumRequestConfirmations uint16 `json:"minimum_request_confirmations"`
	MaxRequestConfirmations     uint16 `json:"max_request_confirmations"`
	MaxNumWords                 uint32 `json:"max_num_words"`
	MaxGasLimit                 uint32 `json:"max_gas_limit"`
}

func DefaultParams() Params {
	return Params{
		MinimumRequestConfirmations: 3,
		MaxRequestConfirmations:     200,
		MaxNumWords:                 500,
		MaxGasLimit:                 2_500_000,
	}
}

type Subscription struct {
	ID    uint64         `json:"id"`
	Owner common.Address `json:"owner"`
}

// Request is an outstanding randomness request.
type Request struct {
	RequestID        uint64         `json:"request_id"`
	SubscriptionID   uint64         `json:"subscription_id"`
	Consumer         common.Address `json:"consumer"`
	KeyHash          common.Hash    `json:"key_hash"`
	Confirmations    uint16         `json:"confirmations"`
	CallbackGasLimit uint32         `json:"callback_gas_limit"`
	NumWords         uint32         `json:"num_words"`
	BlockHeight      int64          `json:"block_height"`
}

// ReadyAt is the first height at which the request may be fulfilled.
func (r Request) ReadyAt() int64 {
	return r.BlockHeight + int64(r.Confirmations)
}

// Fulfillment pairs a request id with its random words.
type Fulfillment struct {
	RequestID uint64         `json:"request_id"`
	Words     []*uint256.Int `json:"words"`
}

// Consumer receives random words. caller is the coordinator address.
type Consumer interface {
	RawFulfillRandomWords(ctx context.Context, caller common.Address, requestID uint64, words []*uint256.Int) error
}
