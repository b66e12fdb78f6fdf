package types

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Config is the collection-level state of the ticket contract.
type Config struct {
	Manager common.Address `json:"manager"`
	Owner   common.Address `json:"owner"`
	URI     string         `json:"uri"`
}

// AccountKeeper tells whether a receiver implements the multi-token receiver hook.
type AccountKeeper interface {
	CanReceiveERC1155(ctx context.Context, addr common.Address) (bool, error)
}
