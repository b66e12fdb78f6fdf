package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
)

// TokenKeeper pays message fees in the fee token.
type TokenKeeper interface {
	TokenBalance(ctx context.Context, token, holder common.Address) (math.Int, error)
	TransferTokens(ctx context.Context, token, from, to common.Address, amount math.Int) error
}

// AccessKeeper guards the admin entry points of a messenger.
type AccessKeeper interface {
	CheckRole(ctx context.Context, addr common.Address, role accesstypes.Role) error
}

// Router is the transport seen by a messenger.
type Router interface {
	Address() common.Address
	ChainSelector() uint64
	GetFee(ctx context.Context, destChainSelector uint64, msg EVM2AnyMessage) (math.Int, error)
	Send(ctx context.Context, sender common.Address, destChainSelector uint64, msg EVM2AnyMessage) (common.Hash, error)
}
