package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
)

type AccessKeeper interface {
	CheckRole(ctx context.Context, addr common.Address, role accesstypes.Role) error
	SetRole(ctx context.Context, caller, user common.Address, role accesstypes.Role, status bool) error
}

type Messenger interface {
	LinkToken() common.Address
	QuoteFee(ctx context.Context, receiver common.Address, chainSelector uint64, payload cciptypes.Payload) (math.Int, error)
	SendMessage(ctx context.Context, receiver common.Address, chainSelector uint64, payload cciptypes.Payload) (common.Hash, error)
	ValidateInbound(ctx context.Context, caller common.Address, msg cciptypes.Any2EVMMessage) (common.Address, cciptypes.Payload, error)
	SetCounterpart(ctx context.Context, caller, counterpart common.Address, chainSelector uint64, enabled bool) error
	SetExtraArgs(ctx context.Context, caller common.Address, extraArgs []byte) error
}

type NativeKeeper interface {
	GetBalance(ctx context.Context, addr common.Address) (math.Int, error)
	Transfer(ctx context.Context, from, to common.Address, amount math.Int) error
}

type AssetsKeeper interface {
	OwnerOfNFT(ctx context.Context, collection common.Address, tokenID uint64) (common.Address, error)
	TransferNFT(ctx context.Context, collection, from, to common.Address, tokenID uint64) error
	TokenBalance(ctx context.Context, token, holder common.Address) (math.Int, error)
	TransferTokens(ctx context.Context, token, from, to common.Address, amount math.Int) error
}
