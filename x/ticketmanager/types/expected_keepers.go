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
	HasRole(ctx context.Context, addr common.Address, role accesstypes.Role) (bool, error)
	SetRole(ctx context.Context, caller, user common.Address, role accesstypes.Role, status bool) error
}

type Messenger interface {
	SendMessage(ctx context.Context, receiver common.Address, chainSelector uint64, payload cciptypes.Payload) (common.Hash, error)
	ValidateInbound(ctx context.Context, caller common.Address, msg cciptypes.Any2EVMMessage) (common.Address, cciptypes.Payload, error)
	SetCounterpart(ctx context.Context, caller, counterpart common.Address, chainSelector uint64, enabled bool) error
	SetExtraArgs(ctx context.Context, caller common.Address, extraArgs []byte) error
}

type TicketsKeeper interface {
	Mint(ctx context.Context, operator, to common.Address, raffleID, count uint64) (uint64, error)
	SupplyOf(ctx context.Context, raffleID uint64) (uint64, error)
	BalanceOf(ctx context.Context, owner common.Address, raffleID uint64) (uint64, error)
	OwnerOf(ctx context.Context, raffleID, n uint64) (common.Address, error)
}

type NativeKeeper interface {
	GetBalance(ctx context.Context, addr common.Address) (math.Int, error)
	Transfer(ctx context.Context, from, to common.Address, amount math.Int) error
}

type TokenKeeper interface {
	TransferTokens(ctx context.Context, token, from, to common.Address, amount math.Int) error
}

// Coordinator is the randomness oracle.
type Coordinator interface {
	Address() common.Address
	RequestRandomWords(
		ctx context.Context,
		consumer common.Address,
		keyHash common.Hash,
		subID uint64,
		confirmations uint16,
		callbackGasLimit uint32,
		numWords uint32,
	) (uint64, error)
}
