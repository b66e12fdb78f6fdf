package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/pushchain/push-raffle-node/utils"
	accesstypes "github.com/pushchain/push-raffle-node/x/access/types"
	"github.com/pushchain/push-raffle-node/x/ccip/types"
)

// Messenger is the messaging adapter embedded in a contract: it owns the
// counterpart allow-list and extra args, pays fees from the contract's LINK
// balance and validates inbound messages.
type Messenger struct {
	logger    log.Logger
	self      common.Address
	linkToken common.Address

	Schema       collections.Schema
	Counterparts collections.KeySet[collections.Pair[uint64, common.Address]]
	ExtraArgs    collections.Item[[]byte]

	router types.Router
	tokens types.TokenKeeper
	access types.AccessKeeper
}

// NewMessenger creates the messenger of the contract deployed at self.
func NewMessenger(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	self common.Address,
	linkToken common.Address,
	router types.Router,
	tokens types.TokenKeeper,
	access types.AccessKeeper,
) Messenger {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName+"/messenger", "contract", self.Hex())

	sb := collections.NewSchemaBuilder(storeService)

	m := Messenger{
		logger:    logger,
		self:      self,
		linkToken: linkToken,

		Counterparts: collections.NewKeySet(sb, types.CounterpartsKey, types.CounterpartsName,
			collections.PairKeyCodec(collections.Uint64Key, utils.AddressKey)),
		ExtraArgs: collections.NewItem(sb, types.ExtraArgsKey, types.ExtraArgsName, collections.BytesValue),

		router: router,
		tokens: tokens,
		access: access,
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	m.Schema = schema

	return m
}

func (m Messenger) Logger() log.Logger {
	return m.logger
}

// SetCounterpart enables or disables a (contract, chain) pair as an allowed
// peer. Admin only.
func (m Messenger) SetCounterpart(ctx context.Context, caller, counterpart common.Address, chainSelector uint64, enabled bool) error {
	if err := m.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	if counterpart == (common.Address{}) || chainSelector == 0 {
		return types.ErrInvalidCounterpart
	}

	key := collections.Join(chainSelector, counterpart)
	var err error
	if enabled {
		err = m.Counterparts.Set(ctx, key)
	} else {
		err = m.Counterparts.Remove(ctx, key)
	}
	if err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewCounterpartSetEvent(counterpart.Hex(), chainSelector, enabled))
	m.Logger().Info("counterpart updated", "counterpart", counterpart.Hex(), "chain_selector", chainSelector, "enabled", enabled)
	return nil
}

// IsCounterpart reports whether counterpart on chainSelector is enabled.
func (m Messenger) IsCounterpart(ctx context.Context, counterpart common.Address, chainSelector uint64) (bool, error) {
	return m.Counterparts.Has(ctx, collections.Join(chainSelector, counterpart))
}

// SetExtraArgs stores the opaque extra args used for every outbound message. Admin only.
func (m Messenger) SetExtraArgs(ctx context.Context, caller common.Address, extraArgs []byte) error {
	if err := m.access.CheckRole(ctx, caller, accesstypes.RoleAdmin); err != nil {
		return err
	}
	if err := m.ExtraArgs.Set(ctx, extraArgs); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewExtraArgsSetEvent(hexutil.Encode(extraArgs)))
	return nil
}

// GetExtraArgs returns the configured extra args, nil when unset.
func (m Messenger) GetExtraArgs(ctx context.Context) ([]byte, error) {
	args, err := m.ExtraArgs.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return args, nil
}

// LinkToken returns the token fees are paid in.
func (m Messenger) LinkToken() common.Address {
	return m.linkToken
}

func (m Messenger) buildMessage(ctx context.Context, receiver common.Address, payload types.Payload) (types.EVM2AnyMessage, error) {
	extraArgs, err := m.GetExtraArgs(ctx)
	if err != nil {
		return types.EVM2AnyMessage{}, err
	}
	return types.EVM2AnyMessage{
		Receiver:  types.EncodeAddress(receiver),
		Data:      payload.Encode(),
		FeeToken:  m.linkToken,
		ExtraArgs: extraArgs,
	}, nil
}

// QuoteFee returns the LINK fee SendMessage would pay for the same arguments.
func (m Messenger) QuoteFee(ctx context.Context, receiver common.Address, chainSelector uint64, payload types.Payload) (math.Int, error) {
	msg, err := m.buildMessage(ctx, receiver, payload)
	if err != nil {
		return math.Int{}, err
	}
	return m.router.GetFee(ctx, chainSelector, msg)
}

// SendMessage sends payload to receiver on chainSelector, paying the fee in
// LINK held by the contract.
func (m Messenger) SendMessage(ctx context.Context, receiver common.Address, chainSelector uint64, payload types.Payload) (common.Hash, error) {
	msg, err := m.buildMessage(ctx, receiver, payload)
	if err != nil {
		return common.Hash{}, err
	}

	fee, err := m.router.GetFee(ctx, chainSelector, msg)
	if err != nil {
		return common.Hash{}, err
	}
	balance, err := m.tokens.TokenBalance(ctx, m.linkToken, m.self)
	if err != nil {
		return common.Hash{}, err
	}
	if balance.LT(fee) {
		return common.Hash{}, errorsmod.Wrapf(types.ErrInsufficientLinkBalance, "have %s, fee %s", balance, fee)
	}

	id, err := m.router.Send(ctx, m.self, chainSelector, msg)
	if err != nil {
		return common.Hash{}, err
	}

	m.Logger().Info("cross-chain message sent", "message_id", id.Hex(), "opcode", payload.Opcode().String(), "raffle_id", payload.Raffle())
	return id, nil
}

// ValidateInbound checks that caller is the router and the message comes from
// an enabled counterpart, then decodes its payload.
func (m Messenger) ValidateInbound(ctx context.Context, caller common.Address, msg types.Any2EVMMessage) (common.Address, types.Payload, error) {
	if caller != m.router.Address() {
		return common.Address{}, nil, errorsmod.Wrapf(types.ErrInvalidRouter, "%s", caller.Hex())
	}

	sender, err := types.DecodeAddress(msg.Sender)
	if err != nil {
		return common.Address{}, nil, errorsmod.Wrap(types.ErrUnauthorizedCCIPSender, err.Error())
	}
	ok, err := m.IsCounterpart(ctx, sender, msg.SourceChainSelector)
	if err != nil {
		return common.Address{}, nil, err
	}
	if !ok {
		return common.Address{}, nil, errorsmod.Wrapf(types.ErrUnauthorizedCCIPSender, "%s on chain %d", sender.Hex(), msg.SourceChainSelector)
	}

	payload, err := types.DecodePayload(msg.Data)
	if err != nil {
		return common.Address{}, nil, err
	}
	return sender, payload, nil
}
