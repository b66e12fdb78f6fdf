package keeper

import (
	"context"
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/pushchain/push-raffle-node/x/ccip/types"
)

// GetFee quotes the fee, in the fee token, for sending msg.
func (k Keeper) GetFee(ctx context.Context, destChainSelector uint64, msg types.EVM2AnyMessage) (math.Int, error) {
	if err := k.checkLane(ctx, destChainSelector); err != nil {
		return math.Int{}, err
	}
	params, err := k.Params.Get(ctx)
	if err != nil {
		return math.Int{}, err
	}
	if msg.FeeToken != params.FeeToken {
		return math.Int{}, errorsmod.Wrapf(types.ErrUnsupportedFeeToken, "%s", msg.FeeToken.Hex())
	}
	return params.BaseFee.Add(params.FeePerByte.MulRaw(int64(len(msg.Data)))), nil
}

// Send charges the fee from sender and appends msg to the outbox.
func (k Keeper) Send(ctx context.Context, sender common.Address, destChainSelector uint64, msg types.EVM2AnyMessage) (common.Hash, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	receiver, err := types.DecodeAddress(msg.Receiver)
	if err != nil {
		return common.Hash{}, err
	}

	fee, err := k.GetFee(ctx, destChainSelector, msg)
	if err != nil {
		return common.Hash{}, err
	}
	if err := k.tokens.TransferTokens(ctx, msg.FeeToken, sender, k.address, fee); err != nil {
		return common.Hash{}, errorsmod.Wrap(err, "fee payment failed")
	}

	seq, err := k.NextSequence.Next(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	out := types.OutboundMessage{
		Sequence:            seq,
		SourceChainSelector: k.chainSelector,
		DestChainSelector:   destChainSelector,
		Sender:              sender,
		Receiver:            receiver,
		Data:                msg.Data,
		ExtraArgs:           msg.ExtraArgs,
		FeeToken:            msg.FeeToken,
		Fee:                 fee,
		BlockHeight:         sdkCtx.BlockHeight(),
	}
	out.MessageID = messageID(out)

	if err := k.Outbox.Set(ctx, seq, out); err != nil {
		return common.Hash{}, err
	}

	event, err := types.NewSendRequestedEvent(out)
	if err != nil {
		return common.Hash{}, err
	}
	sdkCtx.EventManager().EmitEvent(event)

	k.Logger().Info("ccip message queued", "message_id", out.MessageID.Hex(), "seq", seq, "dest", destChainSelector)
	return out.MessageID, nil
}

// RouteMessage executes a delivered message against its receiver. A message
// id executes at most once; the receiver sees the router as caller.
func (k Keeper) RouteMessage(ctx context.Context, msg types.Any2EVMMessage, receiver common.Address) error {
	executed, err := k.IsExecuted(ctx, msg.MessageID)
	if err != nil {
		return err
	}
	if executed {
		return errorsmod.Wrapf(types.ErrMessageAlreadyExecuted, "%s", msg.MessageID.Hex())
	}

	r, ok := k.receiver(receiver)
	if !ok {
		return errorsmod.Wrapf(types.ErrNoReceiver, "%s", receiver.Hex())
	}

	if err := k.Executed.Set(ctx, msg.MessageID.Bytes()); err != nil {
		return err
	}

	if err := r.CCIPReceive(ctx, k.address, msg); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewMessageExecutedEvent(msg, receiver.Hex()))
	return nil
}

func (k Keeper) checkLane(ctx context.Context, destChainSelector uint64) error {
	ok, err := k.Lanes.Has(ctx, destChainSelector)
	if err != nil {
		return err
	}
	if !ok {
		return errorsmod.Wrapf(types.ErrUnsupportedDestinationChain, "%d", destChainSelector)
	}
	return nil
}

// messageID derives a unique id from the source lane position and content.
func messageID(m types.OutboundMessage) common.Hash {
	var header [16]byte
	binary.BigEndian.PutUint64(header[:8], m.SourceChainSelector)
	binary.BigEndian.PutUint64(header[8:], m.Sequence)
	return crypto.Keccak256Hash(header[:], m.Sender.Bytes(), m.Receiver.Bytes(), m.Data)
}
