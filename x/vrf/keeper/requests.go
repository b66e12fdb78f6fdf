package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/pushchain/push-raffle-node/x/vrf/types"
)

// RequestRandomWords records a request by consumer and returns its id.
func (k Keeper) RequestRandomWords(
	ctx context.Context,
	consumer common.Address,
	keyHash common.Hash,
	subID uint64,
	confirmations uint16,
	callbackGasLimit uint32,
	numWords uint32,
) (uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if _, err := k.GetSubscription(ctx, subID); err != nil {
		return 0, err
	}
	allowed, err := k.Consumers.Has(ctx, collections.Join(subID, consumer))
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, errorsmod.Wrapf(types.ErrInvalidConsumer, "%s on subscription %d", consumer.Hex(), subID)
	}

	params, err := k.Params.Get(ctx)
	if err != nil {
		return 0, err
	}
	if confirmations < params.MinimumRequestConfirmations || confirmations > params.MaxRequestConfirmations {
		return 0, errorsmod.Wrapf(types.ErrInvalidConfirmations, "%d not in [%d, %d]",
			confirmations, params.MinimumRequestConfirmations, params.MaxRequestConfirmations)
	}
	if numWords == 0 || numWords > params.MaxNumWords {
		return 0, errorsmod.Wrapf(types.ErrInvalidNumWords, "%d", numWords)
	}
	if callbackGasLimit > params.MaxGasLimit {
		return 0, errorsmod.Wrapf(types.ErrGasLimitTooBig, "%d > %d", callbackGasLimit, params.MaxGasLimit)
	}

	seq, err := k.NextRequest.Next(ctx)
	if err != nil {
		return 0, err
	}
	req := types.Request{
		RequestID:        seq + 1,
		SubscriptionID:   subID,
		Consumer:         consumer,
		KeyHash:          keyHash,
		Confirmations:    confirmations,
		CallbackGasLimit: callbackGasLimit,
		NumWords:         numWords,
		BlockHeight:      sdkCtx.BlockHeight(),
	}
	if err := k.Requests.Set(ctx, req.RequestID, req); err != nil {
		return 0, err
	}

	sdkCtx.EventManager().EmitEvent(types.NewRandomWordsRequestedEvent(req))
	k.Logger().Info("random words requested", "request_id", req.RequestID, "consumer", consumer.Hex(), "num_words", numWords)
	return req.RequestID, nil
}

// FulfillRandomWords delivers words for a confirmed request. The request is
// consumed whether or not the consumer callback succeeds; a failing callback
// has its writes discarded and is reported in the fulfillment event.
func (k Keeper) FulfillRandomWords(ctx context.Context, requestID uint64, words []*uint256.Int) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	req, found, err := k.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !found {
		return errorsmod.Wrapf(types.ErrRequestNotFound, "%d", requestID)
	}
	if sdkCtx.BlockHeight() < req.ReadyAt() {
		return errorsmod.Wrapf(types.ErrNotConfirmed, "request %d ready at %d, height %d", requestID, req.ReadyAt(), sdkCtx.BlockHeight())
	}
	if uint32(len(words)) != req.NumWords {
		return errorsmod.Wrapf(types.ErrWrongWordCount, "want %d, got %d", req.NumWords, len(words))
	}

	if err := k.Requests.Remove(ctx, requestID); err != nil {
		return err
	}

	cbErr := k.callConsumer(sdkCtx, req, words)
	if cbErr != nil {
		k.Logger().Error("consumer callback failed", "request_id", requestID, "consumer", req.Consumer.Hex(), "error", cbErr)
	}

	sdkCtx.EventManager().EmitEvent(types.NewRandomWordsFulfilledEvent(requestID, cbErr))
	return nil
}

func (k Keeper) callConsumer(ctx sdk.Context, req types.Request, words []*uint256.Int) error {
	c, ok := k.consumer(req.Consumer)
	if !ok {
		return errorsmod.Wrapf(types.ErrInvalidConsumer, "no callback for %s", req.Consumer.Hex())
	}

	tmpCtx, commit := ctx.CacheContext()
	if err := c.RawFulfillRandomWords(tmpCtx, k.address, req.RequestID, words); err != nil {
		return err
	}
	commit()
	return nil
}

// FulfillBatch fulfills every entry in its own cache branch. The returned
// slice holds one error (or nil) per entry; one bad entry never aborts the rest.
func (k Keeper) FulfillBatch(ctx context.Context, batch []types.Fulfillment) []error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	errs := make([]error, len(batch))
	for i, f := range batch {
		tmpCtx, commit := sdkCtx.CacheContext()
		if err := k.FulfillRandomWords(tmpCtx, f.RequestID, f.Words); err != nil {
			errs[i] = err
			continue
		}
		commit()
	}
	return errs
}
