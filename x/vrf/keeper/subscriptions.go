package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/x/vrf/types"
)

// CreateSubscription opens a subscription owned by owner. Ids start at 1.
func (k Keeper) CreateSubscription(ctx context.Context, owner common.Address) (uint64, error) {
	seq, err := k.NextSubscription.Next(ctx)
	if err != nil {
		return 0, err
	}
	sub := types.Subscription{ID: seq + 1, Owner: owner}
	if err := k.Subscriptions.Set(ctx, sub.ID, sub); err != nil {
		return 0, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewSubscriptionCreatedEvent(sub))
	return sub.ID, nil
}

// GetSubscription returns subscription subID.
func (k Keeper) GetSubscription(ctx context.Context, subID uint64) (types.Subscription, error) {
	sub, err := k.Subscriptions.Get(ctx, subID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Subscription{}, errorsmod.Wrapf(types.ErrInvalidSubscription, "%d", subID)
		}
		return types.Subscription{}, err
	}
	return sub, nil
}

// AddConsumer allows consumer to request on subID. Subscription owner only.
func (k Keeper) AddConsumer(ctx context.Context, caller common.Address, subID uint64, consumer common.Address) error {
	sub, err := k.GetSubscription(ctx, subID)
	if err != nil {
		return err
	}
	if sub.Owner != caller {
		return errorsmod.Wrapf(types.ErrMustBeSubOwner, "%s", caller.Hex())
	}
	if err := k.Consumers.Set(ctx, collections.Join(subID, consumer)); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewConsumerAddedEvent(subID, consumer.Hex()))
	return nil
}

// RemoveConsumer revokes consumer from subID. Subscription owner only.
func (k Keeper) RemoveConsumer(ctx context.Context, caller common.Address, subID uint64, consumer common.Address) error {
	sub, err := k.GetSubscription(ctx, subID)
	if err != nil {
		return err
	}
	if sub.Owner != caller {
		return errorsmod.Wrapf(types.ErrMustBeSubOwner, "%s", caller.Hex())
	}
	return k.Consumers.Remove(ctx, collections.Join(subID, consumer))
}
