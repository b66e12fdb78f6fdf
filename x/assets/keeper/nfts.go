package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/pushchain/push-raffle-node/x/assets/types"
)

// MintNFT creates token id of collection and assigns it to to.
func (k Keeper) MintNFT(ctx context.Context, collection, to common.Address, tokenID uint64) error {
	if to == (common.Address{}) {
		return errorsmod.Wrap(types.ErrInvalidReceiver, "mint to zero address")
	}

	key := collections.Join(collection, tokenID)
	exists, err := k.NFTOwners.Has(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return errorsmod.Wrapf(types.ErrTokenExists, "%s #%d", collection.Hex(), tokenID)
	}
	if err := k.NFTOwners.Set(ctx, key, to); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewNFTTransferEvent(collection, common.Address{}, to, tokenID))
	return nil
}

// OwnerOfNFT returns the owner of token id of collection.
func (k Keeper) OwnerOfNFT(ctx context.Context, collection common.Address, tokenID uint64) (common.Address, error) {
	owner, err := k.NFTOwners.Get(ctx, collections.Join(collection, tokenID))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return common.Address{}, errorsmod.Wrapf(types.ErrNonexistentToken, "%s #%d", collection.Hex(), tokenID)
		}
		return common.Address{}, err
	}
	return owner, nil
}

// TransferNFT moves token id of collection from its owner to to.
func (k Keeper) TransferNFT(ctx context.Context, collection, from, to common.Address, tokenID uint64) error {
	if to == (common.Address{}) {
		return errorsmod.Wrap(types.ErrInvalidReceiver, "transfer to zero address")
	}

	owner, err := k.OwnerOfNFT(ctx, collection, tokenID)
	if err != nil {
		return err
	}
	if owner != from {
		return errorsmod.Wrapf(types.ErrNotNFTOwner, "%s does not own %s #%d", from.Hex(), collection.Hex(), tokenID)
	}
	if err := k.NFTOwners.Set(ctx, collections.Join(collection, tokenID), to); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewNFTTransferEvent(collection, from, to, tokenID))
	return nil
}

// SetTokenURI sets the metadata URI of an existing NFT. Only its owner may do so.
func (k Keeper) SetTokenURI(ctx context.Context, caller, collection common.Address, tokenID uint64, uri string) error {
	owner, err := k.OwnerOfNFT(ctx, collection, tokenID)
	if err != nil {
		return err
	}
	if owner != caller {
		return errorsmod.Wrapf(types.ErrNotNFTOwner, "%s does not own %s #%d", caller.Hex(), collection.Hex(), tokenID)
	}
	return k.NFTURIs.Set(ctx, collections.Join(collection, tokenID), uri)
}

// TokenURI returns the metadata URI of an NFT, "" when unset.
func (k Keeper) TokenURI(ctx context.Context, collection common.Address, tokenID uint64) (string, error) {
	if _, err := k.OwnerOfNFT(ctx, collection, tokenID); err != nil {
		return "", err
	}
	uri, err := k.NFTURIs.Get(ctx, collections.Join(collection, tokenID))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return uri, nil
}
