package types

import "cosmossdk.io/collections"

var (
	// RafflesKey saves the prize record of every raffle id.
	RafflesKey = collections.NewPrefix(0)

	// RafflesName is the name of the Raffles collection.
	RafflesName = "raffles"

	// LockedETHKey saves the native amount reserved by live raffles.
	LockedETHKey = collections.NewPrefix(1)

	// LockedETHName is the name of the LockedETH collection.
	LockedETHName = "locked_eth"

	// LockedTokensKey saves the token amount reserved by live raffles, per token.
	LockedTokensKey = collections.NewPrefix(2)

	// LockedTokensName is the name of the LockedTokens collection.
	LockedTokensName = "locked_tokens"

	// LockedNFTsKey saves the (collection, tokenId) pairs reserved by live raffles.
	LockedNFTsKey = collections.NewPrefix(3)

	// LockedNFTsName is the name of the LockedNFTs collection.
	LockedNFTsName = "locked_nfts"
)

const (
	ModuleName = "prizemanager"

	StoreKey = ModuleName
)
