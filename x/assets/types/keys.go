package types

import "cosmossdk.io/collections"

var (
	// TokenBalancesKey saves fungible token balances keyed by (token, holder).
	TokenBalancesKey = collections.NewPrefix(0)

	// TokenBalancesName is the name of the TokenBalances collection.
	TokenBalancesName = "token_balances"

	// TokenSupplyKey saves the total supply of every fungible token.
	TokenSupplyKey = collections.NewPrefix(1)

	// TokenSupplyName is the name of the TokenSupply collection.
	TokenSupplyName = "token_supply"

	// NFTOwnersKey saves NFT owners keyed by (collection, token id).
	NFTOwnersKey = collections.NewPrefix(2)

	// NFTOwnersName is the name of the NFTOwners collection.
	NFTOwnersName = "nft_owners"

	// NFTURIsKey saves NFT metadata URIs keyed by (collection, token id).
	NFTURIsKey = collections.NewPrefix(3)

	// NFTURIsName is the name of the NFTURIs collection.
	NFTURIsName = "nft_uris"
)

const (
	ModuleName = "assets"

	StoreKey = ModuleName
)
