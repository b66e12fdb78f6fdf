package types

// AccountTraits describes how an account reacts to incoming transfers.
// Accounts without stored traits are externally owned and accept everything.
type AccountTraits struct {
	IsContract     bool `json:"is_contract"`
	AcceptsETH     bool `json:"accepts_eth"`
	AcceptsERC1155 bool `json:"accepts_erc1155"`
}

// EOA returns the traits of an externally owned account.
func EOA() AccountTraits {
	return AccountTraits{AcceptsETH: true, AcceptsERC1155: true}
}

// Contract returns the traits of a contract account.
func Contract(acceptsETH, acceptsERC1155 bool) AccountTraits {
	return AccountTraits{IsContract: true, AcceptsETH: acceptsETH, AcceptsERC1155: acceptsERC1155}
}
