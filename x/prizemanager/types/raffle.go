package types

import (
	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
)

type RaffleType uint8

const (
	RaffleTypeNone RaffleType = iota
	RaffleTypeNFT
	RaffleTypeETH
	RaffleTypeToken
)

func (t RaffleType) String() string {
	switch t {
	case RaffleTypeNFT:
		return "NFT"
	case RaffleTypeETH:
		return "ETH"
	case RaffleTypeToken:
		return "TOKEN"
	default:
		return "NONE"
	}
}

type PrizeStatus uint8

const (
	PrizeStatusNone PrizeStatus = iota
	PrizeStatusLocked
	PrizeStatusUnlocked
	PrizeStatusWinnerDrawn
	PrizeStatusClaimed
)

func (s PrizeStatus) String() string {
	switch s {
	case PrizeStatusLocked:
		return "LOCKED"
	case PrizeStatusUnlocked:
		return "UNLOCKED"
	case PrizeStatusWinnerDrawn:
		return "WINNER_DRAWN"
	case PrizeStatusClaimed:
		return "CLAIMED"
	default:
		return "NONE"
	}
}

type NFTInfo struct {
	Contract common.Address `json:"contract"`
	TokenID  uint64         `json:"token_id"`
}

type ETHInfo struct {
	Amount math.Int `json:"amount"`
}

type TokenInfo struct {
	Token  common.Address `json:"token"`
	Amount math.Int       `json:"amount"`
}

// Raffle is the custody record of one prize. Exactly one of NFT, ETH and
// Token is set, matching Type.
type Raffle struct {
	ID            uint64         `json:"id"`
	Type          RaffleType     `json:"type"`
	Status        PrizeStatus    `json:"status"`
	Winner        common.Address `json:"winner"`
	Counterpart   common.Address `json:"counterpart"`
	ChainSelector uint64         `json:"chain_selector"`

	NFT   *NFTInfo   `json:"nft,omitempty"`
	ETH   *ETHInfo   `json:"eth,omitempty"`
	Token *TokenInfo `json:"token,omitempty"`
}
