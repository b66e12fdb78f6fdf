package api

import (
	"github.com/pushchain/push-raffle-node/app"
	"github.com/pushchain/push-raffle-node/relayer/store"
)

// NetworkQuerier defines the chain reads needed by the API server.
type NetworkQuerier interface {
	Status() []app.ChainStatus
	TicketRaffle(raffleID uint64) (app.TicketRaffle, error)
	PrizeRaffle(raffleID uint64) (app.PrizeRaffle, error)
}

// NetworkTransactor defines the contract calls the API server submits.
type NetworkTransactor interface {
	Fund(tx app.FundTx) (app.Receipt, error)
	MintPrize(tx app.MintPrizeTx) (app.Receipt, error)
	LockPrize(tx app.LockPrizeTx) (app.Receipt, error)
	ClaimPrize(tx app.RaffleTx) (app.Receipt, error)
	WithdrawPrize(tx app.WithdrawPrizeTx) (app.Receipt, error)
	CreateRaffle(tx app.CreateRaffleTx) (app.Receipt, error)
	BuyTickets(tx app.BuyTicketsTx) (app.Receipt, error)
	DrawWinner(tx app.RaffleTx) (app.Receipt, error)
	PropagateWinner(tx app.RaffleTx) (app.Receipt, error)
	CancelRaffle(tx app.RaffleTx) (app.Receipt, error)
	RefundPlayers(tx app.RefundTx) (app.Receipt, error)
	WithdrawRevenue(tx app.AccountTx) (app.Receipt, error)
}

// Network is everything the API server needs from the chains.
type Network interface {
	NetworkQuerier
	NetworkTransactor
}

// MessageStore defines the relay records read by the API server.
type MessageStore interface {
	ListMessages(status string, limit int) ([]store.RelayedMessage, error)
	ListFulfillments(limit int) ([]store.VRFFulfillment, error)
}

var _ Network = (*app.Network)(nil)
