package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	prizemanagertypes "github.com/pushchain/push-raffle-node/x/prizemanager/types"
	ticketmanagertypes "github.com/pushchain/push-raffle-node/x/ticketmanager/types"
)

// TicketRaffle is the ticket chain view of a raffle.
type TicketRaffle struct {
	ticketmanagertypes.Raffle
	StatusName  string `json:"status_name"`
	TicketsSold uint64 `json:"tickets_sold"`
}

// Raffle reads a raffle and its ticket supply at the latest committed block.
func (c *TicketChain) Raffle(raffleID uint64) (TicketRaffle, error) {
	var out TicketRaffle
	err := c.Query(func(ctx sdk.Context) error {
		r, err := c.TicketManager.GetRaffle(ctx, raffleID)
		if err != nil {
			return err
		}
		sold, err := c.Tickets.SupplyOf(ctx, raffleID)
		if err != nil {
			return err
		}
		out = TicketRaffle{Raffle: r, StatusName: r.Status.String(), TicketsSold: sold}
		return nil
	})
	return out, err
}

// PrizeRaffle is the prize chain view of a raffle.
type PrizeRaffle struct {
	prizemanagertypes.Raffle
	StatusName string `json:"status_name"`
	TypeName   string `json:"type_name"`
}

// Raffle reads a prize record at the latest committed block.
func (c *PrizeChain) Raffle(raffleID uint64) (PrizeRaffle, error) {
	var out PrizeRaffle
	err := c.Query(func(ctx sdk.Context) error {
		r, err := c.PrizeManager.GetRaffle(ctx, raffleID)
		if err != nil {
			return err
		}
		out = PrizeRaffle{Raffle: r, StatusName: r.Status.String(), TypeName: r.Type.String()}
		return nil
	})
	return out, err
}

// ChainStatus is the head of one chain and the address of its raffle manager.
type ChainStatus struct {
	ChainID  string `json:"chain_id"`
	Selector uint64 `json:"selector"`
	Height   int64  `json:"height"`
	Time     int64  `json:"time"`
	Manager  string `json:"manager"`
}

func chainStatus(c *Chain, manager common.Address) ChainStatus {
	return ChainStatus{
		ChainID:  c.ChainID(),
		Selector: c.Selector(),
		Height:   c.Height(),
		Time:     c.Time().Unix(),
		Manager:  manager.Hex(),
	}
}

// Status returns the head of both chains, prize chain first.
func (n *Network) Status() []ChainStatus {
	return []ChainStatus{
		chainStatus(n.Prize.Chain, n.Prize.ManagerAddr),
		chainStatus(n.Ticket.Chain, n.Ticket.ManagerAddr),
	}
}

// TicketRaffle reads a raffle from the ticket chain.
func (n *Network) TicketRaffle(raffleID uint64) (TicketRaffle, error) {
	return n.Ticket.Raffle(raffleID)
}

// PrizeRaffle reads a prize record from the prize chain.
func (n *Network) PrizeRaffle(raffleID uint64) (PrizeRaffle, error) {
	return n.Prize.Raffle(raffleID)
}
