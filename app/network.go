package app

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ccipkeeper "github.com/pushchain/push-raffle-node/x/ccip/keeper"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	vrftypes "github.com/pushchain/push-raffle-node/x/vrf/types"
)

// Network pairs the prize chain and the ticket chain. The two managers
// trust each other as counterparts; messages between them only move when
// something calls Deliver.
type Network struct {
	Params NetworkParams
	Prize  *PrizeChain
	Ticket *TicketChain
}

// NewNetwork builds both chains and registers the managers as counterparts.
func NewNetwork(params NetworkParams, logger log.Logger) (*Network, error) {
	if params.Prize.Selector == params.Ticket.Selector {
		return nil, fmt.Errorf("prize and ticket chains share selector %d", params.Prize.Selector)
	}

	prize, err := NewPrizeChain(params, logger)
	if err != nil {
		return nil, fmt.Errorf("prize chain: %w", err)
	}
	ticket, err := NewTicketChain(params, logger)
	if err != nil {
		return nil, fmt.Errorf("ticket chain: %w", err)
	}

	_, err = prize.Exec(func(ctx sdk.Context) error {
		return prize.PrizeManager.SetCCIPCounterpart(ctx, params.Admin, ticket.ManagerAddr, params.Ticket.Selector, true)
	})
	if err != nil {
		return nil, err
	}
	_, err = ticket.Exec(func(ctx sdk.Context) error {
		return ticket.TicketManager.SetCCIPCounterpart(ctx, params.Admin, prize.ManagerAddr, params.Prize.Selector, true)
	})
	if err != nil {
		return nil, err
	}

	return &Network{Params: params, Prize: prize, Ticket: ticket}, nil
}

// Selectors returns the selectors of both chains, prize chain first.
func (n *Network) Selectors() []uint64 {
	return []uint64{n.Prize.Selector(), n.Ticket.Selector()}
}

// NextBlock produces one block on each chain.
func (n *Network) NextBlock() {
	n.Prize.NextBlock()
	n.Ticket.NextBlock()
}

// AdvanceBlocks produces k blocks on each chain.
func (n *Network) AdvanceBlocks(k int) {
	n.Prize.AdvanceBlocks(k)
	n.Ticket.AdvanceBlocks(k)
}

// AdvanceTime moves both clocks forward by d.
func (n *Network) AdvanceTime(d time.Duration) {
	n.Prize.AdvanceTime(d)
	n.Ticket.AdvanceTime(d)
}

func (n *Network) endpoint(selector uint64) (*Chain, ccipkeeper.Keeper, error) {
	switch selector {
	case n.Prize.Selector():
		return n.Prize.Chain, n.Prize.Router, nil
	case n.Ticket.Selector():
		return n.Ticket.Chain, n.Ticket.Router, nil
	default:
		return nil, ccipkeeper.Keeper{}, fmt.Errorf("unknown chain selector %d", selector)
	}
}

// Outbox lists up to limit messages queued on the chain with selector,
// starting at sequence from. A zero limit lists all of them.
func (n *Network) Outbox(selector, from uint64, limit int) ([]cciptypes.OutboundMessage, error) {
	chain, router, err := n.endpoint(selector)
	if err != nil {
		return nil, err
	}
	var msgs []cciptypes.OutboundMessage
	err = chain.Query(func(ctx sdk.Context) error {
		msgs, err = router.OutboxFrom(ctx, from, limit)
		return err
	})
	return msgs, err
}

// IsDelivered reports whether msg was already executed on its destination.
func (n *Network) IsDelivered(msg cciptypes.OutboundMessage) (bool, error) {
	chain, router, err := n.endpoint(msg.DestChainSelector)
	if err != nil {
		return false, err
	}
	var executed bool
	err = chain.Query(func(ctx sdk.Context) error {
		executed, err = router.IsExecuted(ctx, msg.MessageID)
		return err
	})
	return executed, err
}

// Deliver executes msg on its destination chain as one transaction.
func (n *Network) Deliver(msg cciptypes.OutboundMessage) (Receipt, error) {
	chain, router, err := n.endpoint(msg.DestChainSelector)
	if err != nil {
		return Receipt{}, err
	}
	return chain.Exec(func(ctx sdk.Context) error {
		return router.RouteMessage(ctx, msg.ToAny2EVM(), msg.Receiver)
	})
}

// PendingRandomness returns the open randomness requests and the current
// ticket chain height.
func (n *Network) PendingRandomness() ([]vrftypes.Request, int64, error) {
	var reqs []vrftypes.Request
	err := n.Ticket.Query(func(ctx sdk.Context) error {
		var err error
		reqs, err = n.Ticket.Coordinator.PendingRequests(ctx)
		return err
	})
	return reqs, n.Ticket.Height(), err
}

// FulfillRandomness answers a batch of requests in one transaction. Each
// entry succeeds or fails on its own; the returned slice holds one error per
// entry.
func (n *Network) FulfillRandomness(batch []vrftypes.Fulfillment) ([]error, Receipt, error) {
	var errs []error
	receipt, err := n.Ticket.Exec(func(ctx sdk.Context) error {
		errs = n.Ticket.Coordinator.FulfillBatch(ctx, batch)
		return nil
	})
	return errs, receipt, err
}
