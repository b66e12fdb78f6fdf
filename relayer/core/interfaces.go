package core

import (
	"github.com/pushchain/push-raffle-node/app"
	cciptypes "github.com/pushchain/push-raffle-node/x/ccip/types"
	vrftypes "github.com/pushchain/push-raffle-node/x/vrf/types"
)

// Bridge reads router outboxes and executes messages on their destination.
type Bridge interface {
	Selectors() []uint64
	Outbox(selector, from uint64, limit int) ([]cciptypes.OutboundMessage, error)
	IsDelivered(msg cciptypes.OutboundMessage) (bool, error)
	Deliver(msg cciptypes.OutboundMessage) (app.Receipt, error)
}

// Oracle exposes the randomness coordinator of the ticket chain.
type Oracle interface {
	PendingRandomness() ([]vrftypes.Request, int64, error)
	FulfillRandomness(batch []vrftypes.Fulfillment) ([]error, app.Receipt, error)
}

var (
	_ Bridge = (*app.Network)(nil)
	_ Oracle = (*app.Network)(nil)
)
