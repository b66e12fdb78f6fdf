package types

import "cosmossdk.io/collections"

// Router state.
var (
	// ParamsKey saves the router fee parameters.
	ParamsKey = collections.NewPrefix(0)

	// ParamsName is the name of the Params collection.
	ParamsName = "params"

	// NextSequenceKey saves the next outbound sequence number.
	NextSequenceKey = collections.NewPrefix(1)

	// NextSequenceName is the name of the NextSequence collection.
	NextSequenceName = "next_sequence"

	// OutboxKey saves outbound messages keyed by sequence number.
	OutboxKey = collections.NewPrefix(2)

	// OutboxName is the name of the Outbox collection.
	OutboxName = "outbox"

	// ExecutedKey saves the ids of inbound messages already executed.
	ExecutedKey = collections.NewPrefix(3)

	// ExecutedName is the name of the Executed collection.
	ExecutedName = "executed"

	// LanesKey saves the destination chain selectors the router serves.
	LanesKey = collections.NewPrefix(4)

	// LanesName is the name of the Lanes collection.
	LanesName = "lanes"
)

// Messenger state, one instance per contract.
var (
	// CounterpartsKey saves enabled (chain selector, sender) pairs.
	CounterpartsKey = collections.NewPrefix(0)

	// CounterpartsName is the name of the Counterparts collection.
	CounterpartsName = "counterparts"

	// ExtraArgsKey saves the opaque extra args attached to outbound messages.
	ExtraArgsKey = collections.NewPrefix(1)

	// ExtraArgsName is the name of the ExtraArgs collection.
	ExtraArgsName = "extra_args"
)

const (
	ModuleName = "ccip"

	StoreKey = ModuleName
)

// MessengerStoreKey returns the store key of the messenger owned by the named
// contract module.
func MessengerStoreKey(owner string) string {
	return owner + "_" + ModuleName
}
