package types

import "cosmossdk.io/collections"

var (
	// ConfigKey saves the collection metadata and the minting manager.
	ConfigKey = collections.NewPrefix(0)

	// ConfigName is the name of the Config collection.
	ConfigName = "config"

	// RangesKey saves the first ticket number of every minted range.
	RangesKey = collections.NewPrefix(1)

	// RangesName is the name of the Ranges collection.
	RangesName = "ranges"

	// SupplyKey saves the number of tickets minted per raffle.
	SupplyKey = collections.NewPrefix(2)

	// SupplyName is the name of the Supply collection.
	SupplyName = "supply"

	// BalancesKey saves the tickets held per (owner, raffle).
	BalancesKey = collections.NewPrefix(3)

	// BalancesName is the name of the Balances collection.
	BalancesName = "balances"
)

const (
	ModuleName = "tickets"

	StoreKey = ModuleName
)
