package types

import "cosmossdk.io/collections"

var (
	// BalancesKey saves the native balance of every account.
	BalancesKey = collections.NewPrefix(0)

	// BalancesName is the name of the Balances collection.
	BalancesName = "balances"

	// AccountsKey saves the traits of accounts that are contracts.
	AccountsKey = collections.NewPrefix(1)

	// AccountsName is the name of the Accounts collection.
	AccountsName = "accounts"
)

const (
	ModuleName = "native"

	StoreKey = ModuleName
)
