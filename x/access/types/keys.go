package types

import "cosmossdk.io/collections"

var (
	// RolesKey saves the role bitmask of every address.
	RolesKey = collections.NewPrefix(0)

	// RolesName is the name of the Roles collection.
	RolesName = "roles"
)

const (
	ModuleName = "access"
)

// StoreKey returns the store key of the access control instance owned by
// the named contract module.
func StoreKey(owner string) string {
	return owner + "_" + ModuleName
}
