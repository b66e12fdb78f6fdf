package types

import "cosmossdk.io/collections"

var (
	// RafflesKey saves the raffle record of every raffle id.
	RafflesKey = collections.NewPrefix(0)

	// RafflesName is the name of the Raffles collection.
	RafflesName = "raffles"

	// ParticipationsKey saves what each buyer purchased per raffle.
	ParticipationsKey = collections.NewPrefix(1)

	// ParticipationsName is the name of the Participations collection.
	ParticipationsName = "participations"

	// RequestsKey saves the randomness requests issued for draws.
	RequestsKey = collections.NewPrefix(2)

	// RequestsName is the name of the Requests collection.
	RequestsName = "requests"

	// NoncesKey saves the coupon nonce of every buyer.
	NoncesKey = collections.NewPrefix(3)

	// NoncesName is the name of the Nonces collection.
	NoncesName = "nonces"

	// LockedETHKey saves the ticket revenue not yet released to the admin.
	LockedETHKey = collections.NewPrefix(4)

	// LockedETHName is the name of the LockedETH collection.
	LockedETHName = "locked_eth"

	// VRFConfigKey saves the randomness request settings.
	VRFConfigKey = collections.NewPrefix(5)

	// VRFConfigName is the name of the VRFConfig collection.
	VRFConfigName = "vrf_config"
)

const (
	ModuleName = "ticketmanager"

	StoreKey = ModuleName

	// MinRaffleDuration is the shortest allowed sale window, in seconds.
	MinRaffleDuration int64 = 60

	// DefaultVRFTimeout is the number of blocks after which an unanswered
	// randomness request may be re-issued or the raffle canceled.
	DefaultVRFTimeout int64 = 200
)
