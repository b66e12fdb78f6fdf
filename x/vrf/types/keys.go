package types

import "cosmossdk.io/collections"

var (
	// ParamsKey saves the coordinator parameters.
	ParamsKey = collections.NewPrefix(0)

	// ParamsName is the name of the Params collection.
	ParamsName = "params"

	// SubscriptionsKey saves the subscription records.
	SubscriptionsKey = collections.NewPrefix(1)

	// SubscriptionsName is the name of the Subscriptions collection.
	SubscriptionsName = "subscriptions"

	// NextSubscriptionKey saves the subscription id sequence.
	NextSubscriptionKey = collections.NewPrefix(2)

	// NextSubscriptionName is the name of the NextSubscription collection.
	NextSubscriptionName = "next_subscription"

	// ConsumersKey saves the (subscription, consumer) allow-list.
	ConsumersKey = collections.NewPrefix(3)

	// ConsumersName is the name of the Consumers collection.
	ConsumersName = "consumers"

	// RequestsKey saves the pending randomness requests.
	RequestsKey = collections.NewPrefix(4)

	// RequestsName is the name of the Requests collection.
	RequestsName = "requests"

	// NextRequestKey saves the request id sequence.
	NextRequestKey = collections.NewPrefix(5)

	// NextRequestName is the name of the NextRequest collection.
	NextRequestName = "next_request"
)

const (
	ModuleName = "vrf"

	StoreKey = ModuleName
)
