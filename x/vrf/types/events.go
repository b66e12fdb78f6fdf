package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeSubscriptionCreated  = "subscription_created"
	EventTypeConsumerAdded        = "subscription_consumer_added"
	EventTypeRandomWordsRequested = "random_words_requested"
	EventTypeRandomWordsFulfilled = "random_words_fulfilled"

	AttributeKeySubscriptionID = "subscription_id"
	AttributeKeyOwner          = "owner"
	AttributeKeyConsumer       = "consumer"
	AttributeKeyRequestID      = "request_id"
	AttributeKeyKeyHash        = "key_hash"
	AttributeKeyConfirmations  = "confirmations"
	AttributeKeyNumWords       = "num_words"
	AttributeKeySuccess        = "success"
	AttributeKeyError          = "error"
)

func NewSubscriptionCreatedEvent(sub Subscription) sdk.Event {
	return sdk.NewEvent(
		EventTypeSubscriptionCreated,
		sdk.NewAttribute(AttributeKeySubscriptionID, strconv.FormatUint(sub.ID, 10)),
		sdk.NewAttribute(AttributeKeyOwner, sub.Owner.Hex()),
	)
}

func NewConsumerAddedEvent(subID uint64, consumer string) sdk.Event {
	return sdk.NewEvent(
		EventTypeConsumerAdded,
		sdk.NewAttribute(AttributeKeySubscriptionID, strconv.FormatUint(subID, 10)),
		sdk.NewAttribute(AttributeKeyConsumer, consumer),
	)
}

func NewRandomWordsRequestedEvent(r Request) sdk.Event {
	return sdk.NewEvent(
		EventTypeRandomWordsRequested,
		sdk.NewAttribute(AttributeKeyRequestID, strconv.FormatUint(r.RequestID, 10)),
		sdk.NewAttribute(AttributeKeySubscriptionID, strconv.FormatUint(r.SubscriptionID, 10)),
		sdk.NewAttribute(AttributeKeyConsumer, r.Consumer.Hex()),
		sdk.NewAttribute(AttributeKeyKeyHash, r.KeyHash.Hex()),
		sdk.NewAttribute(AttributeKeyConfirmations, strconv.FormatUint(uint64(r.Confirmations), 10)),
		sdk.NewAttribute(AttributeKeyNumWords, strconv.FormatUint(uint64(r.NumWords), 10)),
	)
}

// NewRandomWordsFulfilledEvent reports a delivery; cbErr is the consumer
// callback failure, nil on success.
func NewRandomWordsFulfilledEvent(requestID uint64, cbErr error) sdk.Event {
	attrs := []sdk.Attribute{
		sdk.NewAttribute(AttributeKeyRequestID, strconv.FormatUint(requestID, 10)),
		sdk.NewAttribute(AttributeKeySuccess, strconv.FormatBool(cbErr == nil)),
	}
	if cbErr != nil {
		attrs = append(attrs, sdk.NewAttribute(AttributeKeyError, cbErr.Error()))
	}
	return sdk.NewEvent(EventTypeRandomWordsFulfilled, attrs...)
}
